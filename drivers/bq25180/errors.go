package bq25180

import (
	"errors"
	"strconv"
)

var (
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("bq25180: value out of range")
	// ErrInvalidOption is returned for an enumerated option outside its type's set.
	ErrInvalidOption = errors.New("bq25180: invalid option")
	// ErrInvalidRegister is returned for register addresses above MASK_ID.
	ErrInvalidRegister = errors.New("bq25180: invalid register")
)

// RangeError reports a physical value outside a parameter's documented
// domain. It is returned before any bus access.
type RangeError struct {
	Param    string
	Value    int
	Min, Max int
	Unit     string
}

func (e *RangeError) Error() string {
	return "bq25180: " + e.Param + " " + strconv.Itoa(e.Value) + e.Unit +
		" outside [" + strconv.Itoa(e.Min) + ", " + strconv.Itoa(e.Max) + "]" + e.Unit
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }
