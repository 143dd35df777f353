package errcode

import (
	"context"
	"errors"

	"chargecode-go/drivers/bq25180"
)

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	Unsupported    Code = "unsupported"
	InvalidPayload Code = "invalid_payload"
	Timeout        Code = "timeout"

	OutOfRange    Code = "out_of_range"
	InvalidOption Code = "invalid_option"
	Transport     Code = "transport"
	Unavailable   Code = "unavailable" // device parked in ship mode or shutdown

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps charger driver errors to a Code. Anything the driver did
// not produce itself came from the bus transaction.
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, bq25180.ErrOutOfRange):
		return OutOfRange
	case errors.Is(err, bq25180.ErrInvalidOption),
		errors.Is(err, bq25180.ErrInvalidRegister):
		return InvalidOption
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	}
	return Transport
}
