// services/modbusx/encode.go
package modbusx

import "chargecode-go/types"

// Charger block layout. These values define the register protocol and MUST
// NOT be configurable.
const (
	SlotHealth     = 0 // HealthUnknown | HealthOK | HealthDegraded | HealthDown
	SlotErrorCode  = 1 // ErrorCodes[...] of the last degraded status, 0 when healthy
	SlotCharge     = 2 // 0 not charging, 1 CC, 2 CV, 3 done
	SlotTS         = 3 // 0 normal, 1 suspended, 2 cool, 3 warm
	SlotStatus     = 4 // types.ChargerStatusBits
	SlotLastFlags  = 5 // FLAG0 of the most recent event
	SlotEventCount = 6 // events seen, wraps at 65535
	SlotStampHi    = 7 // value sample time, unix seconds, high word
	SlotStampLo    = 8 // low word
	SlotReserved   = 9

	BlockSize = 10
)

const (
	HealthUnknown  uint16 = 0
	HealthOK       uint16 = 1
	HealthDegraded uint16 = 2
	HealthDown     uint16 = 3
)

// ErrorCodes maps bus error codes onto register values. Unlisted codes
// encode as 1.
var ErrorCodes = map[string]uint16{
	"":               0,
	"error":          1,
	"transport":      2,
	"timeout":        3,
	"out_of_range":   4,
	"invalid_option": 5,
	"unavailable":    6,
}

var chargeCodes = map[string]uint16{
	"not_charging":     0,
	"constant_current": 1,
	"constant_voltage": 2,
	"done":             3,
}

var tsCodes = map[string]uint16{
	"normal":    0,
	"suspended": 1,
	"cool":      2,
	"warm":      3,
}

// Snapshot is the exporter's view of one charger.
type Snapshot struct {
	Link      types.Link
	Error     string
	Value     types.ChargerValue
	LastFlags types.ChargerFlags
	Events    uint16
}

func healthOf(l types.Link) uint16 {
	switch l {
	case types.LinkUp:
		return HealthOK
	case types.LinkDegraded:
		return HealthDegraded
	case types.LinkDown:
		return HealthDown
	}
	return HealthUnknown
}

// Encode converts a Snapshot into a full charger block.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, BlockSize)

	regs[SlotHealth] = healthOf(s.Link)
	if code, ok := ErrorCodes[s.Error]; ok {
		regs[SlotErrorCode] = code
	} else {
		regs[SlotErrorCode] = 1
	}
	regs[SlotCharge] = chargeCodes[s.Value.Charge]
	regs[SlotTS] = tsCodes[s.Value.TS]
	regs[SlotStatus] = uint16(s.Value.Status)
	regs[SlotLastFlags] = uint16(s.LastFlags)
	regs[SlotEventCount] = s.Events

	sec := uint32(s.Value.Stamp_ms / 1000)
	regs[SlotStampHi] = uint16(sec >> 16)
	regs[SlotStampLo] = uint16(sec)

	return regs
}
