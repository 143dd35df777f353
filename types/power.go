package types

// ------------------------
// Charger (bq25180)
// ------------------------

// Retained info: hal/cap/power/charger/<name>/info (as Info.Detail)
type ChargerInfo struct {
	Bus      string `json:"bus"`
	Addr     uint16 `json:"addr"`
	DeviceID uint8  `json:"device_id"`
}

// Retained value: hal/cap/power/charger/<name>/value
type ChargerValue struct {
	Charge string `json:"charge"` // not_charging | constant_current | constant_voltage | done
	TS     string `json:"ts"`     // normal | suspended | cool | warm

	Status   ChargerStatusBits `json:"status"`   // STAT0/STAT1 booleans, see ChargerStatusTable
	Stamp_ms int64             `json:"stamp_ms"` // sample time
}

// Event: hal/cap/power/charger/<name>/event. Only published when a flag is set.
type ChargerEvent struct {
	Flags    ChargerFlags `json:"flags"` // raw FLAG0
	Stamp_ms int64        `json:"stamp_ms"`
}

// FLAG0 (0x02). Bit positions match the register.
type ChargerFlags uint8

const (
	FlagBatOCP   ChargerFlags = 1 << 0
	FlagBUVLO    ChargerFlags = 1 << 1
	FlagVinOVP   ChargerFlags = 1 << 2
	FlagThermReg ChargerFlags = 1 << 3
	FlagVINDPM   ChargerFlags = 1 << 4
	FlagVDPPM    ChargerFlags = 1 << 5
	FlagILim     ChargerFlags = 1 << 6
	FlagTSFault  ChargerFlags = 1 << 7
)

// Boolean status bits from STAT0/STAT1, packed for the bus. Multi-bit fields
// (charge status, TS status) travel as strings in ChargerValue.
type ChargerStatusBits uint16

const (
	StatVinGood     ChargerStatusBits = 1 << 0
	StatThermReg    ChargerStatusBits = 1 << 1
	StatVINDPM      ChargerStatusBits = 1 << 2
	StatVDPPM       ChargerStatusBits = 1 << 3
	StatILim        ChargerStatusBits = 1 << 4
	StatTSOpen      ChargerStatusBits = 1 << 5
	StatWake2       ChargerStatusBits = 1 << 6
	StatWake1       ChargerStatusBits = 1 << 7
	StatSafetyTimer ChargerStatusBits = 1 << 8
	StatBUVLO       ChargerStatusBits = 1 << 9
	StatVinOVP      ChargerStatusBits = 1 << 10
)

// Controls
type ChargerEnable struct{ On bool }      // verb: "enable"
type ChargerReset struct{ Hardware bool } // verb: "reset"

// ChargerRegisters is the reply to verb "dump": all registers in address order.
type ChargerRegisters struct {
	Regs []uint8 `json:"regs"`
}

// ChargerInterrupt masks or unmasks one INT source. verb: "interrupt"
type ChargerInterrupt struct {
	Source string `json:"source"` // thermal_fault, charging_status, ...
	Enable bool   `json:"enable"`
}

// ChargerConfigure is a partial update. Nil means "leave as-is".
// Enumerated settings are strings using the driver's option names.
// The same struct is the daemon's YAML charger profile.
type ChargerConfigure struct {
	// Charge control
	Enable              *bool   `json:"enable,omitempty" yaml:"enable,omitempty"`
	BatteryReg_mV       *uint16 `json:"battery_reg_mV,omitempty" yaml:"battery_reg_mv,omitempty"`
	FastCharge_mA       *uint16 `json:"fast_charge_mA,omitempty" yaml:"fast_charge_ma,omitempty"`
	Termination_pct     *uint8  `json:"termination_pct,omitempty" yaml:"termination_pct,omitempty"`
	PrechargeThresh_mV  *uint16 `json:"precharge_threshold_mV,omitempty" yaml:"precharge_threshold_mv,omitempty"`
	PrechargeDouble     *bool   `json:"precharge_double,omitempty" yaml:"precharge_double,omitempty"` // IPRECHG = 2x ITERM
	RechargeThreshold   *string `json:"recharge_threshold,omitempty" yaml:"recharge_threshold,omitempty"`
	SafetyTimer         *string `json:"safety_timer,omitempty" yaml:"safety_timer,omitempty"`
	SafetyTimerSlowdown *bool   `json:"safety_timer_slowdown,omitempty" yaml:"safety_timer_slowdown,omitempty"`

	// Battery protection
	BatteryUVLO_mV    *uint16 `json:"battery_uvlo_mV,omitempty" yaml:"battery_uvlo_mv,omitempty"`
	DischargeCurrent  *string `json:"discharge_current,omitempty" yaml:"discharge_current,omitempty"`
	ThermalProtection *bool   `json:"thermal_protection,omitempty" yaml:"thermal_protection,omitempty"`

	// Input and system path
	InputLimit_mA *uint16 `json:"input_limit_mA,omitempty" yaml:"input_limit_ma,omitempty"`
	VINDPM        *string `json:"vindpm,omitempty" yaml:"vindpm,omitempty"`
	DPPM          *bool   `json:"dppm,omitempty" yaml:"dppm,omitempty"`
	SysSource     *string `json:"sys_source,omitempty" yaml:"sys_source,omitempty"`
	SysRegulation *string `json:"sys_regulation,omitempty" yaml:"sys_regulation,omitempty"`

	// Host interface
	Watchdog    *string `json:"watchdog,omitempty" yaml:"watchdog,omitempty"`
	Watchdog15s *bool   `json:"watchdog_15s,omitempty" yaml:"watchdog_15s,omitempty"`
	PushButton  *bool   `json:"push_button,omitempty" yaml:"push_button,omitempty"`

	// Interrupt source name -> enabled.
	Interrupts map[string]bool `json:"interrupts,omitempty" yaml:"interrupts,omitempty"`
}

// Generic pairing of a bit value with a printable name.
type BitName[T ~uint8 | ~uint16] struct {
	Bit  T
	Name string
}

// BitIter is a zero-alloc iterator over set bits in a value, filtered by a table.
// Caller advances with Next(); no callbacks, no closures.
type BitIter[T ~uint8 | ~uint16] struct {
	v     T
	i     int
	table []BitName[T]
}

// NewBitIter constructs an iterator over set bits present in v that also exist in table.
func NewBitIter[T ~uint8 | ~uint16](v T, table []BitName[T]) BitIter[T] {
	return BitIter[T]{v: v, table: table}
}

// Next returns the next SET bit: (name, ok). ok=false when done.
func (it *BitIter[T]) Next() (string, bool) {
	for it.i < len(it.table) {
		e := it.table[it.i]
		it.i++
		if it.v&e.Bit != 0 {
			return e.Name, true
		}
	}
	return "", false
}

// Names collects the set bits of v in table order.
func Names[T ~uint8 | ~uint16](v T, table []BitName[T]) []string {
	var out []string
	it := NewBitIter(v, table)
	for name, ok := it.Next(); ok; name, ok = it.Next() {
		out = append(out, name)
	}
	return out
}

// -----------------------------
// Display tables for bitfields
// -----------------------------

var ChargerFlagTable = []BitName[ChargerFlags]{
	{FlagBatOCP, "bat_ocp"},
	{FlagBUVLO, "buvlo"},
	{FlagVinOVP, "vin_ovp"},
	{FlagThermReg, "thermal_regulation"},
	{FlagVINDPM, "vindpm"},
	{FlagVDPPM, "vdppm"},
	{FlagILim, "ilim"},
	{FlagTSFault, "ts_fault"},
}

var ChargerStatusTable = []BitName[ChargerStatusBits]{
	{StatVinGood, "vin_good"},
	{StatThermReg, "thermal_regulation"},
	{StatVINDPM, "vindpm"},
	{StatVDPPM, "vdppm"},
	{StatILim, "ilim"},
	{StatTSOpen, "ts_open"},
	{StatWake2, "wake2"},
	{StatWake1, "wake1"},
	{StatSafetyTimer, "safety_timer_fault"},
	{StatBUVLO, "buvlo"},
	{StatVinOVP, "vin_ovp"},
}
