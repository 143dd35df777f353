package bq25180

// Enumerated configuration options. Each type is closed: the zero value and
// anything not listed in its table is rejected with ErrInvalidOption. Register
// codes come from the tables below, never from the constant's ordinal.

type option[T ~uint8] struct {
	opt  T
	code uint8
	name string
}

func codeOf[T ~uint8](table []option[T], v T) (uint8, error) {
	for _, e := range table {
		if e.opt == v {
			return e.code, nil
		}
	}
	return 0, ErrInvalidOption
}

func nameOf[T ~uint8](table []option[T], v T) string {
	for _, e := range table {
		if e.opt == v {
			return e.name
		}
	}
	return "invalid"
}

func parseOption[T ~uint8](table []option[T], s string) (T, error) {
	for _, e := range table {
		if e.name == s {
			return e.opt, nil
		}
	}
	var zero T
	return zero, ErrInvalidOption
}

// ---------------- Safety timer (IC_CTRL[3:2]) ----------------

type SafetyTimer uint8

const (
	SafetyTimer3h SafetyTimer = iota + 1
	SafetyTimer6h // reset default
	SafetyTimer12h
	SafetyTimerDisabled
)

var safetyTimerTable = []option[SafetyTimer]{
	{SafetyTimer3h, 0b00, "3h"},
	{SafetyTimer6h, 0b01, "6h"},
	{SafetyTimer12h, 0b10, "12h"},
	{SafetyTimerDisabled, 0b11, "disabled"},
}

func (v SafetyTimer) Code() (uint8, error) { return codeOf(safetyTimerTable, v) }
func (v SafetyTimer) String() string       { return nameOf(safetyTimerTable, v) }

func ParseSafetyTimer(s string) (SafetyTimer, error) { return parseOption(safetyTimerTable, s) }

// ---------------- Watchdog (IC_CTRL[1:0]) ----------------

type Watchdog uint8

const (
	WatchdogDefault Watchdog = iota + 1 // 160 s hardware reset
	Watchdog160s
	Watchdog40s
	WatchdogDisabled
)

var watchdogTable = []option[Watchdog]{
	{WatchdogDefault, 0b00, "default"},
	{Watchdog160s, 0b01, "160s"},
	{Watchdog40s, 0b10, "40s"},
	{WatchdogDisabled, 0b11, "disabled"},
}

func (v Watchdog) Code() (uint8, error) { return codeOf(watchdogTable, v) }
func (v Watchdog) String() string       { return nameOf(watchdogTable, v) }

func ParseWatchdog(s string) (Watchdog, error) { return parseOption(watchdogTable, s) }

// ---------------- VINDPM (CHARGECTRL0[3:2]) ----------------

type VINDPM uint8

const (
	VINDPM4200mV VINDPM = iota + 1
	VINDPM4500mV
	VINDPM4700mV
	VINDPMDisabled // reset default
)

var vindpmTable = []option[VINDPM]{
	{VINDPM4200mV, 0b00, "4200mV"},
	{VINDPM4500mV, 0b01, "4500mV"},
	{VINDPM4700mV, 0b10, "4700mV"},
	{VINDPMDisabled, 0b11, "disabled"},
}

func (v VINDPM) Code() (uint8, error) { return codeOf(vindpmTable, v) }
func (v VINDPM) String() string       { return nameOf(vindpmTable, v) }

func ParseVINDPM(s string) (VINDPM, error) { return parseOption(vindpmTable, s) }

// ---------------- SYS source (SYS_REG[3:2]) ----------------

type SysSource uint8

const (
	SysFromVINOrVBAT SysSource = iota + 1 // reset default
	SysFromVBAT                           // VBAT only, even with VIN present
	SysOffFloating
	SysOffPulldown
)

var sysSourceTable = []option[SysSource]{
	{SysFromVINOrVBAT, 0b00, "vin_vbat"},
	{SysFromVBAT, 0b01, "vbat"},
	{SysOffFloating, 0b10, "off_floating"},
	{SysOffPulldown, 0b11, "off_pulldown"},
}

func (v SysSource) Code() (uint8, error) { return codeOf(sysSourceTable, v) }
func (v SysSource) String() string       { return nameOf(sysSourceTable, v) }

func ParseSysSource(s string) (SysSource, error) { return parseOption(sysSourceTable, s) }

// ---------------- SYS regulation (SYS_REG[7:5]) ----------------

type SysRegulation uint8

const (
	SysRegVBATPlus225mV SysRegulation = iota + 1 // VBAT + 225 mV, 3.8 V minimum
	SysReg4400mV
	SysReg4500mV // reset default
	SysReg4600mV
	SysReg4700mV
	SysReg4800mV
	SysReg4900mV
	SysRegPassThrough
)

var sysRegulationTable = []option[SysRegulation]{
	{SysRegVBATPlus225mV, 0b000, "vbat"},
	{SysReg4400mV, 0b001, "4400mV"},
	{SysReg4500mV, 0b010, "4500mV"},
	{SysReg4600mV, 0b011, "4600mV"},
	{SysReg4700mV, 0b100, "4700mV"},
	{SysReg4800mV, 0b101, "4800mV"},
	{SysReg4900mV, 0b110, "4900mV"},
	{SysRegPassThrough, 0b111, "pass_through"},
}

func (v SysRegulation) Code() (uint8, error) { return codeOf(sysRegulationTable, v) }
func (v SysRegulation) String() string       { return nameOf(sysRegulationTable, v) }

func ParseSysRegulation(s string) (SysRegulation, error) {
	return parseOption(sysRegulationTable, s)
}

// ---------------- Battery discharge current limit (CHARGECTRL1[7:6]) ----------------

type DischargeCurrent uint8

const (
	Discharge500mA DischargeCurrent = iota + 1
	Discharge1000mA
	Discharge1500mA
	DischargeLimitDisabled
)

var dischargeCurrentTable = []option[DischargeCurrent]{
	{Discharge500mA, 0b00, "500mA"},
	{Discharge1000mA, 0b01, "1000mA"},
	{Discharge1500mA, 0b10, "1500mA"},
	{DischargeLimitDisabled, 0b11, "disabled"},
}

func (v DischargeCurrent) Code() (uint8, error) { return codeOf(dischargeCurrentTable, v) }
func (v DischargeCurrent) String() string       { return nameOf(dischargeCurrentTable, v) }

func ParseDischargeCurrent(s string) (DischargeCurrent, error) {
	return parseOption(dischargeCurrentTable, s)
}

// ---------------- Recharge threshold (IC_CTRL[5]) ----------------

type RechargeThreshold uint8

const (
	Recharge100mV RechargeThreshold = iota + 1 // below VBATREG; reset default
	Recharge200mV
)

var rechargeThresholdTable = []option[RechargeThreshold]{
	{Recharge100mV, 0, "100mV"},
	{Recharge200mV, 1, "200mV"},
}

func (v RechargeThreshold) Code() (uint8, error) { return codeOf(rechargeThresholdTable, v) }
func (v RechargeThreshold) String() string       { return nameOf(rechargeThresholdTable, v) }

func ParseRechargeThreshold(s string) (RechargeThreshold, error) {
	return parseOption(rechargeThresholdTable, s)
}

// ---------------- Interrupt sources ----------------

// Interrupt selects one maskable INT source. Sources live in two registers;
// in both, a set mask bit suppresses the interrupt.
type Interrupt uint8

const (
	IntThermalFault      Interrupt = iota + 1 // TS fault (MASK_ID[7])
	IntThermalRegulation                      // MASK_ID[6]
	IntBatteryRange                           // BUVLO / OCP (MASK_ID[5])
	IntPowerError                             // VIN power good / OVP (MASK_ID[4])
	IntChargingStatus                         // CHARGECTRL1[2]
	IntCurrentLimit                           // ILIM (CHARGECTRL1[1])
	IntVDPM                                   // VINDPM / VDPPM (CHARGECTRL1[0])
)

var interruptTable = []struct {
	opt  Interrupt
	mask field
	name string
}{
	{IntThermalFault, fTSIntMask, "thermal_fault"},
	{IntThermalRegulation, fTRegIntMask, "thermal_regulation"},
	{IntBatteryRange, fBatIntMask, "battery_range"},
	{IntPowerError, fPGIntMask, "power_error"},
	{IntChargingStatus, fChgStatIntMask, "charging_status"},
	{IntCurrentLimit, fILimIntMask, "current_limit"},
	{IntVDPM, fVDPMIntMask, "vdpm"},
}

// maskField returns the mask bit controlling v.
func (v Interrupt) maskField() (field, error) {
	for _, e := range interruptTable {
		if e.opt == v {
			return e.mask, nil
		}
	}
	return field{}, ErrInvalidOption
}

func (v Interrupt) String() string {
	for _, e := range interruptTable {
		if e.opt == v {
			return e.name
		}
	}
	return "invalid"
}

func ParseInterrupt(s string) (Interrupt, error) {
	for _, e := range interruptTable {
		if e.name == s {
			return e.opt, nil
		}
	}
	return 0, ErrInvalidOption
}
