package bq25180

// Event holds the FLAG0 latches. All fields are always populated.
type Event struct {
	BatteryOvercurrent  bool // BAT_OCP_FAULT
	BatteryUndervoltage bool // BUVLO_FAULT_FLAG
	InputOvervoltage    bool // VIN_OVP_FAULT_FLAG
	ThermalRegulation   bool // THERMREG_ACTIVE_FLAG
	VINDPMFault         bool // VINDPM_ACTIVE_FLAG
	VDPPMFault          bool // VDPPM_ACTIVE_FLAG
	ILimFault           bool // ILIM_ACTIVE_FLAG
	BatteryThermalFault bool // TS_FAULT
}

// Any reports whether at least one flag is set.
func (e Event) Any() bool { return e != Event{} }

// ChargeStatus is STAT0[6:5] (CHG_STAT).
type ChargeStatus uint8

const (
	NotCharging     ChargeStatus = 0b00 // not charging, or charging disabled
	ConstantCurrent ChargeStatus = 0b01 // CC: precharge or fast charge
	ConstantVoltage ChargeStatus = 0b10 // CV: taper
	ChargeDone      ChargeStatus = 0b11 // done or charging disabled
)

func (c ChargeStatus) String() string {
	switch c {
	case NotCharging:
		return "not_charging"
	case ConstantCurrent:
		return "constant_current"
	case ConstantVoltage:
		return "constant_voltage"
	case ChargeDone:
		return "done"
	default:
		return "invalid"
	}
}

// TSStatus is STAT1[4:3] (TS_STAT).
type TSStatus uint8

const (
	TSNormal    TSStatus = 0b00
	TSSuspended TSStatus = 0b01 // cold or hot: charging suspended
	TSCool      TSStatus = 0b10 // reduced current
	TSWarm      TSStatus = 0b11 // reduced voltage
)

func (t TSStatus) String() string {
	switch t {
	case TSNormal:
		return "normal"
	case TSSuspended:
		return "suspended"
	case TSCool:
		return "cool"
	case TSWarm:
		return "warm"
	default:
		return "invalid"
	}
}

// State holds STAT0 and STAT1. It is only ever returned fully populated.
type State struct {
	// STAT0
	VinGood                 bool // VIN_PGOOD_STAT
	ThermalRegulationActive bool // THERMREG_ACTIVE_STAT
	VINDPMActive            bool // VINDPM_ACTIVE_STAT
	VDPPMActive             bool // VDPPM_ACTIVE_STAT
	ILimActive              bool // ILIM_ACTIVE_STAT
	Charge                  ChargeStatus
	TSOpen                  bool // TS_OPEN_STAT

	// STAT1
	Wake2Raised               bool // WAKE2_FLAG
	Wake1Raised               bool // WAKE1_FLAG
	SafetyTimerFault          bool // SAFETY_TMR_FAULT_FLAG
	TS                        TSStatus
	BatteryUndervoltageActive bool // BUVLO_STAT
	VinOvervoltageActive      bool // VIN_OVP_STAT
}

func bit(v byte, n uint8) bool { return v>>n&1 != 0 }

// DecodeEvent unpacks FLAG0.
func DecodeEvent(flag0 byte) Event {
	return Event{
		BatteryOvercurrent:  bit(flag0, 0),
		BatteryUndervoltage: bit(flag0, 1),
		InputOvervoltage:    bit(flag0, 2),
		ThermalRegulation:   bit(flag0, 3),
		VINDPMFault:         bit(flag0, 4),
		VDPPMFault:          bit(flag0, 5),
		ILimFault:           bit(flag0, 6),
		BatteryThermalFault: bit(flag0, 7),
	}
}

// DecodeState unpacks STAT0 and STAT1. STAT1[5] is reserved and ignored.
func DecodeState(stat0, stat1 byte) State {
	return State{
		VinGood:                 bit(stat0, 0),
		ThermalRegulationActive: bit(stat0, 1),
		VINDPMActive:            bit(stat0, 2),
		VDPPMActive:             bit(stat0, 3),
		ILimActive:              bit(stat0, 4),
		Charge:                  ChargeStatus(stat0>>5&0b11),
		TSOpen:                  bit(stat0, 7),

		Wake2Raised:               bit(stat1, 0),
		Wake1Raised:               bit(stat1, 1),
		SafetyTimerFault:          bit(stat1, 2),
		TS:                        TSStatus(stat1>>3&0b11),
		BatteryUndervoltageActive: bit(stat1, 6),
		VinOvervoltageActive:      bit(stat1, 7),
	}
}
