// Package bq25180 provides a minimal TinyGo driver for the TI BQ25180 1 A
// single-cell linear battery charger with power path.
//
// Design notes (datasheet references):
// • I2C, 8-bit registers 0x00..0x0C, one byte per transaction.
// • Default 7-bit address = 0b1101010.
// • Every setter is a single-field read-modify-write; bits outside the field
//   are written back as read. Nothing is cached between calls.
// • Values outside a parameter's domain are rejected before any bus access.
// • The driver does no locking. Callers sharing a Device across goroutines
//   must serialise access themselves.
package bq25180

import "tinygo.org/x/drivers"

// Config holds construction-time settings.
type Config struct {
	Address uint16 // 0 => AddressDefault
}

// Device represents a BQ25180 on an I2C bus.
type Device struct {
	i2c  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [1]byte
}

// New constructs a Device. It does not touch the bus.
func New(i2c drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	return &Device{i2c: i2c, addr: addr}
}

func (d *Device) Address() uint16 { return d.addr }

// ---------------- Register access ----------------

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}

// updateField is the read-modify-write primitive. A failed read issues no write.
func (d *Device) updateField(f field, code uint8) error {
	cur, err := d.readReg(f.reg)
	if err != nil {
		return err
	}
	return d.writeReg(f.reg, f.put(cur, code))
}

func (d *Device) readField(f field) (uint8, error) {
	v, err := d.readReg(f.reg)
	if err != nil {
		return 0, err
	}
	return f.get(v), nil
}

// updateEncoded writes a code produced by the codec. An encode error is
// returned before any bus access.
func (d *Device) updateEncoded(f field, code uint8, err error) error {
	if err != nil {
		return err
	}
	return d.updateField(f, code)
}

// ReadRegister returns the raw byte of one register.
func (d *Device) ReadRegister(reg byte) (byte, error) {
	if reg >= NumRegisters {
		return 0, ErrInvalidRegister
	}
	return d.readReg(reg)
}

// DumpRegisters reads all registers in address order. On error nothing is
// returned.
func (d *Device) DumpRegisters() ([NumRegisters]byte, error) {
	var out [NumRegisters]byte
	for i := range out {
		v, err := d.readReg(byte(i))
		if err != nil {
			return [NumRegisters]byte{}, err
		}
		out[i] = v
	}
	return out, nil
}

// ---------------- Reset / power modes ----------------

// Reset restores register defaults. A soft reset sets REG_RST; a hardware
// reset requests a full power cycle via EN_RST_SHIP. Either cancels a
// pending ship mode request.
func (d *Device) Reset(hardware bool) error {
	if hardware {
		return d.updateField(fEnRstShip, shipHWReset)
	}
	return d.updateField(fRegRst, 1)
}

// EnterShipMode requests the lowest quiescent state; the device leaves it on
// VIN insertion or a push-button press.
func (d *Device) EnterShipMode() error { return d.updateField(fEnRstShip, shipMode) }

// EnterShutdown requests shutdown mode; only VIN insertion wakes the device.
func (d *Device) EnterShutdown() error { return d.updateField(fEnRstShip, shipShutdown) }

// ReadDeviceID returns MASK_ID[3:0].
func (d *Device) ReadDeviceID() (uint8, error) { return d.readField(fDeviceID) }

// ---------------- Status ----------------

// ReadEvent reads FLAG0. Flags clear on read in hardware.
func (d *Device) ReadEvent() (Event, error) {
	v, err := d.readReg(regFlag0)
	if err != nil {
		return Event{}, err
	}
	return DecodeEvent(v), nil
}

// ReadState reads STAT0 then STAT1. If either read fails no State is returned.
func (d *Device) ReadState() (State, error) {
	s0, err := d.readReg(regStat0)
	if err != nil {
		return State{}, err
	}
	s1, err := d.readReg(regStat1)
	if err != nil {
		return State{}, err
	}
	return DecodeState(s0, s1), nil
}

// ---------------- Charge control ----------------

// EnableCharging clears or sets CHG_DIS.
func (d *Device) EnableCharging(on bool) error { return d.updateField(fChgDis, boolCode(!on)) }

// SetBatteryRegulation_mV sets VBATREG, 3500..4650 mV in 10 mV steps.
func (d *Device) SetBatteryRegulation_mV(mV uint16) error {
	code, err := EncodeBatteryRegulation(mV)
	return d.updateEncoded(fVBATReg, code, err)
}

// SetFastCharge_mA sets ICHG, 5..1000 mA.
func (d *Device) SetFastCharge_mA(mA uint16) error {
	code, err := EncodeFastCharge(mA)
	return d.updateEncoded(fICHG, code, err)
}

// SetTermination_pct sets ITERM as a percentage of ICHG (0 disables).
func (d *Device) SetTermination_pct(pct uint8) error {
	return d.updateField(fITerm, EncodeTermination(pct))
}

// SetPrechargeThreshold_mV selects VLOWV (2800 or 3000 mV).
func (d *Device) SetPrechargeThreshold_mV(mV uint16) error {
	return d.updateField(fVLowVSel, EncodePrechargeThreshold(mV))
}

// SetPrechargeCurrent selects IPRECHG as 2x or 1x the termination current.
func (d *Device) SetPrechargeCurrent(doubleTermination bool) error {
	return d.updateField(fIPrechg, boolCode(!doubleTermination))
}

// SetRechargeThreshold sets VRCH below VBATREG.
func (d *Device) SetRechargeThreshold(v RechargeThreshold) error {
	code, err := v.Code()
	return d.updateEncoded(fVRch, code, err)
}

// SetSafetyTimer sets the fast-charge safety timer. Changing it while active
// restarts the timer.
func (d *Device) SetSafetyTimer(v SafetyTimer) error {
	code, err := v.Code()
	return d.updateEncoded(fSafetyTimer, code, err)
}

// EnableSafetyTimerSlowdown toggles 2XTMR_EN: the safety timer runs at half
// rate while in DPM or thermal regulation.
func (d *Device) EnableSafetyTimerSlowdown(on bool) error {
	return d.updateField(f2xTmrEn, boolCode(on))
}

// ---------------- Battery protection ----------------

// SetBatteryUVLO_mV sets the BUVLO falling threshold, 2000..3000 mV.
func (d *Device) SetBatteryUVLO_mV(mV uint16) error {
	code, err := EncodeBatteryUVLO(mV)
	return d.updateEncoded(fBUVLO, code, err)
}

// SetDischargeCurrent sets the battery over-current (IBAT_OCP) limit.
func (d *Device) SetDischargeCurrent(v DischargeCurrent) error {
	code, err := v.Code()
	return d.updateEncoded(fIBatOCP, code, err)
}

// EnableThermalProtection toggles TS_EN.
func (d *Device) EnableThermalProtection(on bool) error {
	return d.updateField(fTSEn, boolCode(on))
}

// ---------------- Input / system path ----------------

// SetInputCurrentLimit_mA sets ILIM, rounding down to a supported step.
func (d *Device) SetInputCurrentLimit_mA(mA uint16) error {
	return d.updateField(fILim, EncodeInputCurrentLimit(mA))
}

// SetVINDPM sets the input voltage DPM threshold.
func (d *Device) SetVINDPM(v VINDPM) error {
	code, err := v.Code()
	return d.updateEncoded(fVINDPM, code, err)
}

// EnableDPPM clears or sets VDPPM_DIS.
func (d *Device) EnableDPPM(on bool) error {
	return d.updateField(fVDPPMDisable, boolCode(!on))
}

// SetSysSource selects how SYS is powered outside ship mode.
func (d *Device) SetSysSource(v SysSource) error {
	code, err := v.Code()
	return d.updateEncoded(fSysMode, code, err)
}

// SetSysRegulation sets the SYS regulation target.
func (d *Device) SetSysRegulation(v SysRegulation) error {
	code, err := v.Code()
	return d.updateEncoded(fSysRegCtrl, code, err)
}

// ---------------- Host interface ----------------

// SetWatchdog sets the I2C watchdog. On expiry all charger parameter
// registers return to defaults.
func (d *Device) SetWatchdog(v Watchdog) error {
	code, err := v.Code()
	return d.updateEncoded(fWatchdogSel, code, err)
}

// EnableWatchdog15s toggles the 15 s watchdog override in SYS_REG.
func (d *Device) EnableWatchdog15s(on bool) error {
	return d.updateField(fWatchdog15s, boolCode(on))
}

// EnablePushButton toggles EN_PUSH on the MR pin.
func (d *Device) EnablePushButton(on bool) error {
	return d.updateField(fEnPush, boolCode(on))
}

// EnableInterrupt unmasks one INT source.
func (d *Device) EnableInterrupt(src Interrupt) error { return d.maskInterrupt(src, false) }

// DisableInterrupt masks one INT source.
func (d *Device) DisableInterrupt(src Interrupt) error { return d.maskInterrupt(src, true) }

func (d *Device) maskInterrupt(src Interrupt, masked bool) error {
	f, err := src.maskField()
	if err != nil {
		return err
	}
	return d.updateField(f, boolCode(masked))
}
