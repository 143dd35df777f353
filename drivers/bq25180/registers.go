// Register addresses, bitfield positions and reset defaults for the BQ25180.

package bq25180

const (
	// 7-bit I2C address (1101_010b).
	AddressDefault = 0x6A

	// BQ25180 reports device ID 0 in MASK_ID[3:0].
	DeviceIDBQ25180 = 0x0

	NumRegisters = 13
)

// Register sub-addresses.
const (
	regStat0       = 0x00 // R: charger status
	regStat1       = 0x01 // R: charger status and faults
	regFlag0       = 0x02 // R/Clear: charger flags
	regVBATCtrl    = 0x03 // R/W: battery regulation voltage
	regICHGCtrl    = 0x04 // R/W: fast charge current, CHG_DIS
	regChargeCtrl0 = 0x05 // R/W: IPRECHG, ITERM, VINDPM, THERM_REG
	regChargeCtrl1 = 0x06 // R/W: IBAT_OCP, BUVLO, interrupt masks
	regICCtrl      = 0x07 // R/W: TS_EN, VLOWV, VRCH, 2XTMR, safety timer, watchdog
	regTmrILim     = 0x08 // R/W: MR long press, autowake, ILIM
	regShipRst     = 0x09 // R/W: REG_RST, EN_RST_SHIP, push button
	regSysReg      = 0x0A // R/W: SYS_REG_CTRL, SYS_MODE, WATCHDOG_15S, VDPPM_DIS
	regTSControl   = 0x0B // R/W: TS thresholds
	regMaskID      = 0x0C // R/W: interrupt masks, device ID
)

// field is a (offset, width) pair inside one register. mask is the
// unshifted width mask.
type field struct {
	reg   byte
	shift uint8
	mask  uint8
}

func (f field) get(v byte) uint8 { return (v >> f.shift) & f.mask }

// put replaces the field's bits in v with code; all other bits are kept.
func (f field) put(v byte, code uint8) byte {
	return (v &^ (f.mask << f.shift)) | ((code & f.mask) << f.shift)
}

// Writable fields.
var (
	fVBATReg = field{regVBATCtrl, 0, 0x7F}

	fICHG   = field{regICHGCtrl, 0, 0x7F}
	fChgDis = field{regICHGCtrl, 7, 0x01}

	fIPrechg = field{regChargeCtrl0, 6, 0x01}
	fITerm   = field{regChargeCtrl0, 4, 0x03}
	fVINDPM  = field{regChargeCtrl0, 2, 0x03}

	fIBatOCP        = field{regChargeCtrl1, 6, 0x03}
	fBUVLO          = field{regChargeCtrl1, 3, 0x07}
	fChgStatIntMask = field{regChargeCtrl1, 2, 0x01}
	fILimIntMask    = field{regChargeCtrl1, 1, 0x01}
	fVDPMIntMask    = field{regChargeCtrl1, 0, 0x01}

	fTSEn        = field{regICCtrl, 7, 0x01}
	fVLowVSel    = field{regICCtrl, 6, 0x01}
	fVRch        = field{regICCtrl, 5, 0x01}
	f2xTmrEn     = field{regICCtrl, 4, 0x01}
	fSafetyTimer = field{regICCtrl, 2, 0x03}
	fWatchdogSel = field{regICCtrl, 0, 0x03}

	fILim = field{regTmrILim, 0, 0x07}

	fRegRst    = field{regShipRst, 7, 0x01}
	fEnRstShip = field{regShipRst, 5, 0x03}
	fEnPush    = field{regShipRst, 0, 0x01}

	fSysRegCtrl   = field{regSysReg, 5, 0x07}
	fSysMode      = field{regSysReg, 2, 0x03}
	fWatchdog15s  = field{regSysReg, 1, 0x01}
	fVDPPMDisable = field{regSysReg, 0, 0x01}

	fTSIntMask   = field{regMaskID, 7, 0x01}
	fTRegIntMask = field{regMaskID, 6, 0x01}
	fBatIntMask  = field{regMaskID, 5, 0x01}
	fPGIntMask   = field{regMaskID, 4, 0x01}
	fDeviceID    = field{regMaskID, 0, 0x0F}
)

// EN_RST_SHIP codes.
const (
	shipNone     = 0b00
	shipShutdown = 0b01
	shipMode     = 0b10
	shipHWReset  = 0b11
)

// Reset defaults per datasheet, for fixtures and diagnostics only; the driver
// never writes them implicitly.
var ResetDefaults = [NumRegisters]byte{
	regStat0:       0x00,
	regStat1:       0x00,
	regFlag0:       0x00,
	regVBATCtrl:    0x46, // 4200 mV
	regICHGCtrl:    0x05, // 10 mA, charging enabled
	regChargeCtrl0: 0x2C, // IPRECHG=1x, ITERM=10%, VINDPM disabled
	regChargeCtrl1: 0x56, // IBAT_OCP code 1, BUVLO=3.0 V
	regICCtrl:      0x84, // TS_EN, safety 6h, watchdog default
	regTmrILim:     0x4D, // ILIM=500 mA
	regShipRst:     0x11, // push button enabled
	regSysReg:      0x40, // SYS=4.5 V, DPPM enabled
	regTSControl:   0x00,
	regMaskID:      0x00,
}
