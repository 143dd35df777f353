package bq25180

import "chargecode-go/x/mathx"

// Field codec: physical value -> register code. No bus access.

// Documented domains.
const (
	BatRegMin_mV = 3500
	BatRegMax_mV = 4650
	batRegStep   = 10

	BatUVLOMin_mV = 2000
	BatUVLOMax_mV = 3000

	FastChargeMin_mA  = 5
	FastChargeMax_mA  = 1000
	fastChargeMaxCode = 127 // 1000 mA
)

// threshold pairs a cut point with the code selected when it applies.
type threshold struct {
	at   uint16
	code uint8
}

// Descending: first entry whose cut point the value exceeds wins.
var uvloSteps = []threshold{
	{2800, 0b010}, // 3000 mV
	{2600, 0b011}, // 2800 mV
	{2400, 0b100}, // 2600 mV
	{2200, 0b101}, // 2400 mV
	{2000, 0b110}, // 2200 mV
}

const uvloFloorCode = 0b111 // 2000 mV

// Ascending: last entry whose cut point the value reaches wins.
var ilimSteps = []threshold{
	{100, 1},
	{200, 2},
	{300, 3},
	{400, 4},
	{500, 5},
	{700, 6},
	{1100, 7},
}

var itermSteps = []threshold{
	{5, 0b01},
	{10, 0b10},
	{20, 0b11},
}

// stepUp returns the code of the highest threshold not above v, or 0.
func stepUp(steps []threshold, v uint16) uint8 {
	var code uint8
	for _, s := range steps {
		if v < s.at {
			break
		}
		code = s.code
	}
	return code
}

// EncodeBatteryRegulation maps 3500..4650 mV onto VBATREG in 10 mV steps.
func EncodeBatteryRegulation(mV uint16) (uint8, error) {
	if !mathx.InRange(mV, BatRegMin_mV, BatRegMax_mV) {
		return 0, &RangeError{Param: "battery regulation", Value: int(mV), Min: BatRegMin_mV, Max: BatRegMax_mV, Unit: "mV"}
	}
	return uint8((mV - BatRegMin_mV) / batRegStep), nil
}

// EncodeBatteryUVLO maps 2000..3000 mV onto one of six BUVLO levels. Values
// between levels select the next level down.
func EncodeBatteryUVLO(mV uint16) (uint8, error) {
	if !mathx.InRange(mV, BatUVLOMin_mV, BatUVLOMax_mV) {
		return 0, &RangeError{Param: "battery uvlo", Value: int(mV), Min: BatUVLOMin_mV, Max: BatUVLOMax_mV, Unit: "mV"}
	}
	for _, s := range uvloSteps {
		if mV > s.at {
			return s.code, nil
		}
	}
	return uvloFloorCode, nil
}

// EncodeInputCurrentLimit maps mA onto ILIM: 50, 100, 200, 300, 400, 500,
// 700 or 1100 mA, rounding down. Anything under 100 mA selects 50 mA.
func EncodeInputCurrentLimit(mA uint16) uint8 { return stepUp(ilimSteps, mA) }

// EncodePrechargeThreshold selects VLOWV: 2800 mV at or below 2800, else 3000 mV.
func EncodePrechargeThreshold(mV uint16) uint8 {
	if mV <= 2800 {
		return 1
	}
	return 0
}

// EncodeTermination maps a percentage of ICHG onto ITERM: 0 (disabled), 5,
// 10 or 20 %, rounding down.
func EncodeTermination(pct uint8) uint8 { return stepUp(itermSteps, uint16(pct)) }

// EncodeFastCharge maps 5..1000 mA onto ICHG. Up to 35 mA the step is 1 mA
// (code = mA-5); from 40 mA the step is 10 mA (code = mA/10+27). 36..39 mA is
// not representable and falls through to the 10 mA formula, landing on the
// 35 mA code.
func EncodeFastCharge(mA uint16) (uint8, error) {
	if !mathx.InRange(mA, FastChargeMin_mA, FastChargeMax_mA) {
		return 0, &RangeError{Param: "fast charge current", Value: int(mA), Min: FastChargeMin_mA, Max: FastChargeMax_mA, Unit: "mA"}
	}
	if mA <= 35 {
		return uint8(mA - FastChargeMin_mA), nil
	}
	return uint8(mathx.Min(mA/10+27, fastChargeMaxCode)), nil
}

// boolCode maps true to 1.
func boolCode(on bool) uint8 {
	if on {
		return 1
	}
	return 0
}
