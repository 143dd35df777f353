package bq25180

import (
	"errors"
	"testing"
)

func TestEncodeBatteryRegulation(t *testing.T) {
	for mV := uint16(BatRegMin_mV); mV <= BatRegMax_mV; mV += 10 {
		code, err := EncodeBatteryRegulation(mV)
		if err != nil {
			t.Fatalf("%d mV: %v", mV, err)
		}
		if want := uint8((mV - 3500) / 10); code != want {
			t.Fatalf("%d mV: code %d want %d", mV, code, want)
		}
	}
	// Off-step values truncate.
	if code, _ := EncodeBatteryRegulation(4209); code != 0x46 {
		t.Fatalf("4209 mV: code %#x want 0x46", code)
	}
	for _, mV := range []uint16{0, 3499, 4651, 65535} {
		if _, err := EncodeBatteryRegulation(mV); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%d mV: err %v want ErrOutOfRange", mV, err)
		}
	}
}

func TestEncodeBatteryUVLO(t *testing.T) {
	cases := []struct {
		mV   uint16
		code uint8
	}{
		{3000, 0b010}, {2801, 0b010},
		{2800, 0b011}, {2601, 0b011},
		{2600, 0b100}, {2401, 0b100},
		{2400, 0b101}, {2201, 0b101},
		{2200, 0b110}, {2001, 0b110},
		{2000, 0b111},
	}
	for _, c := range cases {
		code, err := EncodeBatteryUVLO(c.mV)
		if err != nil || code != c.code {
			t.Fatalf("%d mV: code %03b err %v want %03b", c.mV, code, err, c.code)
		}
	}
	for _, mV := range []uint16{1999, 3001} {
		if _, err := EncodeBatteryUVLO(mV); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%d mV: err %v want ErrOutOfRange", mV, err)
		}
	}
}

func TestEncodeFastCharge(t *testing.T) {
	cases := []struct {
		mA   uint16
		code uint8
	}{
		{5, 0}, {10, 5}, {35, 30},
		{36, 30}, {39, 30},
		{40, 31}, {45, 31}, {100, 37}, {500, 77}, {999, 126}, {1000, 127},
	}
	for _, c := range cases {
		code, err := EncodeFastCharge(c.mA)
		if err != nil || code != c.code {
			t.Fatalf("%d mA: code %d err %v want %d", c.mA, code, err, c.code)
		}
	}
	for _, mA := range []uint16{0, 4, 1001} {
		_, err := EncodeFastCharge(mA)
		var re *RangeError
		if !errors.As(err, &re) || re.Min != FastChargeMin_mA || re.Max != FastChargeMax_mA {
			t.Fatalf("%d mA: err %v", mA, err)
		}
	}
}

func TestEncodeInputCurrentLimit(t *testing.T) {
	cases := []struct {
		mA   uint16
		code uint8
	}{
		{0, 0}, {50, 0}, {99, 0},
		{100, 1}, {199, 1},
		{200, 2}, {300, 3}, {400, 4},
		{500, 5}, {699, 5},
		{700, 6}, {1099, 6},
		{1100, 7}, {5000, 7},
	}
	for _, c := range cases {
		if got := EncodeInputCurrentLimit(c.mA); got != c.code {
			t.Fatalf("%d mA: code %d want %d", c.mA, got, c.code)
		}
	}
}

func TestEncodeTermination(t *testing.T) {
	cases := []struct {
		pct  uint8
		code uint8
	}{{0, 0}, {4, 0}, {5, 1}, {9, 1}, {10, 2}, {19, 2}, {20, 3}, {100, 3}}
	for _, c := range cases {
		if got := EncodeTermination(c.pct); got != c.code {
			t.Fatalf("%d%%: code %d want %d", c.pct, got, c.code)
		}
	}
}

func TestEncodePrechargeThreshold(t *testing.T) {
	for mV, want := range map[uint16]uint8{0: 1, 2800: 1, 2801: 0, 3000: 0, 5000: 0} {
		if got := EncodePrechargeThreshold(mV); got != want {
			t.Fatalf("%d mV: code %d want %d", mV, got, want)
		}
	}
}

func TestRangeErrorMessage(t *testing.T) {
	_, err := EncodeBatteryUVLO(1500)
	want := "bq25180: battery uvlo 1500mV outside [2000, 3000]mV"
	if err == nil || err.Error() != want {
		t.Fatalf("got %q want %q", err, want)
	}
}

// Option tables: every listed value has a distinct in-width code and a name
// that parses back to it; the zero value is rejected.
func checkTable[T ~uint8](t *testing.T, name string, table []option[T], width uint8,
	code func(T) (uint8, error), str func(T) string, parse func(string) (T, error)) {
	t.Helper()
	seen := map[uint8]bool{}
	for _, e := range table {
		c, err := code(e.opt)
		if err != nil || c != e.code {
			t.Fatalf("%s %v: code %d err %v", name, e.opt, c, err)
		}
		if c > width || seen[c] {
			t.Fatalf("%s %v: code %d reused or too wide", name, e.opt, c)
		}
		seen[c] = true
		p, err := parse(str(e.opt))
		if err != nil || p != e.opt {
			t.Fatalf("%s %q: parsed %v err %v", name, str(e.opt), p, err)
		}
	}
	if _, err := code(0); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("%s zero value: err %v", name, err)
	}
	if str(0) != "invalid" {
		t.Fatalf("%s zero value: name %q", name, str(0))
	}
	if _, err := parse("bogus"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("%s bogus: err %v", name, err)
	}
}

func TestOptionTables(t *testing.T) {
	checkTable(t, "safety_timer", safetyTimerTable, 0b11, SafetyTimer.Code, SafetyTimer.String, ParseSafetyTimer)
	checkTable(t, "watchdog", watchdogTable, 0b11, Watchdog.Code, Watchdog.String, ParseWatchdog)
	checkTable(t, "vindpm", vindpmTable, 0b11, VINDPM.Code, VINDPM.String, ParseVINDPM)
	checkTable(t, "sys_source", sysSourceTable, 0b11, SysSource.Code, SysSource.String, ParseSysSource)
	checkTable(t, "sys_regulation", sysRegulationTable, 0b111, SysRegulation.Code, SysRegulation.String, ParseSysRegulation)
	checkTable(t, "discharge", dischargeCurrentTable, 0b11, DischargeCurrent.Code, DischargeCurrent.String, ParseDischargeCurrent)
	checkTable(t, "recharge", rechargeThresholdTable, 1, RechargeThreshold.Code, RechargeThreshold.String, ParseRechargeThreshold)
}

func TestInterruptNames(t *testing.T) {
	for _, e := range interruptTable {
		got, err := ParseInterrupt(e.opt.String())
		if err != nil || got != e.opt {
			t.Fatalf("%v: parsed %v err %v", e.opt, got, err)
		}
		if e.mask.mask != 1 {
			t.Fatalf("%v: mask field wider than one bit", e.opt)
		}
	}
	if _, err := ParseInterrupt("nope"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("err %v", err)
	}
}

func TestFieldPutPreservesForeignBits(t *testing.T) {
	fields := []field{
		fVBATReg, fICHG, fChgDis, fIPrechg, fITerm, fVINDPM, fIBatOCP, fBUVLO,
		fTSEn, fVLowVSel, fVRch, f2xTmrEn, fSafetyTimer, fWatchdogSel, fILim,
		fRegRst, fEnRstShip, fEnPush, fSysRegCtrl, fSysMode, fWatchdog15s, fVDPPMDisable,
		fTSIntMask, fChgStatIntMask,
	}
	for _, f := range fields {
		outside := ^(f.mask << f.shift)
		for v := 0; v < 256; v++ {
			for code := uint8(0); code <= f.mask; code++ {
				got := f.put(byte(v), code)
				if got&outside != byte(v)&outside {
					t.Fatalf("field %+v put(%#02x, %d) = %#02x clobbers foreign bits", f, v, code, got)
				}
				if f.get(got) != code {
					t.Fatalf("field %+v put(%#02x, %d) reads back %d", f, v, code, f.get(got))
				}
			}
		}
	}
}

func TestDecodeEventAny(t *testing.T) {
	if DecodeEvent(0).Any() {
		t.Fatal("zero flags reported as event")
	}
	for b := 0; b < 8; b++ {
		if !DecodeEvent(1 << b).Any() {
			t.Fatalf("bit %d not reported", b)
		}
	}
}

func TestDecodeStateIgnoresReservedBit(t *testing.T) {
	if DecodeState(0, 0x20) != (State{}) {
		t.Fatal("STAT1[5] leaked into State")
	}
	if ChargeStatus(9).String() != "invalid" || TSCool.String() != "cool" {
		t.Fatal("status names")
	}
}
