package modbusx

import (
	"testing"

	"chargecode-go/types"
)

func TestEncode_Layout(t *testing.T) {
	s := Snapshot{
		Link: types.LinkUp,
		Value: types.ChargerValue{
			Charge:   "constant_voltage",
			TS:       "warm",
			Status:   types.StatVinGood | types.StatVinOVP,
			Stamp_ms: 0x12345678 * 1000,
		},
		LastFlags: types.FlagILim,
		Events:    3,
	}
	regs := Encode(s)
	if len(regs) != BlockSize {
		t.Fatalf("len %d want %d", len(regs), BlockSize)
	}
	want := map[int]uint16{
		SlotHealth:     HealthOK,
		SlotErrorCode:  0,
		SlotCharge:     2,
		SlotTS:         3,
		SlotStatus:     0x0401,
		SlotLastFlags:  0x40,
		SlotEventCount: 3,
		SlotStampHi:    0x1234,
		SlotStampLo:    0x5678,
		SlotReserved:   0,
	}
	for slot, v := range want {
		if regs[slot] != v {
			t.Errorf("slot %d: got %#x want %#x", slot, regs[slot], v)
		}
	}
}

func TestEncode_HealthAndErrors(t *testing.T) {
	cases := []struct {
		link   types.Link
		err    string
		health uint16
		code   uint16
	}{
		{"", "", HealthUnknown, 0},
		{types.LinkDegraded, "transport", HealthDegraded, 2},
		{types.LinkDegraded, "out_of_range", HealthDegraded, 4},
		{types.LinkDegraded, "something_new", HealthDegraded, 1},
		{types.LinkDown, "", HealthDown, 0},
	}
	for _, c := range cases {
		regs := Encode(Snapshot{Link: c.link, Error: c.err})
		if regs[SlotHealth] != c.health || regs[SlotErrorCode] != c.code {
			t.Errorf("%q/%q: health=%d code=%d want %d/%d", c.link, c.err, regs[SlotHealth], regs[SlotErrorCode], c.health, c.code)
		}
	}
}

func TestPackRegisters_BigEndian(t *testing.T) {
	got := packRegisters([]uint16{0x0102, 0xA0B0})
	want := []byte{0x01, 0x02, 0xA0, 0xB0}
	if string(got) != string(want) {
		t.Fatalf("got % x want % x", got, want)
	}
}
