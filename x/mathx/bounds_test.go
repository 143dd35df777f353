package mathx

import "testing"

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(uint8(9), 2) != 2 {
		t.Fatal("Min")
	}
	if Max(3, 7) != 7 || Max(int16(-4), -9) != -4 {
		t.Fatal("Max")
	}
}

func TestInRangeInclusive(t *testing.T) {
	cases := []struct {
		v, lo, hi uint16
		want      bool
	}{
		{3500, 3500, 4650, true},
		{4650, 3500, 4650, true},
		{3499, 3500, 4650, false},
		{4651, 3500, 4650, false},
		// Reversed bounds are an empty range.
		{4000, 4650, 3500, false},
	}
	for _, c := range cases {
		if got := InRange(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("InRange(%d,%d,%d)=%v want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(130, 0, 127) != 127 || Clamp(-1, 0, 127) != 0 || Clamp(64, 0, 127) != 64 {
		t.Fatal("Clamp")
	}
}
