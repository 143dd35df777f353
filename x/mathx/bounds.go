// Package mathx holds small generic helpers for integer firmware maths.
package mathx

import "golang.org/x/exp/constraints"

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// InRange reports lo <= v && v <= hi. Bounds are not swapped.
func InRange[T constraints.Ordered](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Max(lo, Min(v, hi))
}
