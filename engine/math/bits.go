package math

import "golang.org/x/exp/constraints"

// HasAny reports whether a and b share at least one set bit.
func HasAny[T constraints.Unsigned](a, b T) bool {
	return a&b != 0
}

// HasAll reports whether every bit of b is also set in a.
// An empty b is always contained.
func HasAll[T constraints.Unsigned](a, b T) bool {
	return a&b == b
}

// Bits splits m into its individual set bits, lowest first.
func Bits[T constraints.Unsigned](m T) []T {
	var bits []T
	for m != 0 {
		low := m & -m
		bits = append(bits, low)
		m &^= low
	}
	return bits
}

// PopCount returns the number of set bits in m.
func PopCount[T constraints.Unsigned](m T) int {
	n := 0
	for ; m != 0; m &= m - 1 {
		n++
	}
	return n
}
