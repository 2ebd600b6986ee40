// Package conv provides checked integer conversions.
//
// They panic on overflow: a value out of range here means a table grew past
// the limits the automaton builder enforces, which is a programming error.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	if n < 0 || uint64(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToUint8 converts n to uint8.
// Panics if n < 0 or n > math.MaxUint8.
func IntToUint8(n int) uint8 {
	if n < 0 || n > math.MaxUint8 {
		panic("integer overflow: int value out of uint8 range")
	}
	return uint8(n)
}
