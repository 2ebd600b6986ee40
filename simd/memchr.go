// Package simd provides the byte-search primitives behind the single-literal
// finders: a word-at-a-time memchr, a byte-set scan and a rare-byte memmem.
//
// Everything is portable Go. Eight input bytes are tested per step by
// treating them as one uint64 (SWAR).
package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// zeroBytes returns a mask with the high bit set in every zero byte of v,
// exact for the lowest zero byte.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// Memchr returns the index of the first instance of needle in haystack, or
// -1 if needle is not present.
func Memchr(haystack []byte, needle byte) int {
	mask := uint64(needle) * lo8
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		w := binary.LittleEndian.Uint64(haystack[i:]) ^ mask
		if z := zeroBytes(w); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// Memchr2 returns the index of the first instance of needle1 or needle2 in
// haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	m1 := uint64(needle1) * lo8
	m2 := uint64(needle2) * lo8
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		w := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(w^m1) | zeroBytes(w^m2); z != 0 {
			// Borrow artifacts only appear above a true zero byte, so the
			// lowest flagged byte is exact.
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if c := haystack[i]; c == needle1 || c == needle2 {
			return i
		}
	}
	return -1
}

// MemchrInTable returns the index of the first byte of haystack whose table
// entry is set, or -1.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	for i, c := range haystack {
		if table[c] {
			return i
		}
	}
	return -1
}
