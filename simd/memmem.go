package simd

import "bytes"

// Finder searches for one needle. The rare byte is chosen once, so a Finder
// amortizes setup over repeated searches.
type Finder struct {
	needle []byte
	rare   int
}

// NewFinder returns a Finder for needle. The needle is copied; it must not
// be empty.
func NewFinder(needle []byte) *Finder {
	return &Finder{needle: bytes.Clone(needle), rare: RarestByte(needle)}
}

// Needle returns the searched bytes.
func (f *Finder) Needle() []byte {
	return f.needle
}

// Index returns the index of the first occurrence of the needle in
// haystack, or -1.
func (f *Finder) Index(haystack []byte) int {
	n := len(f.needle)
	rb := f.needle[f.rare]
	// Candidate rare bytes live in [rare, len-n+rare].
	lo, hi := f.rare, len(haystack)-n+f.rare
	for lo <= hi {
		i := Memchr(haystack[lo:hi+1], rb)
		if i < 0 {
			return -1
		}
		start := lo + i - f.rare
		if bytes.Equal(haystack[start:start+n], f.needle) {
			return start
		}
		lo += i + 1
	}
	return -1
}
