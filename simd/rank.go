package simd

// byteRank orders bytes by how often they occur in text and source code.
// Lower is rarer. Rare bytes make good anchors for substring search because
// they produce fewer false candidates.
var byteRank = buildRanks()

func buildRanks() [256]byte {
	var r [256]byte
	for c := 0x80; c < 0x100; c++ {
		r[c] = 5
	}
	// Lowercase letters by English frequency, most common first.
	const letters = "etaoinshrdlcumwfgypbvkjxqz"
	for i := 0; i < len(letters); i++ {
		lower := letters[i]
		r[lower] = byte(250 - 8*i)
		r[lower-'a'+'A'] = byte(130 - 4*i)
	}
	for c := '0'; c <= '9'; c++ {
		r[c] = byte(190 - 7*(c-'0'))
	}
	for _, c := range []byte(" \n\t") {
		r[c] = 255
	}
	for _, c := range []byte(".,()-_/=\"':;") {
		r[c] = 150
	}
	for _, c := range []byte("!#$%&*+<>?@[\\]^`{|}~") {
		r[c] = 40
	}
	return r
}

// ByteRank returns the frequency rank of b. Lower values are rarer.
func ByteRank(b byte) byte {
	return byteRank[b]
}

// RarestByte returns the index of the rarest byte of needle, preferring the
// later of equally ranked bytes. It panics on an empty needle.
func RarestByte(needle []byte) int {
	best := len(needle) - 1
	for i := best - 1; i >= 0; i-- {
		if byteRank[needle[i]] < byteRank[needle[best]] {
			best = i
		}
	}
	return best
}
