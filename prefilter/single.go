package prefilter

import (
	"github.com/coregx/glushkov/simd"
)

// memchrFinder finds a single one-byte literal.
type memchrFinder struct {
	needle byte
	lits   [][]byte
}

func newMemchrFinder(needle byte) *memchrFinder {
	return &memchrFinder{needle: needle, lits: [][]byte{{needle}}}
}

func (f *memchrFinder) FindAt(haystack []byte, at int, dst []Occurrence) []Occurrence {
	if at < 0 || at >= len(haystack) {
		return dst
	}
	i := simd.Memchr(haystack[at:], f.needle)
	if i < 0 {
		return dst
	}
	return append(dst, Occurrence{Start: at + i, End: at + i + 1})
}

func (f *memchrFinder) Literals() [][]byte { return f.lits }
func (f *memchrFinder) HeapBytes() int { return 0 }

// memchr2Finder finds two one-byte literals.
type memchr2Finder struct {
	b1, b2 byte
	lits   [][]byte
}

func newMemchr2Finder(lits [][]byte) *memchr2Finder {
	return &memchr2Finder{b1: lits[0][0], b2: lits[1][0], lits: lits}
}

func (f *memchr2Finder) FindAt(haystack []byte, at int, dst []Occurrence) []Occurrence {
	if at < 0 || at >= len(haystack) {
		return dst
	}
	i := simd.Memchr2(haystack[at:], f.b1, f.b2)
	if i < 0 {
		return dst
	}
	start := at + i
	lit := 0
	if haystack[start] != f.b1 {
		lit = 1
	}
	return append(dst, Occurrence{Start: start, End: start + 1, Literal: lit})
}

func (f *memchr2Finder) Literals() [][]byte { return f.lits }
func (f *memchr2Finder) HeapBytes() int { return 0 }

// memmemFinder finds a single literal of two or more bytes.
type memmemFinder struct {
	finder *simd.Finder
	lits   [][]byte
}

func newMemmemFinder(needle []byte) *memmemFinder {
	f := simd.NewFinder(needle)
	return &memmemFinder{finder: f, lits: [][]byte{f.Needle()}}
}

func (f *memmemFinder) FindAt(haystack []byte, at int, dst []Occurrence) []Occurrence {
	if at < 0 || at >= len(haystack) {
		return dst
	}
	i := f.finder.Index(haystack[at:])
	if i < 0 {
		return dst
	}
	start := at + i
	return append(dst, Occurrence{Start: start, End: start + len(f.finder.Needle())})
}

func (f *memmemFinder) Literals() [][]byte { return f.lits }
func (f *memmemFinder) HeapBytes() int { return len(f.finder.Needle()) }

// byteSetFinder finds a set of one-byte literals with a table lookup per
// haystack byte.
type byteSetFinder struct {
	table [256]bool
	index [256]int
	lits  [][]byte
}

func newByteSetFinder(lits [][]byte) *byteSetFinder {
	f := &byteSetFinder{lits: lits}
	for i := len(lits) - 1; i >= 0; i-- {
		c := lits[i][0]
		f.table[c] = true
		f.index[c] = i
	}
	return f
}

func (f *byteSetFinder) FindAt(haystack []byte, at int, dst []Occurrence) []Occurrence {
	if at < 0 || at >= len(haystack) {
		return dst
	}
	i := simd.MemchrInTable(haystack[at:], &f.table)
	if i < 0 {
		return dst
	}
	start := at + i
	return append(dst, Occurrence{Start: start, End: start + 1, Literal: f.index[haystack[start]]})
}

func (f *byteSetFinder) Literals() [][]byte { return f.lits }
func (f *byteSetFinder) HeapBytes() int { return 0 }
