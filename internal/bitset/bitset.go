// Package bitset provides the fixed-width bit vectors used as automaton state
// values.
//
// A Set of width n holds bits 0..n-1. Sets taking part in the same computation
// must share one width; every binary operation panics otherwise, since mixing
// widths means two different patterns' positions are being combined.
//
// Sets wrap a *bitset.BitSet from github.com/bits-and-blooms/bitset and add
// the fixed width and a canonical Key. Operations that return a Set allocate
// a fresh one; Add, Or and And mutate the receiver's bits.
package bitset

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Set is a fixed-width bit vector.
type Set struct {
	b     *bitset.BitSet
	width int
}

// New returns an empty set able to hold bits 0..width-1.
func New(width int) Set {
	if width < 0 {
		panic("bitset: negative width")
	}
	return Set{b: bitset.New(uint(width)), width: width}
}

// Of returns a set of the given width with the listed bits set.
func Of(width int, bits ...int) Set {
	s := New(width)
	for _, b := range bits {
		s.Add(b)
	}
	return s
}

// Full returns a set of the given width with every bit set.
func Full(width int) Set {
	s := New(width)
	for i := 0; i < width; i++ {
		s.b.Set(uint(i))
	}
	return s
}

// Width returns the number of addressable bits.
func (s Set) Width() int {
	return s.width
}

// Add sets bit i.
func (s Set) Add(i int) {
	s.check(i)
	s.b.Set(uint(i))
}

// Has reports whether bit i is set.
func (s Set) Has(i int) bool {
	if i < 0 || i >= s.width {
		return false
	}
	return s.b.Test(uint(i))
}

// Or sets every bit of t in s.
func (s Set) Or(t Set) {
	s.same(t)
	if s.width > 0 {
		s.b.InPlaceUnion(t.b)
	}
}

// And clears every bit of s that is not in t.
func (s Set) And(t Set) {
	s.same(t)
	if s.width > 0 {
		s.b.InPlaceIntersection(t.b)
	}
}

// Union returns s ∪ t as a new set.
func (s Set) Union(t Set) Set {
	r := s.Clone()
	r.Or(t)
	return r
}

// Intersect returns s ∩ t as a new set.
func (s Set) Intersect(t Set) Set {
	r := s.Clone()
	r.And(t)
	return r
}

// Intersects reports whether s and t share at least one bit.
func (s Set) Intersects(t Set) bool {
	s.same(t)
	return s.width > 0 && s.b.IntersectionCardinality(t.b) > 0
}

// IsEmpty reports whether no bit is set.
func (s Set) IsEmpty() bool {
	return s.width == 0 || s.b.None()
}

// Equal reports whether s and t hold the same bits. Sets of different width
// are never equal.
func (s Set) Equal(t Set) bool {
	if s.width != t.width {
		return false
	}
	return s.width == 0 || s.b.Equal(t.b)
}

// Len returns the number of set bits.
func (s Set) Len() int {
	if s.width == 0 {
		return 0
	}
	return int(s.b.Count())
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	if s.b == nil {
		return New(s.width)
	}
	return Set{b: s.b.Clone(), width: s.width}
}

// Each calls f for every set bit in ascending order.
func (s Set) Each(f func(i int)) {
	if s.width == 0 {
		return
	}
	for i, ok := s.b.NextSet(0); ok; i, ok = s.b.NextSet(i + 1) {
		f(int(i))
	}
}

// Bits returns the set bits in ascending order.
func (s Set) Bits() []int {
	out := make([]int, 0, s.Len())
	s.Each(func(i int) { out = append(out, i) })
	return out
}

// Key returns a canonical string for s. Two sets of the same width have the
// same key iff they are Equal, which makes Key suitable as a map key for
// value-addressed memo tables.
func (s Set) Key() string {
	if s.width == 0 {
		return ""
	}
	words := s.b.Bytes()
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[8*i:], w)
	}
	return string(buf)
}

// String renders s as "{1 4 7}".
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	s.Each(func(i int) {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(strconv.Itoa(i))
	})
	b.WriteByte('}')
	return b.String()
}

func (s Set) check(i int) {
	if i < 0 || i >= s.width {
		panic("bitset: bit " + strconv.Itoa(i) + " out of range for width " + strconv.Itoa(s.width))
	}
}

func (s Set) same(t Set) {
	if s.width != t.width {
		panic("bitset: width mismatch " + strconv.Itoa(s.width) + " != " + strconv.Itoa(t.width))
	}
}
