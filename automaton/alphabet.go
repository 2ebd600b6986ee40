package automaton

import (
	"github.com/coregx/glushkov/internal/conv"
	"github.com/coregx/glushkov/position"
)

// ByteClasses maps each byte value to its equivalence class.
//
// Two bytes share a class when every position either accepts both or accepts
// neither, so they always produce the same per-character reachable vector and
// therefore the same transitions. Tables then need one column per class
// instead of 256.
//
// Example for a*[b-d]:
//   - Class 0: 0x00-0x60
//   - Class 1: 'a'
//   - Class 2: 'b'-'d'
//   - Class 3: 0x65-0xff
type ByteClasses struct {
	classes [256]byte
	count   int
}

// Get returns the class of b.
func (bc *ByteClasses) Get(b byte) byte {
	return bc.classes[b]
}

// Len returns the number of classes.
func (bc *ByteClasses) Len() int {
	return bc.count
}

// Representatives returns the smallest byte of each class, in class order.
func (bc *ByteClasses) Representatives() []byte {
	reps := make([]byte, 0, bc.count)
	seen := -1
	for b := 0; b < 256; b++ {
		if c := int(bc.classes[b]); c > seen {
			seen = c
			reps = append(reps, byte(b))
		}
	}
	return reps
}

// byteClassSet tracks the bytes where a class boundary ends.
type byteClassSet struct {
	bits [4]uint64
}

// setRange marks [start, end] as distinguishable from its neighbours.
func (s *byteClassSet) setRange(start, end byte) {
	if start > 0 {
		s.set(start - 1)
	}
	s.set(end)
}

func (s *byteClassSet) set(b byte) {
	s.bits[b/64] |= 1 << (b % 64)
}

func (s *byteClassSet) has(b byte) bool {
	return s.bits[b/64]&(1<<(b%64)) != 0
}

// byteClasses numbers the classes by walking the boundaries left to right.
func (s *byteClassSet) byteClasses() ByteClasses {
	var bc ByteClasses
	class := 0
	for b := 0; b < 256; b++ {
		bc.classes[b] = conv.IntToUint8(class)
		if s.has(byte(b)) && b < 255 {
			class++
		}
	}
	bc.count = class + 1
	return bc
}

// classesFor derives the alphabet partition induced by every position's
// byte interval.
func classesFor(a *position.Analysis) ByteClasses {
	var s byteClassSet
	for p := 1; p <= a.N; p++ {
		r := a.Chars[p]
		s.setRange(r.Lo, r.Hi)
	}
	return s.byteClasses()
}
