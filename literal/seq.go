// Package literal provides the factor analysis of a pattern: the literal
// strings that every match is guaranteed to start with, end with or contain.
//
// Key concepts:
//   - A Seq is a finite set of alternative literals
//   - A nil *Seq is poisoned: no finite set of literals is known
//   - Seqs are compared by Score (mean literal length, then fewer literals)
//
// The multi-pattern scanner searches the input for the selected literals
// only, and anchors the automata of a pattern at each occurrence.
package literal

import (
	"bytes"
	"slices"
	"strings"
)

// Seq is a set of alternative literal byte strings.
//
// A nil *Seq is poisoned and absorbs every operation: the union or cross
// product with a poisoned Seq is poisoned.
//
// Example:
//
//	seq := literal.NewSeq("foo", "bar")
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	lits [][]byte
}

// NewSeq creates a sequence from the given strings. Duplicates are removed
// and literals are kept sorted.
func NewSeq(lits ...string) *Seq {
	s := &Seq{lits: make([][]byte, 0, len(lits))}
	for _, l := range lits {
		s.lits = append(s.lits, []byte(l))
	}
	s.canonicalize()
	return s
}

// emptyString is the Seq holding only "", the neutral element of Cross.
func emptyString() *Seq {
	return &Seq{lits: [][]byte{{}}}
}

// Len returns the number of literals. A poisoned Seq has none.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lits)
}

// Get returns the i-th literal in sorted order.
func (s *Seq) Get(i int) []byte {
	return s.lits[i]
}

// Literals returns the literals in sorted order. The slices must not be
// modified.
func (s *Seq) Literals() [][]byte {
	if s == nil {
		return nil
	}
	return s.lits
}

// IsPoisoned reports whether no finite literal set is known.
func (s *Seq) IsPoisoned() bool {
	return s == nil
}

// HasEmpty reports whether the empty string is in the set.
func (s *Seq) HasEmpty() bool {
	return s != nil && len(s.lits) > 0 && len(s.lits[0]) == 0
}

// Usable reports whether the Seq can drive a literal search: it must not
// be poisoned and must not contain the empty string. An empty set is
// usable; it witnesses a pattern that never matches.
func (s *Seq) Usable() bool {
	return s != nil && !s.HasEmpty()
}

// MinLen returns the length of the shortest literal, or 0 for an empty or
// poisoned Seq.
func (s *Seq) MinLen() int {
	if s.Len() == 0 {
		return 0
	}
	n := len(s.lits[0])
	for _, l := range s.lits[1:] {
		n = min(n, len(l))
	}
	return n
}

// MaxLen returns the length of the longest literal.
func (s *Seq) MaxLen() int {
	n := 0
	for _, l := range s.Literals() {
		n = max(n, len(l))
	}
	return n
}

// Score returns the mean literal length. Longer literals occur less often
// in text, so a higher score is a more selective set.
func (s *Seq) Score() float64 {
	if s.Len() == 0 {
		return 0
	}
	total := 0
	for _, l := range s.lits {
		total += len(l)
	}
	return float64(total) / float64(len(s.lits))
}

// Better returns the more selective of a and b. Unusable sets lose to
// usable ones; among usable sets the higher Score wins, then the smaller
// set. On a full tie a is returned. An unusable but unpoisoned set beats a
// poisoned one.
func Better(a, b *Seq) *Seq {
	if !b.Usable() {
		if a == nil {
			return b
		}
		return a
	}
	if !a.Usable() {
		return b
	}
	sa, sb := a.Score(), b.Score()
	switch {
	case sb > sa:
		return b
	case sb < sa:
		return a
	case b.Len() < a.Len():
		return b
	}
	return a
}

// Clone returns a deep copy.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	c := &Seq{lits: make([][]byte, len(s.lits))}
	for i, l := range s.lits {
		c.lits[i] = bytes.Clone(l)
	}
	return c
}

// Union returns the set union, or nil if either side is poisoned or the
// result would hold more than maxLits literals.
func Union(a, b *Seq, maxLits int) *Seq {
	if a == nil || b == nil {
		return nil
	}
	u := &Seq{lits: make([][]byte, 0, len(a.lits)+len(b.lits))}
	u.lits = append(u.lits, a.lits...)
	u.lits = append(u.lits, b.lits...)
	u.canonicalize()
	if len(u.lits) > maxLits {
		return nil
	}
	return u
}

// Cut selects how Cross shortens literals longer than its length limit.
type Cut uint8

const (
	// CutPoison poisons the result instead of shortening a literal.
	CutPoison Cut = iota
	// CutKeepPrefix keeps the first bytes of a long literal.
	CutKeepPrefix
	// CutKeepSuffix keeps the last bytes of a long literal.
	CutKeepSuffix
)

// Cross returns every concatenation of a literal of a with a literal of b.
// Literals longer than maxLen are shortened according to cut. The result
// is nil if either side is poisoned or it would hold more than maxLits
// literals.
func Cross(a, b *Seq, maxLits, maxLen int, cut Cut) *Seq {
	if a == nil || b == nil {
		return nil
	}
	if len(a.lits)*len(b.lits) > maxLits*maxLits {
		// Too large to shrink back under maxLits.
		return nil
	}
	x := &Seq{lits: make([][]byte, 0, len(a.lits)*len(b.lits))}
	for _, l := range a.lits {
		for _, r := range b.lits {
			lit := make([]byte, 0, len(l)+len(r))
			x.lits = append(x.lits, append(append(lit, l...), r...))
		}
	}
	x = x.Truncate(maxLen, cut)
	if x == nil || len(x.lits) > maxLits {
		return nil
	}
	return x
}

// Truncate shortens every literal to at most n bytes, keeping the end
// selected by cut, and removes duplicates. CutPoison poisons the Seq if a
// literal is longer than n.
func (s *Seq) Truncate(n int, cut Cut) *Seq {
	if s == nil {
		return nil
	}
	t := &Seq{lits: make([][]byte, 0, len(s.lits))}
	for _, l := range s.lits {
		if len(l) > n {
			switch cut {
			case CutPoison:
				return nil
			case CutKeepPrefix:
				l = l[:n]
			case CutKeepSuffix:
				l = l[len(l)-n:]
			}
		}
		t.lits = append(t.lits, l)
	}
	t.canonicalize()
	return t
}

// Minimize removes literals that have a shorter literal of the set as a
// prefix, leaving a prefix-free set.
//
// For prefix matching such literals are redundant: any input starting with
// "foobar" also starts with "foo".
//
// Example:
//
//	seq := literal.NewSeq("foo", "foobar")
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1
func (s *Seq) Minimize() {
	if s.Len() < 2 {
		return
	}
	// Sorted order places every literal after its prefixes.
	kept := s.lits[:0:0]
	for _, l := range s.lits {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(l, k) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, l)
		}
	}
	s.lits = kept
}

// String renders the set as ["a" "bc"], or "poisoned".
func (s *Seq) String() string {
	if s == nil {
		return "poisoned"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, l := range s.lits {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(quote(l))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (s *Seq) canonicalize() {
	slices.SortFunc(s.lits, bytes.Compare)
	s.lits = slices.CompactFunc(s.lits, bytes.Equal)
}

func quote(b []byte) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range b {
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			sb.WriteByte(c)
			continue
		}
		const hex = "0123456789abcdef"
		sb.WriteString(`\x`)
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0xf])
	}
	sb.WriteByte('"')
	return sb.String()
}
