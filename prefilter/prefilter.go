// Package prefilter finds every occurrence of a set of literals in a
// haystack. It is the literal scan behind multi-pattern matching: the
// literals are the factors of the patterns, and each occurrence is handed to
// the extenders of the patterns owning it.
//
// The Builder picks a strategy from the literal set:
//   - Single byte → memchr
//   - Two one-byte literals → memchr2
//   - Single literal → memmem (rare-byte anchored)
//   - Only one-byte literals → byte table scan
//   - Only longer literals → Aho-Corasick
//   - A mix → byte scan and Aho-Corasick side by side
//
// Example usage:
//
//	f, err := prefilter.NewBuilder([][]byte{[]byte("foo"), []byte("bar")}).Build()
//	if err != nil {
//	    return err
//	}
//	var occ []prefilter.Occurrence
//	for at := 0; ; {
//	    occ = f.FindAt(haystack, at, occ[:0])
//	    if len(occ) == 0 {
//	        break
//	    }
//	    // every literal occurring at occ[0].Start, shortest first
//	    at = occ[0].Start + 1
//	}
package prefilter

import (
	"errors"
	"fmt"
)

// ErrEmptyLiteral is returned when a literal set contains the empty string,
// which occurs everywhere and cannot drive a search.
var ErrEmptyLiteral = errors.New("prefilter: empty literal")

// Occurrence is one literal found in a haystack.
type Occurrence struct {
	// Start and End delimit the literal in the haystack.
	Start, End int
	// Literal indexes the literal list the Finder was built from.
	Literal int
}

func (o Occurrence) String() string {
	return fmt.Sprintf("%d@[%d,%d)", o.Literal, o.Start, o.End)
}

// Finder reports literal occurrences, one start offset at a time.
type Finder interface {
	// FindAt appends to dst every occurrence that starts at the smallest
	// offset ≥ at holding any literal, shortest literal first, and returns
	// the extended slice. Nothing is appended when no literal occurs at or
	// after at. Overlapping occurrences are all reported: the next call
	// should pass the reported start plus one.
	FindAt(haystack []byte, at int, dst []Occurrence) []Occurrence

	// Literals returns the literals in index order.
	Literals() [][]byte

	// HeapBytes returns the number of bytes of heap memory held by the
	// finder's tables.
	HeapBytes() int
}

// Builder selects and constructs a Finder for a literal list.
type Builder struct {
	lits [][]byte
}

// NewBuilder creates a builder for lits. Indexes of reported occurrences
// refer to this slice. Duplicate literals report the smallest index.
func NewBuilder(lits [][]byte) *Builder {
	return &Builder{lits: lits}
}

// Build constructs the Finder.
func (b *Builder) Build() (Finder, error) {
	singles := 0
	for _, l := range b.lits {
		if len(l) == 0 {
			return nil, ErrEmptyLiteral
		}
		if len(l) == 1 {
			singles++
		}
	}
	switch {
	case len(b.lits) == 0:
		return emptyFinder{}, nil
	case len(b.lits) == 1 && singles == 1:
		return newMemchrFinder(b.lits[0][0]), nil
	case len(b.lits) == 1:
		return newMemmemFinder(b.lits[0]), nil
	case len(b.lits) == 2 && singles == 2:
		return newMemchr2Finder(b.lits), nil
	case singles == len(b.lits):
		return newByteSetFinder(b.lits), nil
	case singles > 0:
		// The Aho-Corasick automaton only takes literals of two or more
		// bytes once one-byte literals are mixed in.
		return newSplitFinder(b.lits)
	}
	return newAhoCorasickFinder(b.lits)
}

type emptyFinder struct{}

func (emptyFinder) FindAt(_ []byte, _ int, dst []Occurrence) []Occurrence { return dst }
func (emptyFinder) Literals() [][]byte { return nil }
func (emptyFinder) HeapBytes() int { return 0 }
