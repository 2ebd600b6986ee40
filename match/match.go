// Package match implements the single-pattern match engine: a forward scan
// through the self-looping Glushkov automaton that, at every offset where
// the scan is final, walks the dual automaton backwards to recover the
// starts of the matches ending there.
//
// Matches are reported in leftmost order (start ascending, then end
// ascending). A Policy narrows the reported set: LongestMatch keeps only
// the longest match among those sharing the smallest start, NonEmpty drops
// zero-length matches and NoOverlap skips past each reported match.
package match

import "fmt"

// Match is a matched span of the input.
type Match struct {
	// Start is the inclusive start offset.
	Start int
	// End is the exclusive end offset.
	End int
	// Text is the matched input.
	Text string
}

// Len returns the match length in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// IsEmpty reports whether the match has zero length.
func (m Match) IsEmpty() bool {
	return m.Start == m.End
}

// String renders the match as (start,end,"text").
func (m Match) String() string {
	return fmt.Sprintf("(%d,%d,%q)", m.Start, m.End, m.Text)
}

// Span is a match without its text.
type Span struct {
	Start, End int
}

// Less orders spans by start, then end.
func (s Span) Less(o Span) bool {
	if s.Start != o.Start {
		return s.Start < o.Start
	}
	return s.End < o.End
}
