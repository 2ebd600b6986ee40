package match

import "slices"

// Buffer holds candidate matches that have been recovered but not yet
// reported. Spans are kept sorted by (start, end) and deduplicated.
//
// The buffer also carries the skip border: spans starting before it are
// rejected on Add and purged by Advance.
type Buffer struct {
	spans  []Span
	border int
	policy Policy
}

// NewBuffer returns an empty buffer applying policy.
func NewBuffer(policy Policy) *Buffer {
	return &Buffer{policy: policy}
}

// Policy returns the selection policy of the buffer.
func (b *Buffer) Policy() Policy {
	return b.policy
}

// Add inserts a candidate span. It returns false if the span was rejected
// by the border, by NonEmpty or because it is already buffered.
func (b *Buffer) Add(start, end int) bool {
	if start < b.border {
		return false
	}
	if start == end && b.policy.Has(NonEmpty) {
		return false
	}
	sp := Span{Start: start, End: end}
	i, found := slices.BinarySearchFunc(b.spans, sp, compareSpan)
	if found {
		return false
	}
	b.spans = slices.Insert(b.spans, i, sp)
	return true
}

// Len returns the number of buffered spans.
func (b *Buffer) Len() int {
	return len(b.spans)
}

// MinStart returns the smallest buffered start. It panics on an empty
// buffer.
func (b *Buffer) MinStart() int {
	return b.spans[0].Start
}

// Border returns the skip border.
func (b *Buffer) Border() int {
	return b.border
}

// Advance raises the border to pos and drops every span starting before
// it. A pos at or below the current border is a no-op.
func (b *Buffer) Advance(pos int) {
	if pos <= b.border {
		return
	}
	b.border = pos
	i := 0
	for i < len(b.spans) && b.spans[i].Start < pos {
		i++
	}
	b.spans = b.spans[:copy(b.spans, b.spans[i:])]
}

// Pop removes and returns the next span to report.
//
// Without LongestMatch this is the smallest span. With LongestMatch it is
// the longest span among those sharing the smallest start, and the rest of
// that group is discarded. The caller must know that no span with that
// start is still to come. Pop does not apply NoOverlap; callers advance the
// border past the returned end.
func (b *Buffer) Pop() Span {
	n := 1
	if b.policy.Has(LongestMatch) {
		start := b.spans[0].Start
		for n < len(b.spans) && b.spans[n].Start == start {
			n++
		}
	}
	sp := b.spans[n-1]
	b.spans = b.spans[:copy(b.spans, b.spans[n:])]
	return sp
}

// Reset empties the buffer and clears the border.
func (b *Buffer) Reset() {
	b.spans = b.spans[:0]
	b.border = 0
}

func compareSpan(a, b Span) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
