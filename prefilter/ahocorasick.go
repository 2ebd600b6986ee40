package prefilter

import (
	"slices"

	"github.com/coregx/ahocorasick"
)

// ahoCorasickFinder drives a multi-literal automaton over the haystack and
// resolves every hit to the exact set of literals starting at one offset.
//
// The automaton reports one match per search. No literal can start before
// that match's start (leftmost semantics) or end before its end (earliest
// semantics), so the only offsets left to check lie in the last maxLen
// bytes before the match end. Each of them is probed against the literals
// grouped by length.
type ahoCorasickFinder struct {
	auto    *ahocorasick.Automaton
	lits    [][]byte
	byLen   map[int]map[string]int
	lengths []int
	maxLen  int
	heap    int
}

func newAhoCorasickFinder(lits [][]byte) (*ahoCorasickFinder, error) {
	builder := ahocorasick.NewBuilder()
	f := &ahoCorasickFinder{
		lits:  lits,
		byLen: make(map[int]map[string]int),
	}
	for i, l := range lits {
		builder.AddPattern(l)
		group, ok := f.byLen[len(l)]
		if !ok {
			group = make(map[string]int)
			f.byLen[len(l)] = group
			f.lengths = append(f.lengths, len(l))
		}
		if _, dup := group[string(l)]; !dup {
			group[string(l)] = i
		}
		f.maxLen = max(f.maxLen, len(l))
		f.heap += len(l)
	}
	slices.Sort(f.lengths)
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	f.auto = auto
	return f, nil
}

func (f *ahoCorasickFinder) FindAt(haystack []byte, at int, dst []Occurrence) []Occurrence {
	if at < 0 || at >= len(haystack) {
		return dst
	}
	m := f.auto.Find(haystack, at)
	if m == nil {
		return dst
	}
	for p := max(at, m.End-f.maxLen); p <= m.Start; p++ {
		n := len(dst)
		dst = f.probe(haystack, p, dst)
		if len(dst) > n {
			return dst
		}
	}
	return dst
}

// probe appends the occurrences starting at p, shortest first.
func (f *ahoCorasickFinder) probe(haystack []byte, p int, dst []Occurrence) []Occurrence {
	for _, n := range f.lengths {
		if p+n > len(haystack) {
			break
		}
		if i, ok := f.byLen[n][string(haystack[p:p+n])]; ok {
			dst = append(dst, Occurrence{Start: p, End: p + n, Literal: i})
		}
	}
	return dst
}

func (f *ahoCorasickFinder) Literals() [][]byte { return f.lits }

// HeapBytes counts the literal bytes held by the lookup tables; the
// automaton's own tables are not visible.
func (f *ahoCorasickFinder) HeapBytes() int { return f.heap }
