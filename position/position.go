// Package position implements the Glushkov attribute-grammar analysis of a
// normalized syntax tree.
//
// Every Char and Range node receives an integer position 1..N in traversal
// order. Position 0 is a virtual "before start" marker that consumes nothing.
// For the tree the analysis computes:
//   - First/Last: the positions that can consume the first/last byte of a match
//   - Follow(p)/Precede(p): the positions that can consume the byte
//     immediately after/before the one consumed by p
//   - MinLength/MaxLength of the accepted language
//
// Sets are bitset.Set values of width N+1, indexed by position.
package position

import (
	"fmt"
	"math"

	"github.com/coregx/glushkov/ast"
	"github.com/coregx/glushkov/internal/bitset"
)

// Infinite is the MinLength of a pattern that accepts no string at all.
const Infinite = math.MaxInt32

// Unbounded is the MaxLength of a pattern with no upper length bound.
const Unbounded = -1

// Analysis is the result of Analyze. It is immutable once returned.
type Analysis struct {
	// N is the number of positions; valid positions are 1..N.
	N int

	// Chars holds the byte interval consumed by each position. Chars[0] is
	// unused: position 0 consumes nothing.
	Chars []ast.ByteRange

	// Follow and Precede are indexed by position.
	Follow  []bitset.Set
	Precede []bitset.Set

	First bitset.Set
	Last  bitset.Set

	// Final is Last plus position 0 when the empty string is accepted.
	Final bitset.Set

	MinLength int
	MaxLength int
}

// Width returns the bit width of every set in the analysis.
func (a *Analysis) Width() int {
	return a.N + 1
}

// Nullable reports whether the pattern accepts the empty string.
func (a *Analysis) Nullable() bool {
	return a.MinLength == 0
}

// Accepts reports whether position p consumes byte c. Position 0 consumes
// nothing.
func (a *Analysis) Accepts(p int, c byte) bool {
	if p <= 0 || p > a.N {
		return false
	}
	r := a.Chars[p]
	return r.Lo <= c && c <= r.Hi
}

// Analyze runs the attribute grammar over a normalized tree.
//
// Analyze panics if the tree contains a node that is not in normal form; the
// caller is expected to have run ast.Normalize.
func Analyze(root *ast.Node) *Analysis {
	n := countPositions(root)
	a := &Analysis{
		N:       n,
		Chars:   make([]ast.ByteRange, n+1),
		Follow:  make([]bitset.Set, n+1),
		Precede: make([]bitset.Set, n+1),
	}
	for p := 0; p <= n; p++ {
		a.Follow[p] = bitset.New(n + 1)
		a.Precede[p] = bitset.New(n + 1)
	}

	w := walker{a: a}
	attr := w.visit(root)

	a.First = attr.first
	a.Last = attr.last
	a.MinLength = attr.minLen
	a.MaxLength = attr.maxLen

	a.Follow[0].Or(attr.first)
	attr.first.Each(func(y int) { a.Precede[y].Add(0) })

	a.Final = attr.last.Clone()
	if a.MinLength == 0 {
		a.Final.Add(0)
	}
	return a
}

// attrs are the synthesized attributes of one node.
type attrs struct {
	first, last    bitset.Set
	minLen, maxLen int
}

type walker struct {
	a    *Analysis
	next int
}

func (w *walker) empty() bitset.Set {
	return bitset.New(w.a.N + 1)
}

func (w *walker) visit(n *ast.Node) attrs {
	switch n.Kind {
	case ast.KindEmpty:
		return attrs{first: w.empty(), last: w.empty()}

	case ast.KindChar, ast.KindRange:
		w.next++
		p := w.next
		w.a.Chars[p] = ast.ByteRange{Lo: n.Lo, Hi: n.Hi}
		s := bitset.Of(w.a.N+1, p)
		return attrs{first: s, last: s.Clone(), minLen: 1, maxLen: 1}

	case ast.KindAlternatives:
		out := attrs{first: w.empty(), last: w.empty(), minLen: Infinite}
		for _, sub := range n.Subs {
			s := w.visit(sub)
			out.first.Or(s.first)
			out.last.Or(s.last)
			out.minLen = min(out.minLen, s.minLen)
			out.maxLen = maxLength(out.maxLen, s.maxLen)
		}
		return out

	case ast.KindConcat:
		return w.concat(n.Subs)

	case ast.KindGroup:
		return w.visit(n.Sub())

	case ast.KindOptional:
		s := w.visit(n.Sub())
		s.minLen = 0
		return s

	case ast.KindStar:
		s := w.visit(n.Sub())
		s.last.Each(func(x int) { w.a.Follow[x].Or(s.first) })
		s.first.Each(func(y int) { w.a.Precede[y].Or(s.last) })
		s.minLen = 0
		if s.maxLen != 0 {
			s.maxLen = Unbounded
		}
		return s
	}
	panic(fmt.Sprintf("position: node kind %v is not in normal form", n.Kind))
}

// concat links each child to the longest nullable-extended run before it.
// lastSoFar is Last of the concatenation of the children visited so far.
func (w *walker) concat(subs []*ast.Node) attrs {
	out := attrs{first: w.empty(), last: w.empty()}
	lastSoFar := w.empty()
	prefixNullable := true

	for _, sub := range subs {
		s := w.visit(sub)

		lastSoFar.Each(func(x int) { w.a.Follow[x].Or(s.first) })
		s.first.Each(func(y int) { w.a.Precede[y].Or(lastSoFar) })

		if prefixNullable {
			out.first.Or(s.first)
		}
		if s.minLen > 0 {
			prefixNullable = false
			lastSoFar = s.last.Clone()
		} else {
			lastSoFar.Or(s.last)
		}

		out.minLen = addLength(out.minLen, s.minLen)
		if out.maxLen != Unbounded {
			if s.maxLen == Unbounded {
				out.maxLen = Unbounded
			} else {
				out.maxLen += s.maxLen
			}
		}
	}
	out.last = lastSoFar
	return out
}

func addLength(a, b int) int {
	if a >= Infinite-b {
		return Infinite
	}
	return a + b
}

func maxLength(a, b int) int {
	if a == Unbounded || b == Unbounded {
		return Unbounded
	}
	return max(a, b)
}

func countPositions(n *ast.Node) int {
	if !n.Kind.IsNormal() {
		panic(fmt.Sprintf("position: node kind %v is not in normal form", n.Kind))
	}
	c := 0
	if n.Kind == ast.KindChar || n.Kind == ast.KindRange {
		c = 1
	}
	for _, s := range n.Subs {
		c += countPositions(s)
	}
	return c
}
