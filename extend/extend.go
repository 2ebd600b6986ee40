// Package extend turns a literal occurrence reported by a multi-literal
// search into the full matches of one pattern.
//
// A PrefixExtender serves patterns whose every match starts with one of the
// selected literals; it replays the literal forward and keeps scanning.
// A FactorExtender serves patterns whose matches merely contain one of the
// literals; it walks the factor-seeded dual automaton backwards from the
// occurrence to find candidate starts, then confirms each start forward.
//
// Extenders report every match the occurrence can witness. Across all
// occurrences of a pattern's literals this is exactly the set of matches the
// direct engine finds; duplicates must be removed by the caller.
package extend

import (
	"sync"

	"github.com/coregx/glushkov/automaton"
	"github.com/coregx/glushkov/literal"
	"github.com/coregx/glushkov/match"
)

// Extender extends one literal occurrence into matches.
type Extender interface {
	// Extend reports the matches witnessed by the literal occurring at
	// [start, end) of the cursor's input. Matches starting before border
	// are not reported. The cursor position is unspecified afterwards.
	Extend(cur match.Cursor, start, end, border int, yield func(match.Span))
}

// Factory specializes an extender for a literal.
type Factory interface {
	// ForLiteral returns the extender for lit. The result depends only on
	// lit and the compiled program, so it may be cached and shared.
	ForLiteral(lit []byte) Extender

	// Mode tells how the literals relate to the matches.
	Mode() literal.Mode
}

// New returns the factory for mode.
func New(prog *automaton.Program, mode literal.Mode) Factory {
	if mode == literal.ModePrefix {
		return NewPrefix(prog)
	}
	return NewFactor(prog)
}

// cache memoizes specialized extenders per literal.
type cache struct {
	mu sync.Mutex
	m  map[string]Extender
}

func (c *cache) get(lit []byte, build func() Extender) Extender {
	c.mu.Lock()
	defer c.mu.Unlock()
	if x, ok := c.m[string(lit)]; ok {
		return x
	}
	if c.m == nil {
		c.m = make(map[string]Extender)
	}
	x := build()
	c.m[string(lit)] = x
	return x
}
