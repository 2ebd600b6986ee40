package extend

import (
	"github.com/coregx/glushkov/automaton"
	"github.com/coregx/glushkov/literal"
	"github.com/coregx/glushkov/match"
)

// FactorExtender extends occurrences of literals found anywhere inside
// every match.
type FactorExtender struct {
	prog  *automaton.Program
	cache cache
}

// NewFactor returns a FactorExtender for prog.
func NewFactor(prog *automaton.Program) *FactorExtender {
	return &FactorExtender{prog: prog}
}

// Mode implements Factory.
func (x *FactorExtender) Mode() literal.Mode { return literal.ModeFactor }

// ForLiteral implements Factory. The literal is replayed backwards once
// through the factor dual from its all-positions initial state; the reached
// state holds the positions that can precede the literal inside a match.
func (x *FactorExtender) ForLiteral(lit []byte) Extender {
	return x.cache.get(lit, func() Extender {
		d := x.prog.FactorDual
		return &factored{
			dual:     d,
			anchored: x.prog.Anchored,
			state:    d.ReplayBackward(d.Initial(), lit),
		}
	})
}

type factored struct {
	dual     *automaton.Automaton
	anchored *automaton.Automaton
	state    automaton.StateID
}

func (f *factored) Extend(cur match.Cursor, start, end, border int, yield func(match.Span)) {
	starts := f.candidates(cur, start, border)
	a := f.anchored
	for i := len(starts) - 1; i >= 0; i-- {
		s := starts[i]
		st := a.Initial()
		cur.Move(s)
		for !a.IsDead(st) {
			if a.IsFinal(st) && cur.Offset() >= end {
				yield(match.Span{Start: s, End: cur.Offset()})
			}
			if cur.Finished() {
				break
			}
			st = a.Next(st, cur.Next())
		}
	}
}

// candidates walks backwards from start and returns, in descending order,
// the offsets at or after border where a match containing the literal can
// begin.
func (f *factored) candidates(cur match.Cursor, start, border int) []int {
	var starts []int
	d := f.dual
	s := f.state
	cur.Move(start)
	for j := start; ; j-- {
		if d.IsFinal(s) && j >= border {
			starts = append(starts, j)
		}
		if j <= border || d.IsDead(s) {
			return starts
		}
		s = d.Next(s, cur.Prev())
	}
}
