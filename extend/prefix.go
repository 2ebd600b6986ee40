package extend

import (
	"github.com/coregx/glushkov/automaton"
	"github.com/coregx/glushkov/literal"
	"github.com/coregx/glushkov/match"
)

// PrefixExtender extends occurrences of literals that start every match.
type PrefixExtender struct {
	prog  *automaton.Program
	cache cache
}

// NewPrefix returns a PrefixExtender for prog.
func NewPrefix(prog *automaton.Program) *PrefixExtender {
	return &PrefixExtender{prog: prog}
}

// Mode implements Factory.
func (x *PrefixExtender) Mode() literal.Mode { return literal.ModePrefix }

// ForLiteral implements Factory. The literal is replayed once through the
// anchored automaton; every occurrence then resumes from the reached state.
func (x *PrefixExtender) ForLiteral(lit []byte) Extender {
	return x.cache.get(lit, func() Extender {
		a := x.prog.Anchored
		return &prefixed{
			anchored: a,
			state:    a.Replay(a.Initial(), lit),
		}
	})
}

type prefixed struct {
	anchored *automaton.Automaton
	state    automaton.StateID
}

func (p *prefixed) Extend(cur match.Cursor, start, end, border int, yield func(match.Span)) {
	if start < border {
		return
	}
	a := p.anchored
	s := p.state
	cur.Move(end)
	for !a.IsDead(s) {
		if a.IsFinal(s) {
			yield(match.Span{Start: start, End: cur.Offset()})
		}
		if cur.Finished() {
			return
		}
		s = a.Next(s, cur.Next())
	}
}
