package match

import (
	"github.com/coregx/glushkov/automaton"
)

// Matcher scans one input for the matches of one compiled program.
//
// The forward scan keeps the set of positions reachable after the input
// read so far. Whenever that set is final, every match ending at the
// current offset is recovered by walking the dual automaton backwards from
// the matching dual seed; the starts it accepts are buffered. A buffered
// match is reported once the scan can no longer produce a match that
// precedes it: either the input is exhausted or the scan state is back to
// the initial state, which means no partial match is alive.
//
// A Matcher is not safe for concurrent use. The Program it runs on is.
type Matcher struct {
	prog   *automaton.Program
	cur    Cursor
	buf    *Buffer
	state  automaton.StateID
	done   bool
	policy Policy
}

// NewMatcher returns a Matcher running prog over cur.
func NewMatcher(prog *automaton.Program, cur Cursor, policy Policy) *Matcher {
	m := &Matcher{
		prog:   prog,
		buf:    NewBuffer(policy),
		policy: policy,
	}
	m.Reset(cur)
	return m
}

// Reset restarts the matcher on cur, reusing its buffers.
func (m *Matcher) Reset(cur Cursor) {
	m.cur = cur
	m.buf.Reset()
	m.state = m.prog.Scan.Initial()
	m.done = false
	m.buf.Advance(cur.Offset())
}

// Policy returns the selection policy.
func (m *Matcher) Policy() Policy {
	return m.policy
}

// FindNext returns the next match in leftmost order. It returns false once
// the input holds no further match.
func (m *Matcher) FindNext() (Match, bool) {
	for {
		if m.ready() {
			return m.emit(), true
		}
		if m.done {
			return Match{}, false
		}
		m.step()
	}
}

// FindAll returns every remaining match.
func (m *Matcher) FindAll() []Match {
	var out []Match
	for {
		mt, ok := m.FindNext()
		if !ok {
			return out
		}
		out = append(out, mt)
	}
}

// SkipTo discards every pending and future match starting before pos.
//
// If pos lies beyond the scan offset the cursor jumps there and the scan
// restarts from the initial state; skipped input is never read. A pos past
// the end of the input finishes the scan.
func (m *Matcher) SkipTo(pos int) {
	m.buf.Advance(pos)
	if pos <= m.cur.Offset() || m.done {
		return
	}
	if m.cur.FinishedWithin(pos - m.cur.Offset()) {
		m.done = true
		return
	}
	m.cur.Move(pos)
	m.state = m.prog.Scan.Initial()
}

// ready reports whether the smallest buffered match can be reported.
func (m *Matcher) ready() bool {
	if m.buf.Len() == 0 {
		return false
	}
	if m.done {
		return true
	}
	return m.prog.Scan.IsInitial(m.state) && m.buf.MinStart() < m.cur.Offset()
}

// step recovers the matches ending at the current offset, then consumes
// one byte.
func (m *Matcher) step() {
	if m.prog.Scan.IsFinal(m.state) {
		m.recover(m.cur.Offset())
	}
	if m.cur.Finished() {
		m.done = true
		return
	}
	m.state = m.prog.Scan.Next(m.state, m.cur.Next())
}

// recover walks the dual automaton backwards from end and buffers a match
// for every offset the dual accepts.
func (m *Matcher) recover(end int) {
	dual := m.prog.Dual
	s := m.prog.DualSeed(m.state)
	border := m.buf.Border()
	for j := end; ; j-- {
		if dual.IsFinal(s) {
			m.buf.Add(j, end)
		}
		if j <= border || dual.IsDead(s) {
			break
		}
		s = dual.Next(s, m.cur.Prev())
	}
	m.cur.Move(end)
}

func (m *Matcher) emit() Match {
	sp := m.buf.Pop()
	mt := Match{
		Start: sp.Start,
		End:   sp.End,
		Text:  string(m.cur.Slice(sp.Start, sp.End)),
	}
	if m.policy.Has(NoOverlap) {
		m.SkipTo(sp.End)
	}
	return mt
}
