package automaton

import (
	"github.com/coregx/glushkov/internal/bitset"
	"github.com/coregx/glushkov/internal/conv"
	"github.com/coregx/glushkov/position"
)

// Config bounds automaton construction.
type Config struct {
	// MaxStates caps the number of distinct vectors per automaton.
	// Default: 10000
	MaxStates int

	// MaxPositions caps the number of literal positions of a pattern.
	// Default: 4096
	MaxPositions int

	// PowerSetLimit is the largest final-position count for which the dual
	// automaton is seeded with every subset of the final set. Larger final
	// sets are seeded with the subsets the scanning automaton can reach.
	// Default: 10
	PowerSetLimit int
}

// DefaultConfig returns the default construction limits.
func DefaultConfig() Config {
	return Config{
		MaxStates:     10000,
		MaxPositions:  4096,
		PowerSetLimit: 10,
	}
}

// Build constructs the automaton of the given direction and flags for an
// analysis. Besides the start vector implied by dir and flags, every vector
// in seeds is explored as well so that callers can later start the automaton
// from it (see Lookup).
func Build(a *position.Analysis, dir Direction, flags Flags, cfg Config, seeds ...bitset.Set) (*Automaton, error) {
	if a.N > cfg.MaxPositions {
		return nil, &BuildError{Direction: dir, Flags: flags, Err: ErrTooManyPositions}
	}

	b := newBuilder(a, dir, flags, cfg)
	if _, err := b.intern(bitset.New(a.Width())); err != nil {
		return nil, &BuildError{Direction: dir, Flags: flags, Err: err}
	}
	initial, err := b.intern(b.auto.initialSet)
	if err != nil {
		return nil, &BuildError{Direction: dir, Flags: flags, Err: err}
	}
	b.auto.initial = initial
	for _, s := range seeds {
		if _, err := b.intern(s); err != nil {
			return nil, &BuildError{Direction: dir, Flags: flags, Err: err}
		}
	}
	if err := b.explore(); err != nil {
		return nil, &BuildError{Direction: dir, Flags: flags, Err: err}
	}

	b.auto.minLength = b.auto.shortestPath()
	return b.auto, nil
}

type builder struct {
	auto     *Automaton
	maxState int

	edges      []bitset.Set
	classReach []bitset.Set
	selfLoop   bitset.Set

	// pending holds interned states whose successors are not computed yet.
	pending []StateID
}

func newBuilder(a *position.Analysis, dir Direction, flags Flags, cfg Config) *builder {
	w := a.Width()
	auto := &Automaton{
		dir:     dir,
		flags:   flags,
		classes: classesFor(a),
		index:   make(map[string]StateID),
	}
	auto.stride = auto.classes.Len()

	switch {
	case flags&Factors != 0:
		auto.initialSet = bitset.Full(w)
	case dir == Forward:
		auto.initialSet = bitset.Of(w, 0)
	default:
		auto.initialSet = a.Final.Clone()
	}
	if dir == Forward {
		auto.finalSet = a.Final.Clone()
	} else {
		auto.finalSet = bitset.Of(w, 0)
	}

	b := &builder{
		auto:     auto,
		maxState: cfg.MaxStates,
		selfLoop: bitset.New(w),
	}
	if flags&SelfLoop != 0 {
		b.selfLoop = auto.initialSet.Clone()
	}
	if dir == Forward {
		b.edges = a.Follow
	} else {
		b.edges = a.Precede
	}

	// Reach vector per class: the positions consuming the class's bytes.
	reps := auto.classes.Representatives()
	b.classReach = make([]bitset.Set, len(reps))
	for k, c := range reps {
		v := bitset.New(w)
		for p := 1; p <= a.N; p++ {
			if a.Accepts(p, c) {
				v.Add(p)
			}
		}
		b.classReach[k] = v
	}
	return b
}

// intern returns the ID of v, adding a new table row when v is unseen.
func (b *builder) intern(v bitset.Set) (StateID, error) {
	key := v.Key()
	if id, ok := b.auto.index[key]; ok {
		return id, nil
	}
	if len(b.auto.sets) >= b.maxState {
		return 0, ErrTooManyStates
	}
	id := StateID(conv.IntToUint32(len(b.auto.sets)))
	b.auto.index[key] = id
	b.auto.sets = append(b.auto.sets, v)
	b.auto.final = append(b.auto.final, v.Intersects(b.auto.finalSet))
	b.auto.trans = append(b.auto.trans, make([]StateID, b.auto.stride)...)
	b.pending = append(b.pending, id)
	return id, nil
}

// explore computes the successor row of every pending state, interning the
// successors it discovers. Each distinct vector is expanded exactly once.
func (b *builder) explore() error {
	for len(b.pending) > 0 {
		id := b.pending[len(b.pending)-1]
		b.pending = b.pending[:len(b.pending)-1]

		succ := b.successors(b.auto.sets[id])
		for k, v := range succ {
			t, err := b.intern(v)
			if err != nil {
				return err
			}
			b.auto.trans[int(id)*b.auto.stride+k] = t
		}
	}
	return nil
}

// successors returns the successor vector of s for each byte class.
func (b *builder) successors(s bitset.Set) []bitset.Set {
	w := s.Width()
	out := make([]bitset.Set, len(b.classReach))

	if b.auto.dir == Forward {
		reach := bitset.New(w)
		s.Each(func(p int) { reach.Or(b.edges[p]) })
		for k, cr := range b.classReach {
			v := reach.Intersect(cr)
			v.Or(b.selfLoop)
			out[k] = v
		}
		return out
	}

	for k, cr := range b.classReach {
		v := bitset.New(w)
		s.Intersect(cr).Each(func(p int) { v.Or(b.edges[p]) })
		v.Or(b.selfLoop)
		out[k] = v
	}
	return out
}
