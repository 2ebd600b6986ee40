package automaton

import (
	"errors"
	"fmt"

	"github.com/coregx/glushkov/internal/bitset"
	"github.com/coregx/glushkov/position"
)

// Program bundles the automata one compiled pattern needs:
//   - Scan: forward with SelfLoop, drives unanchored scanning
//   - Anchored: forward, confirms matches from a known start
//   - Dual: reverse, recovers match starts from a known end
//   - FactorDual: reverse with Factors, walks back from an interior literal
//
// A Program is immutable and safe for concurrent use.
type Program struct {
	Analysis   *position.Analysis
	Scan       *Automaton
	Anchored   *Automaton
	Dual       *Automaton
	FactorDual *Automaton

	// dualSeeds maps each Scan state D to the Dual state for D ∩ Final.
	dualSeeds []StateID
	powerSet  bool
}

// Compile builds every automaton of a Program.
func Compile(a *position.Analysis, cfg Config) (*Program, error) {
	scan, err := Build(a, Forward, SelfLoop, cfg)
	if err != nil {
		return nil, err
	}
	anchored, err := Build(a, Forward, 0, cfg)
	if err != nil {
		return nil, err
	}
	dual, powerSet, err := buildDual(a, scan, cfg)
	if err != nil {
		return nil, err
	}
	factorDual, err := Build(a, Reverse, Factors, cfg)
	if err != nil {
		return nil, err
	}

	p := &Program{
		Analysis:   a,
		Scan:       scan,
		Anchored:   anchored,
		Dual:       dual,
		FactorDual: factorDual,
		dualSeeds:  make([]StateID, scan.NumStates()),
		powerSet:   powerSet,
	}
	for id := range p.dualSeeds {
		v := scan.Set(StateID(id)).Intersect(a.Final)
		seed, ok := dual.Lookup(v)
		if !ok {
			panic(fmt.Sprintf("automaton: dual seed %v of scan state %d was not built", v, id))
		}
		p.dualSeeds[id] = seed
	}
	return p, nil
}

// DualSeed returns the Dual state from which backward recovery starts when
// the Scan automaton is in state s: the final positions s holds.
func (p *Program) DualSeed(s StateID) StateID {
	return p.dualSeeds[s]
}

// PowerSetSeeded reports whether the Dual automaton was seeded with every
// subset of the final positions rather than only the reachable ones.
func (p *Program) PowerSetSeeded() bool {
	return p.powerSet
}

// MinLength returns the length of the shortest accepted string, or
// position.Infinite when the pattern accepts nothing.
func (p *Program) MinLength() int {
	return p.Anchored.MinLength()
}

// buildDual seeds the dual with every subset of the final set when it has at
// most cfg.PowerSetLimit positions. Larger final sets, or a power set that
// overflows MaxStates, fall back to the subsets D ∩ Final over the Scan
// states D, which are the only seeds recovery ever starts from.
func buildDual(a *position.Analysis, scan *Automaton, cfg Config) (*Automaton, bool, error) {
	if a.Final.Len() <= cfg.PowerSetLimit {
		dual, err := Build(a, Reverse, 0, cfg, finalSubsets(a.Final)...)
		if err == nil {
			return dual, true, nil
		}
		if !errors.Is(err, ErrTooManyStates) {
			return nil, false, err
		}
	}

	seeds := make([]bitset.Set, 0, scan.NumStates())
	for id := 0; id < scan.NumStates(); id++ {
		seeds = append(seeds, scan.Set(StateID(id)).Intersect(a.Final))
	}
	dual, err := Build(a, Reverse, 0, cfg, seeds...)
	return dual, false, err
}

// finalSubsets enumerates the power set of final.
func finalSubsets(final bitset.Set) []bitset.Set {
	members := final.Bits()
	out := make([]bitset.Set, 0, 1<<len(members))
	for mask := 0; mask < 1<<len(members); mask++ {
		v := bitset.New(final.Width())
		for i, p := range members {
			if mask&(1<<i) != 0 {
				v.Add(p)
			}
		}
		out = append(out, v)
	}
	return out
}
