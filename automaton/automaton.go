// Package automaton builds and runs the bit-parallel Glushkov automata of a
// pattern.
//
// A state is a bit vector over the pattern's positions (see package
// position). States are never linked as a graph: the builder explores the
// reachable vectors depth-first and stores each distinct value exactly once
// in a table keyed by the vector itself, so equal vectors always share one
// row of successors. After Build returns, an Automaton is immutable and can
// be shared by any number of concurrent scans.
//
// Two directions exist:
//   - Forward: a state is the set of positions that consumed the byte just
//     read; reading c yields Follow(state) ∩ Reach(c). The start state is
//     {0}; a state is final when it meets Last (or holds 0 for a nullable
//     pattern).
//   - Reverse (the dual): a state is the set of positions allowed to consume
//     the next byte to the left; reading c yields Precede(state ∩ Reach(c)).
//     The start state is the final set of the forward automaton and a state
//     is final when it holds 0, the "before start" marker.
//
// The SelfLoop flag ORs the start vector into every successor, so a scan can
// begin a new match at any offset. The Factors flag seeds the automaton with
// every position instead of the start marker, so a scan can be anchored on a
// substring from the middle of a match.
package automaton

import (
	"fmt"
	"strings"

	"github.com/coregx/glushkov/internal/bitset"
	"github.com/coregx/glushkov/internal/sparse"
	"github.com/coregx/glushkov/position"
)

// StateID indexes a state in an Automaton's table.
type StateID uint32

// DeadState is the empty vector. It is present in every table; without
// SelfLoop every byte leaves it unchanged.
const DeadState StateID = 0

// Direction selects forward or dual (reverse) construction.
type Direction uint8

const (
	// Forward reads input left to right and uses Follow.
	Forward Direction = iota
	// Reverse reads input right to left and uses Precede.
	Reverse
)

// String returns "forward" or "reverse".
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Flags are the construction knobs.
type Flags uint8

const (
	// SelfLoop makes every successor include the start vector.
	SelfLoop Flags = 1 << iota
	// Factors seeds the automaton with every position.
	Factors
)

// String renders the set flags, e.g. "SelfLoop|Factors".
func (f Flags) String() string {
	var parts []string
	if f&SelfLoop != 0 {
		parts = append(parts, "SelfLoop")
	}
	if f&Factors != 0 {
		parts = append(parts, "Factors")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Automaton is a compiled bit-parallel automaton.
type Automaton struct {
	dir   Direction
	flags Flags

	classes ByteClasses
	stride  int

	// trans[id*stride+class] is the successor of state id on a byte of class.
	trans []StateID
	sets  []bitset.Set
	final []bool
	index map[string]StateID

	initial    StateID
	initialSet bitset.Set
	finalSet   bitset.Set

	minLength int
}

// Direction returns the automaton's reading direction.
func (a *Automaton) Direction() Direction { return a.dir }

// Flags returns the construction flags.
func (a *Automaton) Flags() Flags { return a.flags }

// Initial returns the start state.
func (a *Automaton) Initial() StateID { return a.initial }

// IsInitial reports whether s is the start state.
func (a *Automaton) IsInitial(s StateID) bool { return s == a.initial }

// IsFinal reports whether s meets the final set.
func (a *Automaton) IsFinal(s StateID) bool { return a.final[s] }

// IsDead reports whether s is the empty vector.
func (a *Automaton) IsDead(s StateID) bool { return s == DeadState }

// Next returns the successor of s on byte c.
func (a *Automaton) Next(s StateID, c byte) StateID {
	return a.trans[int(s)*a.stride+int(a.classes.Get(c))]
}

// Replay feeds input to the automaton in slice order starting at s.
// A reverse automaton therefore expects the bytes already reversed.
func (a *Automaton) Replay(s StateID, input []byte) StateID {
	for _, c := range input {
		s = a.Next(s, c)
	}
	return s
}

// ReplayBackward feeds input from its last byte to its first.
func (a *Automaton) ReplayBackward(s StateID, input []byte) StateID {
	for i := len(input) - 1; i >= 0; i-- {
		s = a.Next(s, input[i])
	}
	return s
}

// Accepts reports whether the automaton ends in a final state after reading
// input in slice order from the start state.
func (a *Automaton) Accepts(input []byte) bool {
	return a.IsFinal(a.Replay(a.initial, input))
}

// Set returns the position vector of s. The result must not be modified.
func (a *Automaton) Set(s StateID) bitset.Set { return a.sets[s] }

// Lookup returns the state whose vector equals v, if the builder reached it.
func (a *Automaton) Lookup(v bitset.Set) (StateID, bool) {
	id, ok := a.index[v.Key()]
	return id, ok
}

// NumStates returns the size of the memo table, dead state included.
func (a *Automaton) NumStates() int { return len(a.sets) }

// Classes returns the byte equivalence classes of the transition table.
func (a *Automaton) Classes() *ByteClasses { return &a.classes }

// MinLength returns the length of the shortest input leading from the start
// state to a final state, or position.Infinite if none does. It is computed
// at build time by a breadth-first walk of the table.
func (a *Automaton) MinLength() int { return a.minLength }

// String summarizes the automaton for debugging.
func (a *Automaton) String() string {
	return fmt.Sprintf("automaton{%v, flags=%v, states=%d, classes=%d, initial=%v}",
		a.dir, a.flags, len(a.sets), a.stride, a.sets[a.initial])
}

// shortestPath runs the breadth-first search behind MinLength.
func (a *Automaton) shortestPath() int {
	if a.final[a.initial] {
		return 0
	}
	reps := a.classes.Representatives()
	queue := sparse.New(len(a.sets))
	dist := make([]int, len(a.sets))
	queue.Insert(uint32(a.initial))
	for i := 0; i < queue.Len(); i++ {
		s := StateID(queue.At(i))
		for _, c := range reps {
			t := a.Next(s, c)
			if !queue.Insert(uint32(t)) {
				continue
			}
			dist[t] = dist[s] + 1
			if a.final[t] {
				return dist[t]
			}
		}
	}
	return position.Infinite
}
