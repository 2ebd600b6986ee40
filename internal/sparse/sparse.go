// Package sparse provides a sparse set of automaton state IDs.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of its members in insertion order. The automaton
// builder uses it as the visited set and FIFO of its breadth-first walks,
// where the universe (the number of states) is known up front.
package sparse

// Set is a set of uint32 values drawn from [0, capacity).
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates an empty set for values in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds v and reports whether it was not already present.
// Panics if v >= capacity.
func (s *Set) Insert(v uint32) bool {
	if s.Contains(v) {
		return false
	}
	s.sparse[v] = uint32(len(s.dense))
	s.dense = append(s.dense, v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v uint32) bool {
	if int(v) >= len(s.sparse) {
		return false
	}
	i := s.sparse[v]
	return int(i) < len(s.dense) && s.dense[i] == v
}

// At returns the i-th inserted value.
func (s *Set) At(i int) uint32 {
	return s.dense[i]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Clear removes every member in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Values returns the members in insertion order. The slice is only valid
// until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
