// Package sparse provides a sparse set over small uint32 universes.
//
// The set supports O(1) insertion, membership testing and clearing while
// keeping elements iterable in insertion order. The regex engines use it to
// merge threads that land on the same program counter within one simulation
// step: insertion order is exactly thread priority order.
package sparse

// Set is a sparse set of uint32 values below a fixed capacity.
// It keeps a sparse array (value -> dense index) and a dense array
// (the values, in insertion order).
type Set struct {
	sparse []uint32
	dense  []uint32
}

// NewSet creates a set able to hold values in [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set. It reports whether the value was newly
// inserted; false means it was already present. Values at or above the
// capacity are rejected.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	if value >= uint32(len(s.sparse)) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < uint32(len(s.dense)) && s.dense[idx] == value
}

// Clear removes all elements in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return len(s.dense)
}

// Values returns the elements in insertion order.
// The slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
