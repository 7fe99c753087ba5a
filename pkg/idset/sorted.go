// Package idset provides a sorted, duplicate-free list of vertex IDs and
// the two-pointer intersection that the generic-join executor relies on.
//
// Example:
//
//	a := idset.New(1, 3, 5, 7)
//	b := idset.New(3, 4, 5)
//	c := a.Intersect(b) // [3, 5]
package idset

// ID is a vertex identifier. Vertex IDs are dense, non-negative, and
// assigned on first mention; they never shrink as edges are deleted.
type ID = uint32

// Set is a growable list of IDs kept sorted in ascending order with no
// duplicates. The zero value is an empty set ready to use.
type Set struct {
	ids []ID
}

// New returns a Set containing the given ids, sorted and deduplicated.
func New(ids ...ID) *Set {
	s := &Set{}
	for _, id := range ids {
		s.Insert(id)
	}
	return s
}

// FromSorted wraps an already ascending, duplicate-free slice without
// re-sorting it. Callers that build such a slice directly (e.g. a
// merge over several adjacency arrays) use this to avoid a redundant
// O(n log n) pass of repeated Insert calls.
func FromSorted(ids []ID) *Set {
	return &Set{ids: ids}
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// At returns the i-th smallest element.
func (s *Set) At(i int) ID {
	return s.ids[i]
}

// Slice returns the underlying ascending slice. Callers must not mutate it.
func (s *Set) Slice() []ID {
	if s == nil {
		return nil
	}
	return s.ids
}

// Contains reports whether id is a member, via binary search.
func (s *Set) Contains(id ID) bool {
	_, found := s.search(id)
	return found
}

func (s *Set) search(id ID) (int, bool) {
	lo, hi := 0, len(s.ids)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case s.ids[mid] < id:
			lo = mid + 1
		case s.ids[mid] > id:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

// Insert adds id to the set if not already present, preserving order.
// Returns true if the id was newly added.
func (s *Set) Insert(id ID) bool {
	idx, found := s.search(id)
	if found {
		return false
	}
	s.ids = append(s.ids, 0)
	copy(s.ids[idx+1:], s.ids[idx:])
	s.ids[idx] = id
	return true
}

// Remove deletes id from the set if present. Returns true if removed.
func (s *Set) Remove(id ID) bool {
	idx, found := s.search(id)
	if !found {
		return false
	}
	s.ids = append(s.ids[:idx], s.ids[idx+1:]...)
	return true
}

// Intersect returns a freshly owned Set holding the elements common to
// s and other, computed by a linear two-pointer merge over both
// (already sorted) slices. Neither input is mutated.
//
// Intersection is associative and commutative on the resulting set of
// elements: chaining (a.Intersect(b)).Intersect(c) yields the same
// elements as a.Intersect(b.Intersect(c)), in any order of operands.
func (s *Set) Intersect(other *Set) *Set {
	result := &Set{}
	if s == nil || other == nil {
		return result
	}
	i, j := 0, 0
	a, b := s.ids, other.ids
	result.ids = make([]ID, 0, min(len(a), len(b)))
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			result.ids = append(result.ids, a[i])
			i++
			j++
		}
	}
	return result
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
