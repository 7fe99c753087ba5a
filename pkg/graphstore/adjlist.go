package graphstore

import (
	"sort"

	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/types"
)

// adjList holds one vertex's adjacency in one direction, split into the
// three physical arrays design note (a) in spec §9 describes: a
// PERMANENT array, a DIFF_PLUS append buffer, and a DIFF_MINUS buffer
// of staged removals. Each is kept sorted by (neighbor, type) so views
// can be produced by a linear merge.
type adjList struct {
	permanent []entry
	diffPlus  []entry
	diffMinus []entry
}

// insertSorted inserts e into list (which must already be sorted and
// free of e) preserving order, and reports whether it was inserted.
func insertSorted(list *[]entry, e entry) bool {
	s := *list
	idx := sort.Search(len(s), func(i int) bool { return !less(s[i], e) })
	if idx < len(s) && s[idx] == e {
		return false
	}
	s = append(s, entry{})
	copy(s[idx+1:], s[idx:])
	s[idx] = e
	*list = s
	return true
}

// removeSorted deletes e from list if present, and reports whether it
// was found.
func removeSorted(list *[]entry, e entry) bool {
	s := *list
	idx := sort.Search(len(s), func(i int) bool { return !less(s[i], e) })
	if idx >= len(s) || s[idx] != e {
		return false
	}
	*list = append(s[:idx], s[idx+1:]...)
	return true
}

// containsSorted reports whether e is present in the sorted list.
func containsSorted(list []entry, e entry) bool {
	idx := sort.Search(len(list), func(i int) bool { return !less(list[i], e) })
	return idx < len(list) && list[idx] == e
}

// subtractSorted returns a freshly allocated list holding every element
// of a that is not present in b, via a two-pointer merge. Neither input
// is mutated. Used to derive the PERMANENT view (committed \ diffMinus)
// without touching the underlying committed array.
func subtractSorted(a, b []entry) []entry {
	if len(b) == 0 {
		return a
	}
	out := make([]entry, 0, len(a))
	i, j := 0, 0
	for i < len(a) {
		for j < len(b) && less(b[j], a[i]) {
			j++
		}
		if j < len(b) && b[j] == a[i] {
			i++
			continue
		}
		out = append(out, a[i])
		i++
	}
	return out
}

// mergeSorted returns a freshly allocated list holding the union of a
// and b, via a two-pointer merge; a and b must each be internally
// duplicate-free, but may share elements with each other (in which case
// only one copy survives). Used to derive the MERGED view
// (permanent\diffMinus ∪ diffPlus): in a consistent store diffPlus and
// permanent\diffMinus are always disjoint for the same edge key, so the
// dedup here only guards against that invariant, it never hides data.
func mergeSorted(a, b []entry) []entry {
	out := make([]entry, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case less(a[i], b[j]):
			out = append(out, a[i])
			i++
		case less(b[j], a[i]):
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// hasNeighbor reports whether list (sorted by (neighbor, type)) holds
// any entry for neighbor matching typeFilter, via a binary search to
// the first entry with that neighbor followed by a scan bounded by the
// number of distinct edge types between the two vertices — never a
// scan of the whole list. This is what lets AdjacencyContains test
// membership in a large adjacency list without materializing it.
func hasNeighbor(list []entry, neighbor idset.ID, typeFilter types.ID) bool {
	if typeFilter != types.Any {
		return containsSorted(list, entry{neighbor, typeFilter})
	}
	idx := sort.Search(len(list), func(i int) bool { return list[i].neighbor >= neighbor })
	return idx < len(list) && list[idx].neighbor == neighbor
}

// hasNeighborUnderSubtract reports whether neighbor (matching
// typeFilter) is present in base but not cancelled by the matching
// entry in subtract, checking only the handful of entries base holds
// for that one neighbor rather than the whole subtract list.
func hasNeighborUnderSubtract(base, subtract []entry, neighbor idset.ID, typeFilter types.ID) bool {
	if typeFilter != types.Any {
		e := entry{neighbor, typeFilter}
		return containsSorted(base, e) && !containsSorted(subtract, e)
	}
	lo := sort.Search(len(base), func(i int) bool { return base[i].neighbor >= neighbor })
	for i := lo; i < len(base) && base[i].neighbor == neighbor; i++ {
		if !containsSorted(subtract, base[i]) {
			return true
		}
	}
	return false
}

// filterNeighbors collapses a (neighbor, type)-sorted entry list to the
// ascending, duplicate-free neighbor IDs matching typeFilter
// (types.Any matches every type, and a neighbor reachable via several
// edge types collapses to one appearance).
func filterNeighbors(entries []entry, typeFilter types.ID) []idset.ID {
	out := make([]idset.ID, 0, len(entries))
	for _, e := range entries {
		if typeFilter != types.Any && e.typ != typeFilter {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == e.neighbor {
			continue
		}
		out = append(out, e.neighbor)
	}
	return out
}
