// Package graphstore implements the versioned, mutable adjacency-list
// graph at the heart of graphmatch: a directed, typed multigraph that
// exposes four logical views (PERMANENT, DIFF_PLUS, DIFF_MINUS, MERGED)
// over one physical representation, so continuous queries can range
// over staged changes without ever materializing a copy of the graph.
//
// Mutation is staged: AddEdge and DeleteEdge only affect DIFF_PLUS and
// DIFF_MINUS. Commit folds the staged delta into PERMANENT atomically.
// A single RWMutex serializes writers against readers: every mutation
// takes the write lock, and every read method takes the read lock for
// the duration of that one call. No lock is held across a whole
// plan+execute call, so a mutation made from another goroutine between
// two reads of one query is visible to the later read.
//
// Example:
//
//	reg := types.New()
//	store := graphstore.New(reg)
//	follows := reg.Intern("FOLLOWS")
//	store.AddEdge(0, 1, follows)
//	store.Commit()
//	out := store.Adjacency(0, graphstore.Forward, graphstore.Permanent, follows)
//	// out.Slice() == []idset.ID{1}
package graphstore

import (
	"log"
	"sync"

	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/types"
)

// Store is a versioned, thread-safe directed multigraph. The zero value
// is not usable; construct with New.
type Store struct {
	mu sync.RWMutex

	registry *types.Registry

	forward  map[idset.ID]*adjList
	backward map[idset.ID]*adjList

	permanentEdges map[edgeKey]EdgeID
	diffPlusEdges  map[edgeKey]EdgeID
	diffMinusEdges map[edgeKey]struct{}

	dirty map[*adjList]struct{}

	nextEdgeID EdgeID
	maxVertex  idset.ID
	anyVertex  bool
}

// New returns an empty Store. registry is used only to resolve type
// names for logging; callers pass already-interned types.ID values to
// every mutation and read method.
func New(registry *types.Registry) *Store {
	return &Store{
		registry:       registry,
		forward:        make(map[idset.ID]*adjList),
		backward:       make(map[idset.ID]*adjList),
		permanentEdges: make(map[edgeKey]EdgeID),
		diffPlusEdges:  make(map[edgeKey]EdgeID),
		diffMinusEdges: make(map[edgeKey]struct{}),
		dirty:          make(map[*adjList]struct{}),
	}
}

func (s *Store) adjFor(index map[idset.ID]*adjList, v idset.ID) *adjList {
	a, ok := index[v]
	if !ok {
		a = &adjList{}
		index[v] = a
	}
	return a
}

func (s *Store) touchVertex(v idset.ID) {
	if !s.anyVertex || v > s.maxVertex {
		s.maxVertex = v
		s.anyVertex = true
	}
}

func (s *Store) markDirty(a *adjList) {
	s.dirty[a] = struct{}{}
}

// AddEdge stages an addition of (src, dst, edgeType) under DIFF_PLUS.
//
//   - If the edge is currently staged for deletion (DIFF_MINUS), the
//     staged deletion is cancelled and no DIFF_PLUS entry is produced;
//     the edge's original, still-committed EdgeID is returned.
//   - If the edge is already active (PERMANENT or already in
//     DIFF_PLUS), AddEdge is an idempotent no-op returning the existing
//     EdgeID: a multigraph identifies edges by (src, dst, type), so
//     there is no second edge to create.
//   - Otherwise a new EdgeID is assigned and the edge is staged.
func (s *Store) AddEdge(src, dst idset.ID, edgeType types.ID) EdgeID {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey{src, dst, edgeType}
	s.touchVertex(src)
	s.touchVertex(dst)

	if _, staged := s.diffMinusEdges[key]; staged {
		delete(s.diffMinusEdges, key)
		fwd, bwd := s.adjFor(s.forward, src), s.adjFor(s.backward, dst)
		removeSorted(&fwd.diffMinus, entry{dst, edgeType})
		removeSorted(&bwd.diffMinus, entry{src, edgeType})
		s.markDirty(fwd)
		s.markDirty(bwd)
		return s.permanentEdges[key]
	}
	if id, ok := s.diffPlusEdges[key]; ok {
		return id
	}
	if id, ok := s.permanentEdges[key]; ok {
		return id
	}

	id := s.nextEdgeID
	s.nextEdgeID++
	s.diffPlusEdges[key] = id

	fwd, bwd := s.adjFor(s.forward, src), s.adjFor(s.backward, dst)
	insertSorted(&fwd.diffPlus, entry{dst, edgeType})
	insertSorted(&bwd.diffPlus, entry{src, edgeType})
	s.markDirty(fwd)
	s.markDirty(bwd)

	log.Printf("graphstore: staged add %v -[%s]-> %v as diff-plus edge %d", src, s.registry.Name(edgeType), dst, id)
	return id
}

// DeleteEdge stages a removal of (src, dst, edgeType).
//
//   - If the edge exists in PERMANENT (and is not already staged for
//     deletion), it is staged under DIFF_MINUS.
//   - If the edge exists only in DIFF_PLUS (not yet merged), the staged
//     addition is cancelled.
//   - Deleting a non-existent edge is a no-op.
func (s *Store) DeleteEdge(src, dst idset.ID, edgeType types.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey{src, dst, edgeType}

	if _, ok := s.diffPlusEdges[key]; ok {
		delete(s.diffPlusEdges, key)
		fwd, bwd := s.adjFor(s.forward, src), s.adjFor(s.backward, dst)
		removeSorted(&fwd.diffPlus, entry{dst, edgeType})
		removeSorted(&bwd.diffPlus, entry{src, edgeType})
		s.markDirty(fwd)
		s.markDirty(bwd)
		return
	}
	if _, ok := s.permanentEdges[key]; ok {
		if _, already := s.diffMinusEdges[key]; !already {
			s.diffMinusEdges[key] = struct{}{}
			fwd, bwd := s.adjFor(s.forward, src), s.adjFor(s.backward, dst)
			insertSorted(&fwd.diffMinus, entry{dst, edgeType})
			insertSorted(&bwd.diffMinus, entry{src, edgeType})
			s.markDirty(fwd)
			s.markDirty(bwd)
		}
		return
	}
	// Not present and not staged for addition: no-op, per spec §4.1.
}

// Commit atomically folds every DIFF_PLUS edge into PERMANENT and
// removes every DIFF_MINUS edge from PERMANENT; both diffs are empty
// afterward. Commit is idempotent on an empty diff pair.
func (s *Store) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, id := range s.diffPlusEdges {
		s.permanentEdges[key] = id
		fwd, bwd := s.adjFor(s.forward, key.src), s.adjFor(s.backward, key.dst)
		insertSorted(&fwd.permanent, entry{key.dst, key.typ})
		insertSorted(&bwd.permanent, entry{key.src, key.typ})
	}
	for key := range s.diffMinusEdges {
		delete(s.permanentEdges, key)
		fwd, bwd := s.adjFor(s.forward, key.src), s.adjFor(s.backward, key.dst)
		removeSorted(&fwd.permanent, entry{key.dst, key.typ})
		removeSorted(&bwd.permanent, entry{key.src, key.typ})
	}

	n := len(s.diffPlusEdges) + len(s.diffMinusEdges)
	for a := range s.dirty {
		a.diffPlus = nil
		a.diffMinus = nil
	}
	s.dirty = make(map[*adjList]struct{})
	s.diffPlusEdges = make(map[edgeKey]EdgeID)
	s.diffMinusEdges = make(map[edgeKey]struct{})

	if n > 0 {
		log.Printf("graphstore: committed %d staged edge changes", n)
	}
	s.checkMirrorInvariant()
}

// Adjacency returns the sorted, duplicate-free set of neighbor IDs of
// vertex in direction dir, as seen under version, restricted to
// typeFilter (types.Any matches every type). A never-mentioned vertex
// returns the empty set, never an error.
func (s *Store) Adjacency(vertex idset.ID, dir Direction, version Version, typeFilter types.ID) *idset.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.forward
	if dir == Backward {
		index = s.backward
	}
	a, ok := index[vertex]
	if !ok {
		return idset.New()
	}

	var entries []entry
	switch version {
	case Permanent:
		entries = subtractSorted(a.permanent, a.diffMinus)
	case DiffPlus:
		entries = a.diffPlus
	case DiffMinus:
		entries = a.diffMinus
	case Merged:
		entries = mergeSorted(subtractSorted(a.permanent, a.diffMinus), a.diffPlus)
	}
	return idset.FromSorted(filterNeighbors(entries, typeFilter))
}

// AdjacencyLen returns a cheap O(1) upper bound on the size of
// Adjacency(vertex, dir, version, typeFilter), without materializing
// it: the raw per-version array length, uncorrected for the
// DIFF_MINUS subtraction or type-filter dedup that Adjacency performs.
// It exists only to pick the cheapest rule to start a stage's
// intersection from (spec §4.5's min-count heuristic); the heuristic's
// output set is unaffected by this estimate being approximate, only
// its enumeration cost is.
func (s *Store) AdjacencyLen(vertex idset.ID, dir Direction, version Version, typeFilter types.ID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.forward
	if dir == Backward {
		index = s.backward
	}
	a, ok := index[vertex]
	if !ok {
		return 0
	}
	switch version {
	case Permanent:
		return len(a.permanent)
	case DiffPlus:
		return len(a.diffPlus)
	case DiffMinus:
		return len(a.diffMinus)
	case Merged:
		return len(a.permanent) + len(a.diffPlus)
	}
	return 0
}

// AdjacencyContains reports whether neighbor is a member of
// Adjacency(vertex, dir, version, typeFilter), without materializing
// that view. The join executor uses this to test a small candidate set
// against a stage's non-minimum rules in O(1) binary searches per
// candidate, rather than paying the cost of building and merging a
// potentially large adjacency list just to discard most of it.
func (s *Store) AdjacencyContains(vertex idset.ID, dir Direction, version Version, typeFilter types.ID, neighbor idset.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.forward
	if dir == Backward {
		index = s.backward
	}
	a, ok := index[vertex]
	if !ok {
		return false
	}

	switch version {
	case Permanent:
		return hasNeighborUnderSubtract(a.permanent, a.diffMinus, neighbor, typeFilter)
	case DiffPlus:
		return hasNeighbor(a.diffPlus, neighbor, typeFilter)
	case DiffMinus:
		return hasNeighbor(a.diffMinus, neighbor, typeFilter)
	case Merged:
		if hasNeighborUnderSubtract(a.permanent, a.diffMinus, neighbor, typeFilter) {
			return true
		}
		return hasNeighbor(a.diffPlus, neighbor, typeFilter)
	}
	return false
}

// AllEdges returns every (from, to) vertex pair active under version,
// filtered by typeFilter, oriented the way Direction dir implies. This
// backs the generic-join executor's stage-0 seed (spec §4.5): for
// dir == Forward a stored edge (s, d) is yielded as (s, d); for
// dir == Backward it is yielded as (d, s), so that Adjacency(pair[0],
// dir, version, typeFilter) always contains pair[1].
func (s *Store) AllEdges(dir Direction, version Version, typeFilter types.ID) [][2]idset.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out [][2]idset.ID
	for v, a := range s.forward {
		var entries []entry
		switch version {
		case Permanent:
			entries = subtractSorted(a.permanent, a.diffMinus)
		case DiffPlus:
			entries = a.diffPlus
		case DiffMinus:
			entries = a.diffMinus
		case Merged:
			entries = mergeSorted(subtractSorted(a.permanent, a.diffMinus), a.diffPlus)
		}
		for _, e := range entries {
			if typeFilter != types.Any && e.typ != typeFilter {
				continue
			}
			if dir == Forward {
				out = append(out, [2]idset.ID{v, e.neighbor})
			} else {
				out = append(out, [2]idset.ID{e.neighbor, v})
			}
		}
	}
	return out
}

// EdgeIDFor resolves the stable identity of the edge (src, dst,
// edgeType) under version, for the EdgeIdResolver operator stage that
// turns a generic-join tuple of vertex IDs into edge IDs for property
// lookup. The second return value is false if no such edge is visible
// under version.
func (s *Store) EdgeIDFor(src, dst idset.ID, edgeType types.ID, version Version) (EdgeID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if edgeType == types.Any {
		edgeType, ok := s.resolveAnyType(src, dst, version)
		if !ok {
			return 0, false
		}
		return s.edgeIDForLocked(src, dst, edgeType, version)
	}
	return s.edgeIDForLocked(src, dst, edgeType, version)
}

// resolveAnyType finds the type of some edge (src, dst) visible under
// version, for callers that matched the pattern edge with an
// unconstrained type.
func (s *Store) resolveAnyType(src, dst idset.ID, version Version) (types.ID, bool) {
	a, ok := s.forward[src]
	if !ok {
		return 0, false
	}
	var entries []entry
	switch version {
	case Permanent:
		entries = subtractSorted(a.permanent, a.diffMinus)
	case DiffPlus:
		entries = a.diffPlus
	case DiffMinus:
		entries = a.diffMinus
	case Merged:
		entries = mergeSorted(subtractSorted(a.permanent, a.diffMinus), a.diffPlus)
	}
	for _, e := range entries {
		if e.neighbor == dst {
			return e.typ, true
		}
	}
	return 0, false
}

func (s *Store) edgeIDForLocked(src, dst idset.ID, edgeType types.ID, version Version) (EdgeID, bool) {
	key := edgeKey{src, dst, edgeType}
	switch version {
	case Permanent:
		if _, deleted := s.diffMinusEdges[key]; deleted {
			return 0, false
		}
		id, ok := s.permanentEdges[key]
		return id, ok
	case DiffPlus:
		id, ok := s.diffPlusEdges[key]
		return id, ok
	case DiffMinus:
		if _, ok := s.diffMinusEdges[key]; !ok {
			return 0, false
		}
		return s.permanentEdges[key], true
	case Merged:
		if id, ok := s.diffPlusEdges[key]; ok {
			return id, true
		}
		if _, deleted := s.diffMinusEdges[key]; deleted {
			return 0, false
		}
		id, ok := s.permanentEdges[key]
		return id, ok
	}
	return 0, false
}

// VertexCount returns one more than the highest vertex ID ever staged
// or committed in an edge, or 0 if no vertex has been mentioned.
func (s *Store) VertexCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.anyVertex {
		return 0
	}
	return int(s.maxVertex) + 1
}

// checkMirrorInvariant re-derives, for every forward entry, that the
// matching backward entry exists (and vice versa). It is an internal
// assertion: a violation means a bug in the mutation path above, not a
// user error, and is therefore a panic per spec §7
// (MutationInconsistency is fatal).
func (s *Store) checkMirrorInvariant() {
	for v, fwd := range s.forward {
		for _, e := range fwd.permanent {
			bwd := s.backward[e.neighbor]
			if bwd == nil || !containsSorted(bwd.permanent, entry{v, e.typ}) {
				panic(ErrMutationInconsistency)
			}
		}
	}
	for v, bwd := range s.backward {
		for _, e := range bwd.permanent {
			fwd := s.forward[e.neighbor]
			if fwd == nil || !containsSorted(fwd.permanent, entry{v, e.typ}) {
				panic(ErrMutationInconsistency)
			}
		}
	}
}
