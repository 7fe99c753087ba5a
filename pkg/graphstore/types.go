package graphstore

import (
	"errors"

	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/types"
)

// EdgeID uniquely identifies an edge from the moment addEdge stages it
// until the moment it is deleted (cancelled before commit, or removed
// from PERMANENT on commit). EdgeIDs are never reused.
type EdgeID uint64

// Direction selects which of a vertex's two mirrored adjacency indices
// to read: its outgoing (FORWARD) neighbors or incoming (BACKWARD) ones.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Version selects one of the four logical graph views spec §3 defines.
type Version int

const (
	// Permanent is everything committed before the current in-flight delta.
	Permanent Version = iota
	// DiffPlus is edges staged for addition but not yet merged.
	DiffPlus
	// DiffMinus is edges staged for deletion but still logically present
	// in Permanent until the next commit.
	DiffMinus
	// Merged is (Permanent ∪ DiffPlus) \ DiffMinus, served without
	// materializing a copy.
	Merged
)

// ErrMutationInconsistency is a checked internal assertion: the
// FORWARD/BACKWARD adjacency mirror invariant has been violated. Per
// spec §7 this is fatal and is raised as a panic, never returned as a
// normal error, so it is exposed here only for documentation/testing.
var ErrMutationInconsistency = errors.New("graphstore: forward/backward adjacency mirror violated")

// edgeKey is the (source, destination, type) identity of a logical
// edge. The store's PERMANENT/DIFF_PLUS/DIFF_MINUS bookkeeping is keyed
// on this triple, never on EdgeID, since EdgeIDs don't exist until an
// edge is first staged.
type edgeKey struct {
	src idset.ID
	dst idset.ID
	typ types.ID
}

// entry is one (neighbor, edge type) pair in a vertex's adjacency list.
// Entries are kept sorted by (neighbor, typ) so that "any type" lookups
// can stream distinct neighbors in ascending order with a single pass.
type entry struct {
	neighbor idset.ID
	typ      types.ID
}

func less(a, b entry) bool {
	if a.neighbor != b.neighbor {
		return a.neighbor < b.neighbor
	}
	return a.typ < b.typ
}
