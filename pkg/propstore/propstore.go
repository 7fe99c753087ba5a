// Package propstore holds the property values CREATE attaches to
// vertices and edges — name:value pairs keyed by an interned property
// key, mirroring the Labels/Properties split the adjacency-graph
// teacher keeps on its Node and Edge structs, but split out here since
// the join executor never touches properties: only the operator
// pipeline's PropertyResolver and Filter stages do.
package propstore

import (
	"sync"

	"github.com/lx7/graphmatch/pkg/graphstore"
	"github.com/lx7/graphmatch/pkg/idset"
	"github.com/lx7/graphmatch/pkg/types"
)

// Store holds properties for vertices (keyed by idset.ID) and edges
// (keyed by graphstore.EdgeID), each a map from interned property key
// to an arbitrary Go value (int32, float64, bool, or string — the four
// kinds pkg/codec serializes).
type Store struct {
	mu     sync.RWMutex
	vertex map[idset.ID]map[types.ID]any
	edge   map[graphstore.EdgeID]map[types.ID]any
}

// New returns an empty property Store.
func New() *Store {
	return &Store{
		vertex: make(map[idset.ID]map[types.ID]any),
		edge:   make(map[graphstore.EdgeID]map[types.ID]any),
	}
}

// SetVertexProperty assigns value to key on vertex.
func (s *Store) SetVertexProperty(vertex idset.ID, key types.ID, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, ok := s.vertex[vertex]
	if !ok {
		props = make(map[types.ID]any)
		s.vertex[vertex] = props
	}
	props[key] = value
}

// VertexProperty returns the value of key on vertex, or nil if unset.
func (s *Store) VertexProperty(vertex idset.ID, key types.ID) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	props, ok := s.vertex[vertex]
	if !ok {
		return nil, false
	}
	v, ok := props[key]
	return v, ok
}

// SetEdgeProperty assigns value to key on edge.
func (s *Store) SetEdgeProperty(edge graphstore.EdgeID, key types.ID, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, ok := s.edge[edge]
	if !ok {
		props = make(map[types.ID]any)
		s.edge[edge] = props
	}
	props[key] = value
}

// EdgeProperty returns the value of key on edge, or nil if unset.
func (s *Store) EdgeProperty(edge graphstore.EdgeID, key types.ID) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	props, ok := s.edge[edge]
	if !ok {
		return nil, false
	}
	v, ok := props[key]
	return v, ok
}

// DropVertex discards every property recorded for vertex. There is no
// corresponding vertex-deletion operation elsewhere in the store today;
// this exists so callers that reassign a vertex ID's role (tests, bulk
// loaders) can start clean.
func (s *Store) DropVertex(vertex idset.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vertex, vertex)
}

// DropEdge discards every property recorded for edge.
func (s *Store) DropEdge(edge graphstore.EdgeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edge, edge)
}
