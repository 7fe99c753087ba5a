// Package types implements the small interning registry that edge types
// and property keys share: both are strings that get mapped to small,
// dense, non-negative integers the rest of the core can compare and
// index with cheaply.
//
// Registries are injected into planners and executors rather than kept
// as package-level singletons, so tests can use an isolated Registry per
// case and exercise the "unknown type" error path deterministically.
package types

import (
	"errors"
	"sync"
)

// ErrUnknownType is returned by Lookup when a non-nil name has never
// been interned. It corresponds to the spec's NoSuchElement error kind,
// raised during query planning against an undeclared type or property.
var ErrUnknownType = errors.New("types: unknown type or property key")

// ID is an interned small integer. Any is the distinguished sentinel
// that matches any type during adjacency filtering; it is never
// returned by Intern and never assigned to a real name.
type ID int32

// Any matches any edge type or, for property keys, is unused.
const Any ID = -1

// Registry interns strings to IDs and back. The zero value is not
// usable; construct with New.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]ID
	byID   []string
}

// New returns an empty Registry ready for concurrent use.
func New() *Registry {
	return &Registry{byName: make(map[string]ID)}
}

// Intern returns the ID for name, creating and assigning a new one if
// name has not been seen before. Intern never fails: unknown types are
// legal to create, per spec §4.1 ("Adding an edge with an unknown type
// literal is not an error; the type is interned on demand").
func (r *Registry) Intern(name string) ID {
	r.mu.RLock()
	if id, ok := r.byName[name]; ok {
		r.mu.RUnlock()
		return id
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byName[name]; ok {
		return id
	}
	id := ID(len(r.byID))
	r.byName[name] = id
	r.byID = append(r.byID, name)
	return id
}

// Lookup maps name to its interned ID. A nil name (no type/property
// constraint in the query) returns Any with no error. A non-nil name
// that was never interned returns ErrUnknownType — this is the path
// query planning uses to reject structured queries that reference
// undeclared types (spec §7 ValidationError).
func (r *Registry) Lookup(name *string) (ID, error) {
	if name == nil {
		return Any, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[*name]
	if !ok {
		return 0, ErrUnknownType
	}
	return id, nil
}

// Name returns the interned string for id, or "" if id is Any or
// out of range.
func (r *Registry) Name(id ID) string {
	if id == Any {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(r.byID) {
		return ""
	}
	return r.byID[id]
}

// Len returns the number of distinct interned strings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
