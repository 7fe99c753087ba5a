package plancache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx7/graphmatch/pkg/plancache"
	"github.com/lx7/graphmatch/pkg/planner"
	"github.com/lx7/graphmatch/pkg/query"
)

func TestGetMissesOnEmptyCache(t *testing.T) {
	c := plancache.New(10, 0)
	_, ok := c.Get(plancache.Key(&query.StructuredQuery{Edges: []query.Edge{{From: "a", To: "b"}}}))
	assert.False(t, ok)
	assert.Equal(t, uint64(1), c.Stats().Misses)
}

func TestPutThenGetHits(t *testing.T) {
	c := plancache.New(10, 0)
	q := &query.StructuredQuery{Edges: []query.Edge{{From: "a", To: "b"}}}
	key := plancache.Key(q)
	plan := &planner.Plan{OrderedVariables: []string{"a", "b"}}

	c.Put(key, plan)
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Same(t, plan, got)
	assert.Equal(t, uint64(1), c.Stats().Hits)
}

func TestKeyDistinguishesDifferentPatterns(t *testing.T) {
	k1 := plancache.Key(&query.StructuredQuery{Edges: []query.Edge{{From: "a", To: "b"}}})
	k2 := plancache.Key(&query.StructuredQuery{Edges: []query.Edge{{From: "a", To: "c"}}})
	assert.NotEqual(t, k1, k2)
}

func TestKeyIsStableAcrossEquivalentQueryValues(t *testing.T) {
	follows := "FOLLOWS"
	q1 := &query.StructuredQuery{Edges: []query.Edge{{From: "a", To: "b", EdgeType: &follows}}}
	q2 := &query.StructuredQuery{Edges: []query.Edge{{From: "a", To: "b", EdgeType: &follows}}}
	assert.Equal(t, plancache.Key(q1), plancache.Key(q2))
}

func TestPutEvictsLeastRecentlyUsedAtCapacity(t *testing.T) {
	c := plancache.New(2, 0)
	planA := &planner.Plan{OrderedVariables: []string{"a"}}
	planB := &planner.Plan{OrderedVariables: []string{"b"}}
	planC := &planner.Plan{OrderedVariables: []string{"c"}}

	c.Put(1, planA)
	c.Put(2, planB)
	c.Get(1) // touch key 1 so key 2 becomes least recently used
	c.Put(3, planC)

	_, ok := c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(1)
	assert.True(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)
}

func TestGetExpiresEntriesPastTTL(t *testing.T) {
	c := plancache.New(10, time.Nanosecond)
	plan := &planner.Plan{OrderedVariables: []string{"a"}}
	c.Put(1, plan)
	time.Sleep(time.Microsecond)

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestInvalidateClearsAllEntries(t *testing.T) {
	c := plancache.New(10, 0)
	c.Put(1, &planner.Plan{})
	c.Put(2, &planner.Plan{})

	c.Invalidate()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)
}
