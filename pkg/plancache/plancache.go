// Package plancache caches compiled planner.Plan values keyed by the
// structured query that produced them, so a repeated MATCH/CONTINUOUS
// MATCH skips re-planning entirely. A Plan is stateless once built
// (see pkg/planner), which is exactly what makes it safe to share
// across executions the way this cache shares it.
package plancache

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lx7/graphmatch/pkg/planner"
	"github.com/lx7/graphmatch/pkg/query"
)

// Cache is a thread-safe LRU cache of compiled plans with optional TTL
// expiration.
type Cache struct {
	mu sync.RWMutex

	maxSize int
	ttl     time.Duration

	list  *list.List
	items map[uint64]*list.Element

	hits   uint64
	misses uint64
}

type cacheEntry struct {
	key       uint64
	plan      *planner.Plan
	expiresAt time.Time
}

// New creates a plan cache holding at most maxSize plans, each valid
// for ttl after insertion (ttl of 0 disables expiration).
func New(maxSize int, ttl time.Duration) *Cache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Cache{
		maxSize: maxSize,
		ttl:     ttl,
		list:    list.New(),
		items:   make(map[uint64]*list.Element, maxSize),
	}
}

// Key hashes the structural content of q that determines its Plan:
// the operation and the pattern edges (endpoints in order, relation
// name, and type). Predicates, projection, and aggregations are not
// hashed. Two
// StructuredQuery values with the same shape hash identically even if
// built from distinct parses.
func Key(q *query.StructuredQuery) uint64 {
	h := fnv.New64a()
	writeByte := func(b byte) { h.Write([]byte{b}) }
	writeByte(byte(q.Operation))
	for _, e := range q.Edges {
		h.Write([]byte(e.From))
		h.Write([]byte(e.To))
		h.Write([]byte(e.RelationName))
		if e.EdgeType != nil {
			h.Write([]byte(*e.EdgeType))
		}
		writeByte(0xff)
	}
	return h.Sum64()
}

// Get retrieves the plan cached for key, if present and not expired.
// A hit moves the entry to the front of the LRU list.
func (c *Cache) Get(key uint64) (*planner.Plan, bool) {
	c.mu.RLock()
	elem, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		atomic.AddUint64(&c.misses, 1)
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if c.ttl > 0 && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		c.removeElement(elem)
		c.mu.Unlock()
		atomic.AddUint64(&c.misses, 1)
		return nil, false
	}

	c.mu.Lock()
	c.list.MoveToFront(elem)
	c.mu.Unlock()

	atomic.AddUint64(&c.hits, 1)
	return entry.plan, true
}

// Put inserts or refreshes the plan cached for key, evicting the
// least-recently-used entry if the cache is at capacity.
func (c *Cache) Put(key uint64, plan *planner.Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.plan = plan
		if c.ttl > 0 {
			entry.expiresAt = time.Now().Add(c.ttl)
		}
		c.list.MoveToFront(elem)
		return
	}

	for c.list.Len() >= c.maxSize {
		c.evictOldest()
	}

	entry := &cacheEntry{key: key, plan: plan}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}
	c.items[key] = c.list.PushFront(entry)
}

// Invalidate drops every cached plan. Callers hit this after a CREATE
// or DELETE changes the graph's edge-type population enough that a
// cached plan's EdgeIdResolver wiring could be referring to stale
// relation bindings, or simply on a schema change that makes cached
// plans no longer trustworthy.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list.Init()
	c.items = make(map[uint64]*list.Element, c.maxSize)
}

// Len returns the number of plans currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.list.Len()
}

// Stats reports cumulative hit/miss counts and the current hit rate.
type Stats struct {
	Size    int
	MaxSize int
	Hits    uint64
	Misses  uint64
	HitRate float64
}

func (c *Cache) Stats() Stats {
	hits := atomic.LoadUint64(&c.hits)
	misses := atomic.LoadUint64(&c.misses)

	c.mu.RLock()
	size := c.list.Len()
	c.mu.RUnlock()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return Stats{Size: size, MaxSize: c.maxSize, Hits: hits, Misses: misses, HitRate: hitRate}
}

func (c *Cache) evictOldest() {
	if elem := c.list.Back(); elem != nil {
		c.removeElement(elem)
	}
}

func (c *Cache) removeElement(elem *list.Element) {
	c.list.Remove(elem)
	delete(c.items, elem.Value.(*cacheEntry).key)
}
