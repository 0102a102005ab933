// Package cache implements a small bounded cache mapping RecordPath source
// strings to compiled paths (spec §4.3). It does not know anything about
// paths themselves — compiled values are stored as interface{} so callers
// in package recordpath can wire it to *expr.Path without an import cycle.
package cache

import "sync"

// DefaultCapacity matches the partitioning processor's own compile-cache
// size (spec §4.3).
const DefaultCapacity = 25

// Cache is a bounded, explicit-handle (not global) mapping from source
// text to a compiled value. Eviction is least-recently-inserted (FIFO):
// spec §4.3 says FIFO is sufficient and LRU is acceptable, so the simpler
// policy is used here. A single mutex guards both lookup and insert,
// matching the teacher's bucketKeyCache pattern of one lock around the
// whole map rather than a read/write split, since path compilation (the
// thing we're avoiding) dominates the cost of a lock acquisition.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]any
	order    []string // insertion order, oldest first
}

// New creates a Cache with the given capacity. A non-positive capacity is
// replaced with DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]any, capacity),
	}
}

// Get returns the cached value for source, if present.
func (c *Cache) Get(source string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[source]
	return v, ok
}

// Put inserts value under source, evicting the oldest entry if the cache
// is at capacity. Put on an already-present key is a no-op beyond
// refreshing its value; it does not move the key in eviction order.
func (c *Cache) Put(source string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[source]; exists {
		c.entries[source] = value
		return
	}
	if len(c.entries) >= c.capacity {
		c.evictOldestLocked()
	}
	c.entries[source] = value
	c.order = append(c.order, source)
}

func (c *Cache) evictOldestLocked() {
	for len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.entries[oldest]; ok {
			delete(c.entries, oldest)
			return
		}
	}
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
