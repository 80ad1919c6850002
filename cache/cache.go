// Package cache provides a thread-safe, sharded LRU cache with a cost
// budget, used to keep decoded images keyed by their source.
//
// Decode workers fill the cache concurrently while the event goroutine
// reads from it, so every shard has its own lock while the budget and
// statistics are shared atomic counters. Eviction is least recently used
// within a shard; when the shard of a new entry has nothing left to give
// up, the other shards are trimmed in order.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// ShardCount is the number of shards. Must be a power of 2.
const ShardCount = 8

const shardMask = ShardCount - 1

// DefaultBudget is the default total cost budget (64 MiB of pixels when
// cost is a byte size).
const DefaultBudget = 64 << 20

// Hasher computes a hash for a key, used for shard selection.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// CostFunc returns the cost of a value. Values costing more than the whole
// budget are never stored.
type CostFunc[V any] func(V) int

// Stats holds cache statistics.
type Stats struct {
	Len       int
	Cost      int
	Budget    int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a sharded LRU keyed by K that evicts entries once the total
// cost of all shards exceeds the budget.
type Cache[K comparable, V any] struct {
	shards [ShardCount]*shard[K, V]
	hasher Hasher[K]
	cost   CostFunc[V]
	budget int64
	total  atomic.Int64

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*node[K, V]
	// head is the most recently used entry, tail the least.
	head, tail *node[K, V]
	cost       int
}

type node[K comparable, V any] struct {
	key        K
	value      V
	cost       int
	prev, next *node[K, V]
}

// New creates a cache with the given total cost budget. A nil cost function
// counts every entry as 1, turning the budget into an entry count.
// If budget <= 0, DefaultBudget is used.
func New[K comparable, V any](budget int, hasher Hasher[K], cost CostFunc[V]) *Cache[K, V] {
	if budget <= 0 {
		budget = DefaultBudget
	}
	if cost == nil {
		cost = func(V) int { return 1 }
	}
	c := &Cache[K, V]{
		hasher: hasher,
		cost:   cost,
		budget: int64(budget),
	}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]*node[K, V])}
	}
	return c
}

func (c *Cache[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get returns the value stored under key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	n, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.moveToFront(n)
	v := n.value
	s.mu.Unlock()
	c.hits.Add(1)
	return v, true
}

// Put stores value under key, replacing any previous value, and evicts
// least recently used entries until the cache fits its budget.
// It reports whether the value was stored.
func (c *Cache[K, V]) Put(key K, value V) bool {
	cost := c.cost(value)
	if int64(cost) > c.budget {
		return false
	}
	s := c.shardFor(key)
	s.mu.Lock()
	n, ok := s.entries[key]
	if ok {
		c.total.Add(int64(cost - n.cost))
		s.cost += cost - n.cost
		n.value, n.cost = value, cost
		s.moveToFront(n)
	} else {
		n = &node[K, V]{key: key, value: value, cost: cost}
		s.entries[key] = n
		s.pushFront(n)
		s.cost += cost
		c.total.Add(int64(cost))
	}
	c.evict(s, n)
	s.mu.Unlock()

	// One shard lock at a time.
	for _, o := range c.shards {
		if c.total.Load() <= c.budget {
			break
		}
		if o == s {
			continue
		}
		o.mu.Lock()
		c.evict(o, nil)
		o.mu.Unlock()
	}
	return true
}

// evict drops entries from the tail of s while the cache is over budget,
// stopping at keep. The caller holds s.mu.
func (c *Cache[K, V]) evict(s *shard[K, V], keep *node[K, V]) {
	for c.total.Load() > c.budget && s.tail != nil && s.tail != keep {
		old := s.tail
		s.unlink(old)
		delete(s.entries, old.key)
		s.cost -= old.cost
		c.total.Add(-int64(old.cost))
		c.evictions.Add(1)
	}
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.entries[key]
	if !ok {
		return false
	}
	s.unlink(n)
	delete(s.entries, key)
	s.cost -= n.cost
	c.total.Add(-int64(n.cost))
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		c.total.Add(-int64(s.cost))
		s.entries = make(map[K]*node[K, V])
		s.head, s.tail, s.cost = nil, nil, 0
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	st := Stats{
		Budget:    int(c.budget),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	for _, s := range c.shards {
		s.mu.Lock()
		st.Len += len(s.entries)
		st.Cost += s.cost
		s.mu.Unlock()
	}
	return st
}

func (s *shard[K, V]) pushFront(n *node[K, V]) {
	n.prev, n.next = nil, s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

func (s *shard[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

func (s *shard[K, V]) moveToFront(n *node[K, V]) {
	if s.head == n {
		return
	}
	s.unlink(n)
	s.pushFront(n)
}
