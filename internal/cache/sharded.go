// Package cache provides a concurrent memo used to share edge points
// between goroutines evaluating neighboring faces.
package cache

import (
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	ShardCount = 16

	shardMask = ShardCount - 1
)

// Hasher computes a hash for a key. Used for shard selection only.
type Hasher[K any] func(K) uint64

// Uint64Hasher mixes the key with a 64-bit finalizer so that consecutive
// IDs spread over all shards.
func Uint64Hasher(u uint64) uint64 {
	u ^= u >> 33
	u *= 0xff51afd7ed558ccd
	u ^= u >> 33
	u *= 0xc4ceb9fe1a85ec53
	u ^= u >> 33
	return u
}

// Sharded is a thread-safe, sharded, unbounded memo.
//
// Entries are never evicted: a subdivision pass knows how many edges it can
// touch, and dropping an entry would only force a recomputation of the same
// value.
type Sharded[K comparable, V any] struct {
	shards [ShardCount]*shard[K, V]
	hasher Hasher[K]

	hits   atomic.Uint64
	misses atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// NewSharded creates an empty memo. sizeHint is the expected total number
// of entries and is used to presize the shards.
func NewSharded[K comparable, V any](sizeHint int, hasher Hasher[K]) *Sharded[K, V] {
	c := &Sharded[K, V]{hasher: hasher}
	per := max(sizeHint/ShardCount, 0)
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]V, per)}
	}
	return c
}

func (c *Sharded[K, V]) shard(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get retrieves a memoized value.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shard(key)
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// GetOrCreate returns the memoized value for key, calling create on a miss.
//
// create runs without the shard lock held, so two goroutines missing the
// same key may both call it; the first stored result wins and is returned
// to both. create must therefore be deterministic. If create fails nothing
// is stored.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	s := c.shard(key)

	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return v, nil
	}

	c.misses.Add(1)
	v, err := create()
	if err != nil {
		return v, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return existing, nil
	}
	s.entries[key] = v
	return v, nil
}

// Len returns the total number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Stats reports memo usage.
type Stats struct {
	Len     int
	Hits    uint64
	Misses  uint64
	HitRate float64
}

// Stats returns current statistics.
func (c *Sharded[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{Len: c.Len(), Hits: hits, Misses: misses, HitRate: rate}
}
