package engine

import (
	"math"
	"sync"
)

// cacheKey is bit-exact on the epoch component, per the "no rounding"
// cache-key invariant: two epochs that differ in the last bit of their
// float64 representation are different cache entries.
type cacheKey struct {
	target, observer int32
	frame            Frame
	epochBits        uint64
}

func newCacheKey(q Query) cacheKey {
	return cacheKey{
		target:    int32(q.Target),
		observer:  int32(q.Observer),
		frame:     q.Frame,
		epochBits: math.Float64bits(q.EpochTDBJD),
	}
}

// stateCache is a bounded map guarded by a single mutex. Entries are
// evicted in insertion order once capacity is exceeded — the cache never
// stores an error, only successfully resolved state vectors.
type stateCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey]StateVector
	order    []cacheKey
	metrics  *cacheMetrics
}

func newStateCache(capacity int, metrics *cacheMetrics) *stateCache {
	return &stateCache{
		capacity: capacity,
		entries:  make(map[cacheKey]StateVector, capacity),
		metrics:  metrics,
	}
}

func (c *stateCache) get(key cacheKey) (StateVector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sv, ok := c.entries[key]
	if ok {
		c.metrics.incHit()
	} else {
		c.metrics.incMiss()
	}
	return sv, ok
}

// insert records sv under key unless another goroutine already raced in
// a value for the same key (evaluate-outside-lock, insert-and-discard-
// duplicate-on-race), then evicts the oldest entry if over capacity.
func (c *stateCache) insert(key cacheKey, sv StateVector) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}

	c.entries[key] = sv
	c.order = append(c.order, key)
	c.metrics.setSize(len(c.entries))

	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		c.metrics.setSize(len(c.entries))
	}
}
