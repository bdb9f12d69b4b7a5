// Package cache provides the bounded caches owned by the query layer.
package cache

import "sync"

// FIFO is a fixed-capacity cache with first-in-first-out eviction: once the
// capacity is reached, the oldest inserted entry is dropped regardless of
// how recently it was read. Safe for concurrent use.
type FIFO[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]V
	queue    []K // insertion order, oldest first
}

// NewFIFO returns an empty cache holding at most capacity entries.
// Panics if capacity is not positive.
func NewFIFO[K comparable, V any](capacity int) *FIFO[K, V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}
	return &FIFO[K, V]{
		capacity: capacity,
		items:    make(map[K]V, capacity),
	}
}

// Get returns the cached value for key, if present.
func (c *FIFO[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

// Add inserts key if absent, evicting the oldest entry when full. Adding an
// existing key is a no-op: FIFO order does not change on re-insertion.
func (c *FIFO[K, V]) Add(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(key, value)
}

// Len returns the current number of cached entries.
func (c *FIFO[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// GetOrCompute returns the cached value for key, calling compute on a miss
// and caching the result. The lock is not held during compute, so two
// concurrent first accesses may both compute; the value is the same either
// way and only one copy is kept. A compute error is returned uncached.
func (c *FIFO[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Add(key, v)
	return v, nil
}

func (c *FIFO[K, V]) add(key K, value V) {
	if _, ok := c.items[key]; ok {
		return
	}
	if len(c.items) >= c.capacity {
		oldest := c.queue[0]
		c.queue = c.queue[1:]
		delete(c.items, oldest)
	}
	c.items[key] = value
	c.queue = append(c.queue, key)
}
