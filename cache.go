package milsym

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// lruCache is a thread-safe LRU cache of rendered symbols.
type lruCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]*list.Element
	lru      *list.List

	hits   atomic.Uint64
	misses atomic.Uint64
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// newLRUCache creates a cache holding at most capacity entries.
func newLRUCache[K comparable, V any](capacity int) *lruCache[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &lruCache[K, V]{
		capacity: capacity,
		entries:  make(map[K]*list.Element, capacity),
		lru:      list.New(),
	}
}

// Get returns the value stored for key and marks it as most recently used.
func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.lru.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*lruEntry[K, V]).value, true
	}
	c.misses.Add(1)

	var zero V
	return zero, false
}

// Set stores value for key, evicting the least recently used entry when full.
func (c *lruCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry[K, V]).value = value
		c.lru.MoveToFront(el)
		return
	}

	c.entries[key] = c.lru.PushFront(&lruEntry[K, V]{key: key, value: value})
	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry[K, V]).key)
	}
}

// Len returns the number of cached entries.
func (c *lruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns the number of cache hits and misses.
func (c *lruCache[K, V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
