// Package cache provides a small in-process LRU cache with per-entry TTL,
// used to avoid recomputing per-owner summaries on every read.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is an LRU cache with TTL expiry and size-based eviction. A background
// janitor prunes expired entries; Close stops it.
type Cache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	entries map[string]*list.Element
	order   *list.List // front = most recently used

	stopJanitor chan struct{}
	closeOnce   sync.Once
}

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// New creates a cache holding at most maxSize entries, each valid for ttl.
// The janitor wakes at the given interval; zero disables it (tests).
func New[T any](maxSize int, ttl, janitorInterval time.Duration) *Cache[T] {
	c := &Cache[T]{
		maxSize:     maxSize,
		ttl:         ttl,
		entries:     make(map[string]*list.Element),
		order:       list.New(),
		stopJanitor: make(chan struct{}),
	}
	if janitorInterval > 0 {
		go c.janitor(janitorInterval)
	}
	return c
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	e := elem.Value.(*entry[T])
	if time.Now().After(e.expiresAt) {
		c.remove(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return e.value, true
}

func (c *Cache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[T]{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	if elem, ok := c.entries[key]; ok {
		elem.Value = e
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(e)
	if c.order.Len() > c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// Invalidate drops a key; callers use it after every mutation so stale
// aggregates are never served.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.remove(elem)
	}
}

func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// PruneExpired removes every expired entry and reports how many went.
func (c *Cache[T]) PruneExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var expired []*list.Element
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*entry[T]).expiresAt) {
			expired = append(expired, elem)
		}
	}
	for _, elem := range expired {
		c.remove(elem)
	}
	return len(expired)
}

// Close stops the janitor goroutine. Safe to call more than once.
func (c *Cache[T]) Close() {
	c.closeOnce.Do(func() { close(c.stopJanitor) })
}

func (c *Cache[T]) remove(elem *list.Element) {
	e := elem.Value.(*entry[T])
	delete(c.entries, e.key)
	c.order.Remove(elem)
}

func (c *Cache[T]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.PruneExpired()
		case <-c.stopJanitor:
			return
		}
	}
}
