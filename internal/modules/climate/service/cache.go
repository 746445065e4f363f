package service

import (
	"sync"
	"time"
)

type entry[T any] struct {
	val T
	exp time.Time
}

// cache is a small TTL map used to memoize store fetches between requests.
type cache[T any] struct {
	mu  sync.RWMutex
	m   map[string]entry[T]
	ttl time.Duration
	now func() time.Time
}

func newCache[T any](ttl time.Duration) *cache[T] {
	return &cache[T]{m: make(map[string]entry[T]), ttl: ttl, now: time.Now}
}

func (c *cache[T]) Get(key string) (T, bool) {
	var zero T
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.exp) {
		return zero, false
	}
	return e.val, true
}

func (c *cache[T]) Set(key string, v T) {
	c.mu.Lock()
	c.m[key] = entry[T]{val: v, exp: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
