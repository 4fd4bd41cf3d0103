// Package cache provides a small in-memory LRU with per-entry TTL,
// used to cache dashboard chart responses keyed by user and period.
package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// LRU evicts the least recently used entry once maxEntries is exceeded.
// Expired entries are dropped lazily on Get and swept by Janitor.
type LRU[T any] struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	order      *list.List
	index      map[string]*list.Element
}

func NewLRU[T any](maxEntries int, ttl time.Duration) *LRU[T] {
	return &LRU[T]{
		maxEntries: maxEntries,
		ttl:        ttl,
		order:      list.New(),
		index:      make(map[string]*list.Element),
	}
}

// Key builds a cache key from its parts, typically userID and period.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	el, ok := c.index[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[T])
	if time.Now().After(e.expiresAt) {
		c.evict(el)
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

func (c *LRU[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[T]{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	if el, ok := c.index[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(e)
	if c.order.Len() > c.maxEntries {
		if back := c.order.Back(); back != nil {
			c.evict(back)
		}
	}
}

// InvalidatePrefix drops every entry whose key starts with prefix,
// e.g. all cached periods for one user after a transaction write.
func (c *LRU[T]) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stale []*list.Element
	for el := c.order.Front(); el != nil; el = el.Next() {
		if strings.HasPrefix(el.Value.(*entry[T]).key, prefix) {
			stale = append(stale, el)
		}
	}
	for _, el := range stale {
		c.evict(el)
	}
}

func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Janitor sweeps expired entries every interval until ctx is done.
func (c *LRU[T]) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-ctx.Done():
			return
		}
	}
}

func (c *LRU[T]) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var stale []*list.Element
	for el := c.order.Front(); el != nil; el = el.Next() {
		if now.After(el.Value.(*entry[T]).expiresAt) {
			stale = append(stale, el)
		}
	}
	for _, el := range stale {
		c.evict(el)
	}
}

func (c *LRU[T]) evict(el *list.Element) {
	delete(c.index, el.Value.(*entry[T]).key)
	c.order.Remove(el)
}
