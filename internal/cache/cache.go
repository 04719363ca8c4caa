// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// In-memory TTL cache for loaded node tables.

package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	loadedAt  time.Time
	expiresAt time.Time
}

// Cache maps keys to values with an optional per-entry TTL. Values are
// replaced, never mutated, so readers may keep a value after eviction.
type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]item[V]
	now   func() time.Time
}

func New[V any]() *Cache[V] {
	return &Cache[V]{items: make(map[string]item[V]), now: time.Now}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[key]
	if !ok || c.expired(it) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// LoadedAt reports when key was last stored.
func (c *Cache[V]) LoadedAt(key string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[key]
	if !ok || c.expired(it) {
		return time.Time{}, false
	}
	return it.loadedAt, true
}

func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	it := item[V]{value: value, loadedAt: now}
	if ttl > 0 {
		it.expiresAt = now.Add(ttl)
	}
	c.items[key] = it
}

func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[V]) expired(it item[V]) bool {
	return !it.expiresAt.IsZero() && c.now().After(it.expiresAt)
}
