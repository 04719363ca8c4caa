// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Unit tests for TTL cache.

package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New[string]()
	c.Set("k", "v", time.Second)
	v, ok := c.Get("k")
	if !ok || v != "v" {
		t.Fatalf("expected v, got %v", v)
	}
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[int]()
	c.now = func() time.Time { return now }
	c.Set("ttl", 1, time.Minute)
	c.Set("forever", 2, 0)
	if at, ok := c.LoadedAt("ttl"); !ok || !at.Equal(now) {
		t.Fatalf("unexpected LoadedAt %v %v", at, ok)
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("ttl"); ok {
		t.Fatalf("expected ttl entry to expire")
	}
	if v, ok := c.Get("forever"); !ok || v != 2 {
		t.Fatalf("entry without ttl should not expire")
	}
}
