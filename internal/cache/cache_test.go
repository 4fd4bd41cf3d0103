package cache

import (
	"testing"
	"time"
)

func TestLRUEviction(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected oldest entry to be evicted")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("Get(b) = %d, %v", v, ok)
	}
	if got := c.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestLRURecentUseSurvives(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry was evicted")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used entry survived")
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[string](4, 10*time.Millisecond)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry returned")
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := NewLRU[int](8, time.Minute)
	c.Set(Key("user-1", "week"), 1)
	c.Set(Key("user-1", "month"), 2)
	c.Set(Key("user-2", "week"), 3)

	c.InvalidatePrefix("user-1")

	if _, ok := c.Get(Key("user-1", "week")); ok {
		t.Fatal("invalidated entry returned")
	}
	if _, ok := c.Get(Key("user-1", "month")); ok {
		t.Fatal("invalidated entry returned")
	}
	if _, ok := c.Get(Key("user-2", "week")); !ok {
		t.Fatal("unrelated user entry was dropped")
	}
}
