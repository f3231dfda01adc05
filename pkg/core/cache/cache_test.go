package cache

import (
	"errors"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string](DefaultConfig())

	if _, ok := c.Get("a"); ok {
		t.Error("empty cache returned a value")
	}
	c.Set("a", "alpha")
	if v, ok := c.Get("a"); !ok || v != "alpha" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 || rate != 50 {
		t.Errorf("Stats() = %d, %d, %v", hits, misses, rate)
	}

	c.Delete("a")
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Delete", c.Size())
	}
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := New[int](Config{MaxItems: 10, TTL: time.Minute})
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry expired too early")
	}
	now = now.Add(time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry returned")
	}
	if c.Size() != 0 {
		t.Errorf("expired entry kept, Size() = %d", c.Size())
	}
}

func TestCache_Capacity(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := New[int](Config{MaxItems: 2, TTL: time.Hour})
	c.now = func() time.Time { return now }

	c.Set("first", 1)
	now = now.Add(time.Second)
	c.Set("second", 2)
	now = now.Add(time.Second)
	c.Set("third", 3)

	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}
	if _, ok := c.Get("first"); ok {
		t.Error("oldest entry not evicted")
	}

	c.Set("second", 22)
	if v, _ := c.Get("second"); v != 22 || c.Size() != 2 {
		t.Errorf("overwrite evicted entries: Size() = %d", c.Size())
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[[]byte](DefaultConfig())
	calls := 0
	load := func() ([]byte, error) {
		calls++
		return []byte("body"), nil
	}

	for range 3 {
		v, err := c.GetOrSet("url", load)
		if err != nil || string(v) != "body" {
			t.Fatalf("GetOrSet() = %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrSet("bad", func() ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrSet() error = %v", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed load was cached")
	}
}
