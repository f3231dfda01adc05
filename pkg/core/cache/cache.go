// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     cache
// Description: Thread-safe in-memory cache with TTL and capacity limit
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cache

import (
	"sync"
	"time"
)

// Entry represents a cached item with expiration
type Entry[V any] struct {
	Value      V
	Expiration time.Time
}

// IsExpired checks if the entry has expired at now
func (e *Entry[V]) IsExpired(now time.Time) bool {
	if e.Expiration.IsZero() {
		return false // Never expires
	}
	return now.After(e.Expiration)
}

// Cache is a thread-safe in-memory cache. Expired entries are dropped on
// access and whenever the cache is full.
type Cache[V any] struct {
	mu       sync.RWMutex
	items    map[string]*Entry[V]
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	// Metrics
	hits   int64
	misses int64
}

// Config holds cache configuration
type Config struct {
	MaxItems int
	// TTL of new entries, zero keeps entries until evicted
	TTL time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems: 1000,
		TTL:      10 * time.Minute,
	}
}

// New creates a new cache instance
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 1000
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}

	return &Cache[V]{
		items:    make(map[string]*Entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, exists := c.items[key]
	if !exists {
		c.misses++
		return zero, false
	}
	if entry.IsExpired(c.now()) {
		delete(c.items, key)
		c.misses++
		return zero, false
	}

	c.hits++
	return entry.Value, true
}

// Set stores a value in the cache with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.cleanup(now)
		if len(c.items) >= c.maxItems {
			c.evictOldest()
		}
	}

	var exp time.Time
	if c.ttl > 0 {
		exp = now.Add(c.ttl)
	}
	c.items[key] = &Entry[V]{Value: value, Expiration: exp}
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() (hits, misses int64, hitRate float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	hits = c.hits
	misses = c.misses
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// GetOrSet returns the cached value or computes and stores it. Errors are
// not cached.
func (c *Cache[V]) GetOrSet(key string, fn func() (V, error)) (V, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}

	val, err := fn()
	if err != nil {
		return val, err
	}

	c.Set(key, val)
	return val, nil
}

// evictOldest removes the entry expiring first (must be called with lock held)
func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.items {
		if oldestKey == "" || entry.Expiration.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.Expiration
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// cleanup removes all expired entries (must be called with lock held)
func (c *Cache[V]) cleanup(now time.Time) {
	for key, entry := range c.items {
		if entry.IsExpired(now) {
			delete(c.items, key)
		}
	}
}
