package memory

import (
	"context"
	"sync"
	"time"

	"github.com/merchantlab/consult-go/domain/cache"
)

// cacheEntry holds a cached value with expiration.
type cacheEntry struct {
	value     []byte
	expiresAt time.Time
	accessAt  time.Time
}

func (e *cacheEntry) isExpired() bool {
	if e.expiresAt.IsZero() {
		return false
	}
	return time.Now().After(e.expiresAt)
}

// Cache is an in-memory implementation of cache.Cache with TTL
// expiration and LRU eviction when at capacity.
type Cache struct {
	entries map[string]*cacheEntry
	maxSize int
	mu      sync.RWMutex
}

// CacheOption configures the cache.
type CacheOption func(*Cache)

// WithMaxSize sets the maximum number of entries.
func WithMaxSize(size int) CacheOption {
	return func(c *Cache) {
		c.maxSize = size
	}
}

// NewCache creates a new in-memory cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]*cacheEntry),
		maxSize: 1000,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a value from the cache.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	if entry.isExpired() {
		delete(c.entries, key)
		return nil, cache.ErrMiss
	}

	entry.accessAt = time.Now()
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

// Set stores a value in the cache.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		if _, exists := c.entries[key]; !exists {
			c.evictOldest()
		}
	}

	entry := &cacheEntry{
		value:    make([]byte, len(value)),
		accessAt: time.Now(),
	}
	copy(entry.value, value)
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

// Delete removes a key from the cache.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// evictOldest removes the least recently accessed entry. Caller holds
// the lock.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestAccess time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.accessAt.Before(oldestAccess) {
			oldestKey = key
			oldestAccess = entry.accessAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
