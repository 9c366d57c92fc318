// Package cache defines the key-value caching port used to memoize
// retrieval results across turns.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss indicates the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a TTL key-value store. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the cached value for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl. A non-positive ttl stores
	// the value without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
