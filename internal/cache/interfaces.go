package cache

import (
	"context"
	"time"
)

// Store is a string-keyed byte store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A non-positive TTL is rejected.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every key starting with prefix and reports how
	// many were removed. Keys are discovered by scanning the store.
	DeletePrefix(ctx context.Context, prefix string) (int, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// Common cache errors
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"

	// ErrNoTTL is returned when an entry would be stored without expiry.
	ErrNoTTL CacheError = "cache entry requires a positive ttl"
)
