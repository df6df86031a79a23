package cache

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// memoryEntry carries its own expiry so callers can use TTLs shorter than
// the store-wide ceiling.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// isExpired checks if the entry has expired.
func (e memoryEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// MemoryStore is a bounded in-process Store.
// Use this for development/testing, single-instance deployments, or as the
// fallback when Redis is unreachable at startup.
type MemoryStore struct {
	lru *expirable.LRU[string, memoryEntry]
}

// NewMemoryStore creates a store holding at most size entries. maxTTL caps
// the lifetime of every entry regardless of the TTL passed to Set.
func NewMemoryStore(size int, maxTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
	}
}

// Get retrieves a value by key.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	entry, ok := s.lru.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if entry.isExpired() {
		s.lru.Remove(key)
		return nil, ErrCacheMiss
	}

	result := make([]byte, len(entry.value))
	copy(result, entry.value)
	return result, nil
}

// Set stores a value with the given TTL.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrNoTTL
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	s.lru.Add(key, memoryEntry{
		value:     valueCopy,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a value by key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}

// DeletePrefix removes all entries whose key starts with prefix.
func (s *MemoryStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	removed := 0
	for _, key := range s.lru.Keys() {
		if strings.HasPrefix(key, prefix) && s.lru.Remove(key) {
			removed++
		}
	}
	return removed, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of entries, including ones not yet evicted.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}

var _ Store = (*MemoryStore)(nil)
