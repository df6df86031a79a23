package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

// DefaultTTL applies to every listing entry unless a caller overrides it.
const DefaultTTL = 30 * time.Minute

// Cache is the typed JSON façade over a Store. Store failures are logged and
// reported as misses or dropped writes; they never reach the caller.
// A nil *Cache behaves as a cache that always misses.
type Cache struct {
	store Store
	ttl   time.Duration
}

// New creates a façade over store. A non-positive ttl selects DefaultTTL.
func New(store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: store, ttl: ttl}
}

// TTL returns the default entry lifetime.
func (c *Cache) TTL() time.Duration {
	if c == nil {
		return DefaultTTL
	}
	return c.ttl
}

// Ping checks the underlying store.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.store == nil {
		return errors.New("cache not configured")
	}
	return c.store.Ping(ctx)
}

// Clear deletes every key starting with prefix.
func (c *Cache) Clear(ctx context.Context, prefix string) error {
	if c == nil || c.store == nil {
		return nil
	}
	n, err := c.store.DeletePrefix(ctx, prefix)
	cacheInvalidatedKeysTotal.Add(float64(n))
	if err != nil {
		cacheErrorsTotal.WithLabelValues("clear").Inc()
		return err
	}
	return nil
}

// Get returns the value stored under key. ok is false on a miss, on a store
// failure, and on an entry that does not decode into T.
func Get[T any](ctx context.Context, c *Cache, key string) (value T, ok bool) {
	if c == nil || c.store == nil {
		return value, false
	}

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			cacheErrorsTotal.WithLabelValues("get").Inc()
			log.Printf("[Cache] Error getting entry %q: %v", key, err)
		}
		cacheMissesTotal.Inc()
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		cacheErrorsTotal.WithLabelValues("decode").Inc()
		cacheMissesTotal.Inc()
		log.Printf("[Cache] Malformed entry %q: %v", key, err)
		var zero T
		return zero, false
	}

	cacheHitsTotal.Inc()
	return value, true
}

// Set stores value under key with the default TTL.
func Set[T any](ctx context.Context, c *Cache, key string, value T) {
	SetWithTTL(ctx, c, key, value, 0)
}

// SetWithTTL stores value under key. A non-positive ttl selects the default,
// so no entry is ever written without expiry.
func SetWithTTL[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) {
	if c == nil || c.store == nil {
		return
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(value)
	if err != nil {
		cacheErrorsTotal.WithLabelValues("encode").Inc()
		log.Printf("[Cache] Error encoding entry %q: %v", key, err)
		return
	}

	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		cacheErrorsTotal.WithLabelValues("set").Inc()
		log.Printf("[Cache] Error setting entry %q: %v", key, err)
	}
}

// LoadFunc fetches a value from the source of truth.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// GetOrLoad implements cache-aside: a hit is returned verbatim, a miss runs
// load and stores its result. Errors from load are returned and nothing is cached.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, load LoadFunc[T]) (T, error) {
	if v, ok := Get[T](ctx, c, key); ok {
		return v, nil
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	Set(ctx, c, key, v)
	return v, nil
}
