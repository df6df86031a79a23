package cache_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magicgatherer-api/internal/cache"
)

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, store cache.Store) {
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)

		require.NoError(t, store.Delete(ctx, "k"))
		_, err = store.Get(ctx, "k")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("ttl is required", func(t *testing.T) {
		assert.ErrorIs(t, store.Set(ctx, "k", []byte("v"), 0), cache.ErrNoTTL)
		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("delete prefix", func(t *testing.T) {
		keys := []string{
			"user_bob|cards|page=0",
			"user_bob|cards|page=1",
			"user_bob|details",
			"user_bobby|details",
			"cards|page=0",
		}
		for _, k := range keys {
			require.NoError(t, store.Set(ctx, k, []byte("x"), time.Minute))
		}

		n, err := store.DeletePrefix(ctx, "user_bob|")
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		for _, k := range keys[:3] {
			_, err := store.Get(ctx, k)
			assert.ErrorIs(t, err, cache.ErrCacheMiss, k)
		}
		for _, k := range keys[3:] {
			_, err := store.Get(ctx, k)
			assert.NoError(t, err, k)
		}
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, cache.NewMemoryStore(100, time.Hour))
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore(100, time.Hour)

	require.NoError(t, store.Set(ctx, "short", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestMemoryStore_Bounded(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore(2, time.Hour)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, store.Set(ctx, k, []byte(k), time.Minute))
	}

	assert.Equal(t, 2, store.Len())
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore(10, time.Hour)

	v := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", v, time.Minute))
	v[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func newRedisStore(t *testing.T) (*cache.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := cache.NewRedisStore(cache.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	store, _ := newRedisStore(t)
	storeContract(t, store)
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 30*time.Minute))
	assert.Equal(t, 30*time.Minute, mr.TTL("k"))

	mr.FastForward(31 * time.Minute)
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestRedisStore_DeletePrefixManyKeys(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	for i := 0; i < 1200; i++ {
		require.NoError(t, mr.Set("user_alice|cards|page="+strconv.Itoa(i), "x"))
	}
	require.NoError(t, mr.Set("user_alicia|details", "x"))

	n, err := store.DeletePrefix(ctx, "user_alice|")
	require.NoError(t, err)
	assert.Equal(t, 1200, n)
	assert.True(t, mr.Exists("user_alicia|details"))
}

func TestRedisStore_EmptyPrefixRefused(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set("k", "v"))

	_, err := store.DeletePrefix(context.Background(), "")
	assert.Error(t, err)
	assert.True(t, mr.Exists("k"))
}

func TestRedisStore_Unreachable(t *testing.T) {
	_, err := cache.NewRedisStore(cache.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
