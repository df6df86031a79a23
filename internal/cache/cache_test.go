package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magicgatherer-api/internal/cache"
	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/testutils"
)

func samplePage() model.CardPage {
	return model.NewCardPage(0, 51, []model.CardDTO{{
		ID:          1,
		Name:        "Card 1",
		EditionName: "Alpha",
		EditionCode: "LEA",
		Rarity:      model.RarityMythicRare,
		CardConditions: []model.CardConditionDTO{
			{Condition: model.ConditionNM, Price: 1.5, Quantity: 2},
		},
	}})
}

func TestCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMockStore()
	c := cache.New(store, 0)

	cache.Set(ctx, c, "k", samplePage())

	got, ok := cache.Get[model.CardPage](ctx, c, "k")
	require.True(t, ok)
	assert.Equal(t, samplePage(), got)
	assert.Equal(t, cache.DefaultTTL, store.TTL("k"))
}

func TestCache_ExplicitTTL(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMockStore()
	c := cache.New(store, time.Hour)

	cache.SetWithTTL(ctx, c, "short", 1, time.Second)
	cache.SetWithTTL(ctx, c, "zero", 1, 0)

	assert.Equal(t, time.Second, store.TTL("short"))
	assert.Equal(t, time.Hour, store.TTL("zero"))
}

func TestCache_StoreFailureIsAMiss(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMockStore()
	c := cache.New(store, 0)
	cache.Set(ctx, c, "k", "v")

	store.Fail.Store(true)

	_, ok := cache.Get[string](ctx, c, "k")
	assert.False(t, ok)

	assert.NotPanics(t, func() { cache.Set(ctx, c, "k2", "v") })
	assert.Error(t, c.Clear(ctx, "k"))
}

func TestCache_MalformedEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMockStore()
	c := cache.New(store, 0)
	require.NoError(t, store.Set(ctx, "k", []byte("{not json"), time.Minute))

	_, ok := cache.Get[model.CardPage](ctx, c, "k")
	assert.False(t, ok)
}

func TestCache_NilIsAlwaysAMiss(t *testing.T) {
	ctx := context.Background()
	var c *cache.Cache

	cache.Set(ctx, c, "k", 1)
	_, ok := cache.Get[int](ctx, c, "k")
	assert.False(t, ok)
	assert.NoError(t, c.Clear(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMockStore()
	c := cache.New(store, 0)

	loads := 0
	load := func(ctx context.Context) (model.CardPage, error) {
		loads++
		return samplePage(), nil
	}

	first, err := cache.GetOrLoad(ctx, c, "page", load)
	require.NoError(t, err)
	second, err := cache.GetOrLoad(ctx, c, "page", load)
	require.NoError(t, err)

	assert.Equal(t, 1, loads)
	assert.Equal(t, int32(1), store.SetCalls.Load())
	assert.Equal(t, first, second)
}

func TestGetOrLoad_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMockStore()
	c := cache.New(store, 0)
	boom := errors.New("db down")

	_, err := cache.GetOrLoad(ctx, c, "k", func(ctx context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.SetCalls.Load())
}

func TestGetOrLoad_StoreDown(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMockStore()
	store.Fail.Store(true)
	c := cache.New(store, 0)

	loads := 0
	for i := 0; i < 2; i++ {
		v, err := cache.GetOrLoad(ctx, c, "k", func(ctx context.Context) (int, error) {
			loads++
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 2, loads)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore(100, time.Hour)
	c := cache.New(store, 0)

	cache.Set(ctx, c, cache.UserCardListKey("alice", model.ListParams{}), samplePage())
	cache.Set(ctx, c, cache.UserDetailsKey("alice"), model.CollectionDetails{TotalCardsOwned: 1})
	cache.Set(ctx, c, cache.UserDetailsKey("alicia"), model.CollectionDetails{})
	cache.Set(ctx, c, cache.CardListKey(model.ListParams{}), samplePage())

	require.NoError(t, c.Clear(ctx, cache.UserScope("ALICE")))
	assert.Equal(t, 2, store.Len())

	_, ok := cache.Get[model.CollectionDetails](ctx, c, cache.UserDetailsKey("alice"))
	assert.False(t, ok)
	_, ok = cache.Get[model.CardPage](ctx, c, cache.CardListKey(model.ListParams{}))
	assert.True(t, ok)
}
