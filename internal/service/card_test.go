package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magicgatherer-api/internal/cache"
	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/repository"
	"magicgatherer-api/internal/service"
	"magicgatherer-api/internal/testutils"
)

func strp(s string) *string { return &s }

type cardFixture struct {
	store *repository.SQLStore
	cards *testutils.CountingCards
	kv    *testutils.MockStore
	svc   *service.CardService
}

func newCardFixture(t *testing.T) *cardFixture {
	t.Helper()

	store := testutils.NewStore(t)
	testutils.SeedWorkedExample(t, store)
	cards := &testutils.CountingCards{CardRepository: store}
	kv := testutils.NewMockStore()
	return &cardFixture{
		store: store,
		cards: cards,
		kv:    kv,
		svc:   service.NewCardService(cards, cache.New(kv, 0)),
	}
}

func TestCardService_CacheAside(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)
	params := model.ListParams{Page: 0, SortBy: strp(model.SortPriceDesc)}

	first, err := f.svc.ListCards(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.cards.ListCalls.Load())
	assert.Equal(t, int32(1), f.kv.SetCalls.Load())
	assert.True(t, f.kv.Has(cache.CardListKey(params)))
	assert.Equal(t, cache.DefaultTTL, f.kv.TTL(cache.CardListKey(params)))

	direct, total, err := f.store.ListCards(ctx, repository.NewCardQuery(params))
	require.NoError(t, err)
	assert.Equal(t, total, first.TotalResults)
	require.Len(t, first.Cards, len(direct))
	assert.Equal(t, model.ToCardDTO(direct[0]), first.Cards[0])

	second, err := f.svc.ListCards(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.cards.ListCalls.Load(), "second call must not query the database")
	assert.Equal(t, int32(1), f.kv.SetCalls.Load())
	assert.Equal(t, first, second)
}

func TestCardService_DistinctParamsAreCachedSeparately(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)

	_, err := f.svc.ListCards(ctx, model.ListParams{FoilFilter: strp(model.FoilsOnly)})
	require.NoError(t, err)
	_, err = f.svc.ListCards(ctx, model.ListParams{FoilFilter: strp(model.HideFoils)})
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.cards.ListCalls.Load())
	assert.Len(t, f.kv.Keys(), 2)
}

func TestCardService_WorkedExample(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)

	page, err := f.svc.ListCards(ctx, model.ListParams{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 51, page.TotalResults)
	require.Len(t, page.Cards, 50)
	assert.Equal(t, "Card 1", page.Cards[0].Name)
	assert.Equal(t, "Card 50", page.Cards[49].Name)

	page, err = f.svc.ListCards(ctx, model.ListParams{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Cards, 1)
	assert.Equal(t, "Card 51", page.Cards[0].Name)

	tests := []struct {
		name   string
		params model.ListParams
		check  func(t *testing.T, p model.CardPage)
	}{
		{
			name:   "search",
			params: model.ListParams{Search: strp("Card 1")},
			check:  func(t *testing.T, p model.CardPage) { assert.Equal(t, 11, p.TotalResults) },
		},
		{
			name:   "price desc",
			params: model.ListParams{SortBy: strp(model.SortPriceDesc)},
			check:  func(t *testing.T, p model.CardPage) { assert.Equal(t, 50.0, p.Cards[0].NMPrice) },
		},
		{
			name:   "rarity asc",
			params: model.ListParams{SortBy: strp(model.SortRarityAsc)},
			check:  func(t *testing.T, p model.CardPage) { assert.Equal(t, model.RarityCommon, p.Cards[0].Rarity) },
		},
		{
			name:   "foils only",
			params: model.ListParams{FoilFilter: strp(model.FoilsOnly)},
			check:  func(t *testing.T, p model.CardPage) { assert.Equal(t, 10, p.TotalResults) },
		},
		{
			name:   "hide foils",
			params: model.ListParams{FoilFilter: strp(model.HideFoils)},
			check:  func(t *testing.T, p model.CardPage) { assert.Equal(t, 41, p.TotalResults) },
		},
		{
			name:   "unknown sort falls back to id order",
			params: model.ListParams{SortBy: strp("sideways")},
			check:  func(t *testing.T, p model.CardPage) { assert.Equal(t, "Card 1", p.Cards[0].Name) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.svc.ListCards(ctx, tt.params)
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestCardService_CacheDownFallsBackToDatabase(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)
	f.kv.Fail.Store(true)

	for i := 0; i < 2; i++ {
		page, err := f.svc.ListCards(ctx, model.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 51, page.TotalResults)
	}
	assert.Equal(t, int32(2), f.cards.ListCalls.Load())
}

func TestCardService_DatabaseFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)
	require.NoError(t, f.store.Close())

	_, err := f.svc.ListCards(ctx, model.ListParams{})
	assert.Error(t, err)
	assert.Empty(t, f.kv.Keys())
}

func TestCardService_CachedPageIsServedVerbatim(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)
	params := model.ListParams{Page: 3}

	stale := model.NewCardPage(3, 1, []model.CardDTO{{ID: 999, Name: "Stale"}})
	cache.Set(ctx, cache.New(f.kv, 0), cache.CardListKey(params), stale)

	got, err := f.svc.ListCards(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, stale, got)
	assert.Zero(t, f.cards.ListCalls.Load())
}

func TestCardService_GetCard(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)

	card, err := f.svc.GetCard(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Card 7", card.Name)
	assert.Len(t, card.CardConditions, 4)

	_, err = f.svc.GetCard(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.cards.GetCalls.Load())

	_, err = f.svc.GetCard(ctx, 7000)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.False(t, f.kv.Has(cache.CardKey(7000)), "misses are not cached")
}

func TestCardService_SearchByName(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)

	cards, err := f.svc.SearchByName(ctx, "card 4")
	require.NoError(t, err)
	assert.Len(t, cards, 11)

	_, err = f.svc.SearchByName(ctx, "   ")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.svc.SearchByName(ctx, "Black Lotus")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.False(t, f.kv.Has(cache.CardNameKey("Black Lotus")), "misses are not cached")
}
