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

type collectionFixture struct {
	store *repository.SQLStore
	cards *testutils.CountingCards
	kv    *testutils.MockStore
	svc   *service.CollectionService
}

func newCollectionFixture(t *testing.T) *collectionFixture {
	t.Helper()

	store := testutils.NewStore(t)
	testutils.SeedWorkedExample(t, store)
	testutils.SeedUser(t, store, "bob")
	testutils.SeedUser(t, store, "bobby")

	cards := &testutils.CountingCards{CardRepository: store}
	kv := testutils.NewMockStore()
	return &collectionFixture{
		store: store,
		cards: cards,
		kv:    kv,
		svc:   service.NewCollectionService(store, cards, store, cache.New(kv, 0)),
	}
}

func TestCollectionService_AddValidation(t *testing.T) {
	ctx := context.Background()
	f := newCollectionFixture(t)

	_, err := f.svc.AddCard(ctx, "bob", model.AddCardRequest{CardID: 1, Condition: "NM", Quantity: 1})
	require.NoError(t, err)
	f.kv.DeletePrefixCalls.Store(0)

	tests := []struct {
		name    string
		user    string
		req     model.AddCardRequest
		wantErr error
	}{
		{"unknown card", "bob", model.AddCardRequest{CardID: 999, Condition: "NM", Quantity: 1}, service.ErrUnknownCard},
		{"unknown grade token", "bob", model.AddCardRequest{CardID: 1, Condition: "MINT", Quantity: 1}, service.ErrUnknownCondition},
		{"duplicate", "bob", model.AddCardRequest{CardID: 1, Condition: "nm", Quantity: 3}, service.ErrDuplicateOwnership},
		{"zero quantity", "bob", model.AddCardRequest{CardID: 2, Condition: "NM", Quantity: 0}, service.ErrInvalidQuantity},
		{"unknown user", "nobody", model.AddCardRequest{CardID: 2, Condition: "NM", Quantity: 1}, service.ErrUnknownUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddCard(ctx, tt.user, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}

	assert.Zero(t, f.kv.DeletePrefixCalls.Load(), "failed mutations must not invalidate")
}

func TestCollectionService_AddMissingGradeOfExistingCard(t *testing.T) {
	ctx := context.Background()
	f := newCollectionFixture(t)
	_, _, err := f.store.ImportEdition(ctx, model.Edition{
		Name: "Promo", Code: "PRM",
		Cards: []model.Card{{Name: "Only NM", Rarity: model.RarityRare,
			Conditions: []model.CardCondition{{Condition: model.ConditionNM, Price: 3}}}},
	})
	require.NoError(t, err)

	_, err = f.svc.AddCard(ctx, "bob", model.AddCardRequest{CardID: 52, Condition: "G", Quantity: 1})
	assert.ErrorIs(t, err, service.ErrUnknownCondition)
}

func TestCollectionService_MutationsInvalidateUserScope(t *testing.T) {
	ctx := context.Background()
	f := newCollectionFixture(t)
	params := model.ListParams{}

	empty, err := f.svc.ListOwnedCards(ctx, "bob", params)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalResults)
	assert.NotNil(t, empty.Cards)

	_, err = f.svc.ListOwnedCards(ctx, "bobby", params)
	require.NoError(t, err)
	_, err = f.svc.ListOwnedCards(ctx, "BOB", params)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.cards.ListCalls.Load(), "username case does not split the cache")

	row, err := f.svc.AddCard(ctx, "bob", model.AddCardRequest{CardID: 5, Condition: "EX", Quantity: 2})
	require.NoError(t, err)
	assert.NotZero(t, row.ID)
	assert.False(t, f.kv.Has(cache.UserCardListKey("bob", params)))
	assert.True(t, f.kv.Has(cache.UserCardListKey("bobby", params)), "other users keep their cache")

	page, err := f.svc.ListOwnedCards(ctx, "bob", params)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalResults)
	assert.Equal(t, "Card 5", page.Cards[0].Name)

	// a second condition of the same card still lists the card once
	_, err = f.svc.AddCard(ctx, "bob", model.AddCardRequest{CardID: 5, Condition: "G", Quantity: 1})
	require.NoError(t, err)
	page, err = f.svc.ListOwnedCards(ctx, "bob", params)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalResults)

	require.NoError(t, f.svc.UpdateCard(ctx, "bob", row.ID, 7))
	assert.False(t, f.kv.Has(cache.UserCardListKey("bob", params)))

	owned, err := f.svc.OwnedConditions(ctx, "bob", 5)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, model.ConditionEX, owned[0].Condition)
	assert.Equal(t, 7, owned[0].Quantity)

	require.NoError(t, f.svc.DeleteCard(ctx, "bob", row.ID))
	assert.False(t, f.kv.Has(cache.UserConditionsKey("bob", 5)))

	owned, err = f.svc.OwnedConditions(ctx, "bob", 5)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestCollectionService_WrongOwner(t *testing.T) {
	ctx := context.Background()
	f := newCollectionFixture(t)

	row, err := f.svc.AddCard(ctx, "bob", model.AddCardRequest{CardID: 1, Condition: "NM", Quantity: 1})
	require.NoError(t, err)
	f.kv.DeletePrefixCalls.Store(0)

	assert.ErrorIs(t, f.svc.UpdateCard(ctx, "bobby", row.ID, 3), service.ErrNotOwned)
	assert.ErrorIs(t, f.svc.DeleteCard(ctx, "bobby", row.ID), service.ErrNotOwned)
	assert.ErrorIs(t, f.svc.DeleteCard(ctx, "bob", 12345), service.ErrNotOwned)
	assert.ErrorIs(t, f.svc.UpdateCard(ctx, "bob", row.ID, 0), service.ErrInvalidQuantity)
	assert.Zero(t, f.kv.DeletePrefixCalls.Load())
}

func TestCollectionService_InvalidationFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	f := newCollectionFixture(t)
	f.kv.Fail.Store(true)

	row, err := f.svc.AddCard(ctx, "bob", model.AddCardRequest{CardID: 1, Condition: "NM", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.kv.DeletePrefixCalls.Load())

	owns, err := f.store.OwnsCardCondition(ctx, row.UserID, row.CardConditionID)
	require.NoError(t, err)
	assert.True(t, owns)
}

func TestCollectionService_PersistenceFailureIsNotABusinessError(t *testing.T) {
	ctx := context.Background()
	f := newCollectionFixture(t)
	require.NoError(t, f.store.Close())

	_, err := f.svc.AddCard(ctx, "bob", model.AddCardRequest{CardID: 1, Condition: "NM", Quantity: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrValidation)
	assert.NotErrorIs(t, err, service.ErrNotFound)
	assert.Zero(t, f.kv.DeletePrefixCalls.Load())
}

func TestCollectionService_DetailsAndPage(t *testing.T) {
	ctx := context.Background()
	f := newCollectionFixture(t)

	// Card 4 EX is 3*0.8 = 2.4, Card 11 VG is 10*0.5 = 5
	_, err := f.svc.AddCard(ctx, "bob", model.AddCardRequest{CardID: 4, Condition: "EX", Quantity: 3})
	require.NoError(t, err)
	_, err = f.svc.AddCard(ctx, "bob", model.AddCardRequest{CardID: 11, Condition: "VG", Quantity: 1})
	require.NoError(t, err)

	details, err := f.svc.Details(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 4, details.TotalCardsOwned)
	assert.Equal(t, 12.2, details.EstimatedValue)

	page, err := f.svc.CollectionPage(ctx, "Bob", model.ListParams{SortBy: strp(model.SortPriceDesc)})
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalCardsOwned)
	assert.Equal(t, 12.2, page.EstimatedValue)
	assert.Equal(t, 2, page.Page.TotalResults)
	assert.Equal(t, "Card 11", page.Page.Cards[0].Name)

	_, err = f.svc.CollectionPage(ctx, "nobody", model.ListParams{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
