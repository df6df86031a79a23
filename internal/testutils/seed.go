package testutils

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/repository"
)

// WorkedExampleCards is the size of the seeded catalog.
const WorkedExampleCards = 51

// NewStore opens a private in-memory SQLite store closed at test end.
func NewStore(t testing.TB) *repository.SQLStore {
	t.Helper()

	store, err := repository.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// WorkedExampleEdition builds 51 cards "Card 1".."Card 51". Card i+1 has
// NM price i, is Mythic_Rare when i is even and Common otherwise, and the
// last 10 cards are foil. Every card has NM, EX, VG and G rows.
func WorkedExampleEdition() model.Edition {
	e := model.Edition{Name: "Alpha", Code: "LEA"}
	for i := 0; i < WorkedExampleCards; i++ {
		rarity := model.RarityCommon
		if i%2 == 0 {
			rarity = model.RarityMythicRare
		}
		price := float64(i)
		e.Cards = append(e.Cards, model.Card{
			Name:     fmt.Sprintf("Card %d", i+1),
			ImageURL: fmt.Sprintf("https://img.example/%d.jpg", i+1),
			Rarity:   rarity,
			IsFoil:   i > 40,
			NMPrice:  price,
			Conditions: []model.CardCondition{
				{Condition: model.ConditionNM, Price: price, Quantity: 4},
				{Condition: model.ConditionEX, Price: price * 0.8, Quantity: 3},
				{Condition: model.ConditionVG, Price: price * 0.5, Quantity: 2},
				{Condition: model.ConditionG, Price: price * 0.25, Quantity: 1},
			},
		})
	}
	return e
}

// SeedWorkedExample imports WorkedExampleEdition and returns its id.
func SeedWorkedExample(t testing.TB, store *repository.SQLStore) int64 {
	t.Helper()

	id, created, err := store.ImportEdition(context.Background(), WorkedExampleEdition())
	require.NoError(t, err)
	require.True(t, created)
	return id
}

// SeedEdition imports an empty edition and returns its id.
func SeedEdition(t testing.TB, store *repository.SQLStore, name, code string) int64 {
	t.Helper()

	id, _, err := store.ImportEdition(context.Background(), model.Edition{Name: name, Code: code})
	require.NoError(t, err)
	return id
}

// SeedUser creates a user with a placeholder password.
func SeedUser(t testing.TB, store *repository.SQLStore, username string) *model.User {
	t.Helper()

	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Salt:         "salt",
	}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}
