package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"magicgatherer-api/internal/model"
)

func sp(s string) *string { return &s }
func ip(i int64) *int64   { return &i }

func TestCardListKey_Deterministic(t *testing.T) {
	p := model.ListParams{Page: 1, Search: sp("goblin"), EditionID: ip(3), SortBy: sp(model.SortPriceDesc), FoilFilter: sp(model.FoilsOnly)}
	q := model.ListParams{Page: 1, Search: sp("goblin"), EditionID: ip(3), SortBy: sp(model.SortPriceDesc), FoilFilter: sp(model.FoilsOnly)}

	assert.Equal(t, CardListKey(p), CardListKey(q))
	assert.Equal(t, "cards|page=1|search='goblin'|edition=3|sort='price_desc'|foil='foils_only'", CardListKey(p))
}

func TestCardListKey_AbsentIsNone(t *testing.T) {
	assert.Equal(t, "cards|page=0|search=none|edition=none|sort=none|foil=none", CardListKey(model.ListParams{}))
}

func TestCardListKey_AnyDifferenceChangesKey(t *testing.T) {
	base := model.ListParams{Page: 0, Search: sp("a"), EditionID: ip(1), SortBy: sp(model.SortNameAsc), FoilFilter: sp(model.HideFoils)}

	variants := map[string]model.ListParams{
		"page":           {Page: 1, Search: base.Search, EditionID: base.EditionID, SortBy: base.SortBy, FoilFilter: base.FoilFilter},
		"search":         {Search: sp("b"), EditionID: base.EditionID, SortBy: base.SortBy, FoilFilter: base.FoilFilter},
		"search absent":  {EditionID: base.EditionID, SortBy: base.SortBy, FoilFilter: base.FoilFilter},
		"edition":        {Search: base.Search, EditionID: ip(2), SortBy: base.SortBy, FoilFilter: base.FoilFilter},
		"edition absent": {Search: base.Search, SortBy: base.SortBy, FoilFilter: base.FoilFilter},
		"sort":           {Search: base.Search, EditionID: base.EditionID, SortBy: sp(model.SortNameDesc), FoilFilter: base.FoilFilter},
		"foil":           {Search: base.Search, EditionID: base.EditionID, SortBy: base.SortBy, FoilFilter: sp(model.FoilsOnly)},
	}

	for name, v := range variants {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, CardListKey(base), CardListKey(v))
		})
	}
}

func TestCardListKey_NoCollisions(t *testing.T) {
	tests := []struct {
		name string
		a, b model.ListParams
	}{
		{
			name: "literal none vs absent",
			a:    model.ListParams{Search: sp("none")},
			b:    model.ListParams{},
		},
		{
			name: "empty vs absent",
			a:    model.ListParams{Search: sp("")},
			b:    model.ListParams{},
		},
		{
			name: "separator smuggled into search",
			a:    model.ListParams{Search: sp("x|edition=1")},
			b:    model.ListParams{Search: sp("x"), EditionID: ip(1)},
		},
		{
			name: "value shifted between fields",
			a:    model.ListParams{Search: sp("name_asc")},
			b:    model.ListParams{SortBy: sp("name_asc")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, CardListKey(tt.a), CardListKey(tt.b))
		})
	}
}

func TestUserCardListKey(t *testing.T) {
	p := model.ListParams{Page: 2}

	assert.Equal(t, UserCardListKey("Alice", p), UserCardListKey("alice", p))
	assert.NotEqual(t, UserCardListKey("alice", p), UserCardListKey("bob", p))
	assert.NotEqual(t, UserCardListKey("alice", p), CardListKey(p))
	assert.True(t, strings.HasPrefix(UserCardListKey("ALICE", p), UserScope("alice")))
}

func TestUserScope_IsolatesSimilarNames(t *testing.T) {
	bob := UserScope("bob")
	assert.Equal(t, "user_bob|", bob)

	for _, key := range []string{
		UserCardListKey("bobby", model.ListParams{}),
		UserDetailsKey("bobby"),
		UserConditionsKey("bob_", 1),
	} {
		assert.False(t, strings.HasPrefix(key, bob), key)
	}

	assert.True(t, strings.HasPrefix(UserDetailsKey("Bob"), bob))
	assert.True(t, strings.HasPrefix(UserConditionsKey("bob", 12), bob))
}

func TestUserScope_EscapesSeparator(t *testing.T) {
	assert.NotEqual(t, UserScope("a|b"), UserScope("a")+"b|")
	assert.False(t, strings.Contains(strings.TrimSuffix(UserScope("a|b"), keySep), keySep))
}

func TestEntityKeys(t *testing.T) {
	assert.Equal(t, "cards|id=12", CardKey(12))
	assert.Equal(t, "editions|id=3", EditionKey(3))
	assert.Equal(t, EditionNameKey("Mirage"), EditionNameKey("mirage"))
	assert.NotEqual(t, CardNameKey("Bolt"), CardNameKey("bolt"))
	assert.Equal(t, "user_alice|conditions|card=9", UserConditionsKey("Alice", 9))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `user_a\*b\?\[c\]\\|`, escapeGlob(`user_a*b?[c]\|`))
	assert.Equal(t, "plain", escapeGlob("plain"))
}
