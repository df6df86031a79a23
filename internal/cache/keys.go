package cache

import (
	"net/url"
	"strconv"
	"strings"

	"magicgatherer-api/internal/model"
)

// Key layout: fields are joined with keySep, each field is name=value, and
// free-text values are quoted after query-escaping so neither the separator
// nor a literal "none" can be confused with another field or an absent value.
const (
	keySep    = "|"
	noneToken = "none"
)

// UserScope returns the prefix shared by every entry cached for username.
// The trailing separator keeps "bob" from matching "bobby".
func UserScope(username string) string {
	return "user_" + url.QueryEscape(strings.ToLower(username)) + keySep
}

// CardListKey is the key of a global card listing page.
func CardListKey(p model.ListParams) string {
	return listKey("cards", p)
}

// UserCardListKey is the key of a page of username's collection.
func UserCardListKey(username string, p model.ListParams) string {
	return listKey(UserScope(username)+"cards", p)
}

// CardKey is the key of a single card.
func CardKey(id int64) string {
	return "cards" + keySep + "id=" + strconv.FormatInt(id, 10)
}

// CardNameKey is the key of a card name search.
func CardNameKey(name string) string {
	return "cards" + keySep + "name=" + quote(&name)
}

// EditionKey is the key of a single edition with its cards.
func EditionKey(id int64) string {
	return "editions" + keySep + "id=" + strconv.FormatInt(id, 10)
}

// EditionNameKey is the key of an edition looked up by name.
func EditionNameKey(name string) string {
	lower := strings.ToLower(name)
	return "editions" + keySep + "name=" + quote(&lower)
}

// Fixed edition list keys.
const (
	EditionNamesKey    = "editions" + keySep + "names"
	EditionDropdownKey = "editions" + keySep + "dropdown"
	EditionGroupedKey  = "editions" + keySep + "grouped"
)

// UserDetailsKey is the key of username's collection summary.
func UserDetailsKey(username string) string {
	return UserScope(username) + "details"
}

// UserConditionsKey is the key of username's owned conditions of one card.
func UserConditionsKey(username string, cardID int64) string {
	return UserScope(username) + "conditions" + keySep + "card=" + strconv.FormatInt(cardID, 10)
}

func listKey(scope string, p model.ListParams) string {
	var b strings.Builder
	b.WriteString(scope)
	field(&b, "page", strconv.Itoa(p.Page))
	field(&b, "search", quote(p.Search))
	edition := noneToken
	if p.EditionID != nil {
		edition = strconv.FormatInt(*p.EditionID, 10)
	}
	field(&b, "edition", edition)
	field(&b, "sort", quote(p.SortBy))
	field(&b, "foil", quote(p.FoilFilter))
	return b.String()
}

func field(b *strings.Builder, name, value string) {
	b.WriteString(keySep)
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)
}

func quote(s *string) string {
	if s == nil {
		return noneToken
	}
	return "'" + url.QueryEscape(*s) + "'"
}
