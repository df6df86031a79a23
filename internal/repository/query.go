package repository

import (
	"fmt"
	"math"
	"strings"

	"magicgatherer-api/internal/model"
)

// CardQuery is a card listing request: filters, sort token and a zero-based page.
type CardQuery struct {
	Page       int
	Search     string
	EditionID  *int64
	SortBy     string
	FoilFilter string

	// OwnerID restricts the listing to cards the user owns in any condition.
	OwnerID *int64
}

// NewCardQuery converts listing parameters. Absent tokens become empty strings,
// which the builder treats as "no filter" and the default sort.
func NewCardQuery(p model.ListParams) CardQuery {
	q := CardQuery{Page: p.Page, EditionID: p.EditionID}
	if p.Search != nil {
		q.Search = *p.Search
	}
	if p.SortBy != nil {
		q.SortBy = *p.SortBy
	}
	if p.FoilFilter != nil {
		q.FoilFilter = *p.FoilFilter
	}
	return q
}

// Offset returns the row offset of the page. Pages past model.MaxPage
// saturate at math.MaxInt, which is past any total.
func (q CardQuery) Offset() int {
	switch {
	case q.Page < 0:
		return 0
	case q.Page > model.MaxPage:
		return math.MaxInt
	}
	return q.Page * model.PageSize
}

const likeEscape = "!"

// buildCardWhere builds the predicate shared by the count and page queries.
// Filters are applied in a fixed order: owner, search, edition, foil.
func buildCardWhere(q CardQuery) (whereClause string, args []any) {
	var conditions []string

	if q.OwnerID != nil {
		conditions = append(conditions, `c.id IN (
			SELECT cc.card_id FROM card_owned co
			JOIN card_conditions cc ON cc.id = co.card_condition_id
			WHERE co.user_id = ?)`)
		args = append(args, *q.OwnerID)
	}

	if q.Search != "" {
		conditions = append(conditions, "LOWER(c.name) LIKE ? ESCAPE '"+likeEscape+"'")
		args = append(args, "%"+escapeLike(strings.ToLower(q.Search))+"%")
	}

	if q.EditionID != nil {
		conditions = append(conditions, "c.edition_id = ?")
		args = append(args, *q.EditionID)
	}

	switch q.FoilFilter {
	case model.FoilsOnly:
		conditions = append(conditions, "c.is_foil = ?")
		args = append(args, true)
	case model.HideFoils:
		conditions = append(conditions, "c.is_foil = ?")
		args = append(args, false)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// buildCardOrderBy maps a sort token to ORDER BY through a whitelist.
// Unknown or empty tokens sort by id; id is always the final tie-breaker.
func buildCardOrderBy(sortBy string) string {
	var column string
	switch sortBy {
	case model.SortNameAsc:
		column = "c.name ASC"
	case model.SortNameDesc:
		column = "c.name DESC"
	case model.SortPriceAsc:
		column = "c.nm_price ASC"
	case model.SortPriceDesc:
		column = "c.nm_price DESC"
	case model.SortRarityAsc:
		column = rarityRank + " ASC"
	case model.SortRarityDesc:
		column = rarityRank + " DESC"
	default:
		return "ORDER BY c.id ASC"
	}
	return "ORDER BY " + column + ", c.id ASC"
}

// rarityRank orders rarities by model.RarityOrder rather than by name.
var rarityRank = func() string {
	var b strings.Builder
	b.WriteString("CASE c.rarity")
	for i, r := range model.RarityOrder {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", r, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(model.RarityOrder))
	return b.String()
}()

// escapeLike escapes LIKE wildcards so search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_").Replace(s)
}
