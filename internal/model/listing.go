package model

import "math"

// PageSize is the fixed number of cards per listing page.
const PageSize = 50

// MaxPage is the largest zero-based page whose row offset fits in an int.
const MaxPage = math.MaxInt / PageSize

// Foil filter tokens.
const (
	FoilsOnly = "foils_only"
	HideFoils = "hide_foils"
)

// Sort tokens accepted by card listings.
const (
	SortNameAsc    = "name_asc"
	SortNameDesc   = "name_desc"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRarityAsc  = "rarity_asc"
	SortRarityDesc = "rarity_desc"
)

// ListParams are the filter, sort and pagination inputs of a card listing.
// Page is zero-based. Nil pointers mean the parameter was not supplied.
type ListParams struct {
	Page       int
	Search     *string
	EditionID  *int64
	SortBy     *string
	FoilFilter *string
}

// TotalPages returns ceil(count / PageSize).
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}
