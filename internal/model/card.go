package model

import "strings"

// Rarity is the printed rarity of a card. It is persisted and cached by name.
type Rarity string

const (
	RarityCommon     Rarity = "Common"
	RarityUncommon   Rarity = "Uncommon"
	RarityRare       Rarity = "Rare"
	RarityMythicRare Rarity = "Mythic_Rare"
)

// RarityOrder lists rarities from lowest to highest. Sorting by rarity uses
// this table, never the string value.
var RarityOrder = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityMythicRare}

// Rank returns the position of r in RarityOrder, or -1 for an unknown rarity.
func (r Rarity) Rank() int {
	for i, v := range RarityOrder {
		if v == r {
			return i
		}
	}
	return -1
}

// ParseRarity maps a token to a Rarity. Matching ignores case and accepts
// "Mythic-Rare" and "Mythic Rare" as spellings of RarityMythicRare.
func ParseRarity(s string) (Rarity, bool) {
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(s))
	for _, r := range RarityOrder {
		if strings.EqualFold(string(r), norm) {
			return r, true
		}
	}
	return "", false
}

// Condition is the grade of a physical card.
type Condition string

const (
	ConditionNM Condition = "NM"
	ConditionEX Condition = "EX"
	ConditionVG Condition = "VG"
	ConditionG  Condition = "G"
)

// ConditionOrder lists grades from best to worst.
var ConditionOrder = []Condition{ConditionNM, ConditionEX, ConditionVG, ConditionG}

// Rank returns the position of c in ConditionOrder, or -1 for an unknown grade.
func (c Condition) Rank() int {
	for i, v := range ConditionOrder {
		if v == c {
			return i
		}
	}
	return -1
}

// ParseCondition maps untrusted input to a Condition. It never panics; an
// unrecognized token yields ok == false.
func ParseCondition(s string) (Condition, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, c := range ConditionOrder {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Card is a single printing of a card within an edition.
type Card struct {
	ID          int64
	Name        string
	ImageURL    string
	EditionID   int64
	EditionName string
	EditionCode string
	Rarity      Rarity
	IsFoil      bool
	NMPrice     float64
	Conditions  []CardCondition
}

// CardCondition is the stock and price of one grade of a card.
type CardCondition struct {
	ID        int64
	CardID    int64
	Condition Condition
	Price     float64
	Quantity  int
}
