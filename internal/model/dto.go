package model

// CardConditionDTO is the public shape of a CardCondition.
type CardConditionDTO struct {
	Condition Condition `json:"condition"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

// CardDTO is the public shape of a Card.
type CardDTO struct {
	ID             int64              `json:"id"`
	EditionName    string             `json:"edition_name"`
	EditionCode    string             `json:"edition_code"`
	Rarity         Rarity             `json:"rarity"`
	Name           string             `json:"name"`
	ImageURL       string             `json:"image_url"`
	CardConditions []CardConditionDTO `json:"card_conditions"`
	IsFoil         bool               `json:"is_foil"`
	NMPrice        float64            `json:"nm_price"`
}

// CardPage is one page of a card listing. CurrentPage is one-based.
type CardPage struct {
	CurrentPage  int       `json:"curr_page"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"results"`
	Cards        []CardDTO `json:"cards"`
}

// NewCardPage builds the page for zero-based page index page.
func NewCardPage(page, count int, cards []CardDTO) CardPage {
	if cards == nil {
		cards = []CardDTO{}
	}
	return CardPage{
		CurrentPage:  page + 1,
		TotalPages:   TotalPages(count),
		TotalResults: count,
		Cards:        cards,
	}
}

// ToCardDTO projects a Card entity.
func ToCardDTO(c Card) CardDTO {
	conds := make([]CardConditionDTO, 0, len(c.Conditions))
	for _, cc := range c.Conditions {
		conds = append(conds, CardConditionDTO{
			Condition: cc.Condition,
			Price:     cc.Price,
			Quantity:  cc.Quantity,
		})
	}
	return CardDTO{
		ID:             c.ID,
		EditionName:    c.EditionName,
		EditionCode:    c.EditionCode,
		Rarity:         c.Rarity,
		Name:           c.Name,
		ImageURL:       c.ImageURL,
		CardConditions: conds,
		IsFoil:         c.IsFoil,
		NMPrice:        c.NMPrice,
	}
}

// EditionDTO is an edition together with its cards.
type EditionDTO struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Code  string    `json:"code"`
	Cards []CardDTO `json:"cards"`
}

// EditionName is an entry of the edition name list.
type EditionName struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// EditionDropdown is an entry of the edition selector.
type EditionDropdown struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// GroupedEditionNames holds the editions whose name starts with Header.
type GroupedEditionNames struct {
	Header   string        `json:"header"`
	Editions []EditionName `json:"editions"`
}

// CardOwnedDTO describes one owned condition of a card.
type CardOwnedDTO struct {
	CardOwnedID  int64     `json:"card_owned_id"`
	CardID       int64     `json:"card_id"`
	CardName     string    `json:"card_name"`
	CardImageURL string    `json:"card_image_url"`
	CardPrice    float64   `json:"card_price"`
	EditionName  string    `json:"edition_name"`
	EditionCode  string    `json:"edition_code"`
	Condition    Condition `json:"condition"`
	Quantity     int       `json:"quantity"`
}

// CollectionDetails summarises a user's collection.
type CollectionDetails struct {
	TotalCardsOwned int     `json:"total_cards_owned"`
	EstimatedValue  float64 `json:"estimated_value"`
}

// CollectionPage is a collection listing page with the collection summary.
type CollectionPage struct {
	TotalCardsOwned int      `json:"total_cards_owned"`
	EstimatedValue  float64  `json:"estimated_value"`
	Page            CardPage `json:"page"`
}

// AddCardRequest adds a card condition to the caller's collection.
type AddCardRequest struct {
	CardID    int64  `json:"card_id"`
	Condition string `json:"condition"`
	Quantity  int    `json:"quantity"`
}

// UpdateCardRequest changes the quantity of an owned row.
type UpdateCardRequest struct {
	Quantity int `json:"quantity"`
}
