package handler

import (
	"net/http"

	"magicgatherer-api/internal/service"
	"magicgatherer-api/pkg/response"
)

// CardHandler serves the public card catalog.
type CardHandler struct {
	cards *service.CardService
}

// NewCardHandler creates a new card handler.
func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// List handles GET /api/cards
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	params, apiErr := parseListParams(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	page, err := h.cards.ListCards(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, page)
}

// Search handles GET /api/cards/search?name=
func (h *CardHandler) Search(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.SearchByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, cards)
}

// Get handles GET /api/cards/{id}
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	card, err := h.cards.GetCard(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, card)
}
