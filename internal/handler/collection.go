package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"magicgatherer-api/internal/middleware"
	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/service"
	"magicgatherer-api/pkg/apierror"
	"magicgatherer-api/pkg/response"
)

// CollectionHandler serves collection listings and ownership mutations.
// Listings are public; mutations act on the authenticated user.
type CollectionHandler struct {
	collection *service.CollectionService
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(collection *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collection: collection}
}

// Page handles GET /api/user/cards/{username}
func (h *CollectionHandler) Page(w http.ResponseWriter, r *http.Request) {
	params, apiErr := parseListParams(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	page, err := h.collection.CollectionPage(r.Context(), chi.URLParam(r, "username"), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, page)
}

// Details handles GET /api/user/cards/{username}/details
func (h *CollectionHandler) Details(w http.ResponseWriter, r *http.Request) {
	details, err := h.collection.Details(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, details)
}

// Conditions handles GET /api/user/cards/conditions/{cardId}
func (h *CollectionHandler) Conditions(w http.ResponseWriter, r *http.Request) {
	cardID, apiErr := parseID(r, "cardId")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	owned, err := h.collection.OwnedConditions(r.Context(), middleware.GetUsername(r.Context()), cardID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, owned)
}

// AddCardResponse is returned after a card is added to a collection.
type AddCardResponse struct {
	CardOwnedID int64 `json:"card_owned_id"`
	Quantity    int   `json:"quantity"`
}

// Add handles POST /api/user/cards
func (h *CollectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.AddCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	owned, err := h.collection.AddCard(r.Context(), middleware.GetUsername(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, AddCardResponse{CardOwnedID: owned.ID, Quantity: owned.Quantity})
}

// Update handles PUT /api/user/cards/{id}
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	var req model.UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if err := h.collection.UpdateCard(r.Context(), middleware.GetUsername(r.Context()), id, req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Message(w, "card updated")
}

// Delete handles DELETE /api/user/cards/{id}
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if err := h.collection.DeleteCard(r.Context(), middleware.GetUsername(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}
	response.NoContent(w)
}
