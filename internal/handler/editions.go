package handler

import (
	"net/http"

	"magicgatherer-api/internal/service"
	"magicgatherer-api/pkg/response"
)

// EditionHandler serves edition listings.
type EditionHandler struct {
	editions *service.EditionService
}

// NewEditionHandler creates a new edition handler.
func NewEditionHandler(editions *service.EditionService) *EditionHandler {
	return &EditionHandler{editions: editions}
}

// Names handles GET /api/editions/names
func (h *EditionHandler) Names(w http.ResponseWriter, r *http.Request) {
	names, err := h.editions.ListNames(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, names)
}

// Dropdown handles GET /api/editions and GET /api/editions/dropdown
func (h *EditionHandler) Dropdown(w http.ResponseWriter, r *http.Request) {
	items, err := h.editions.ListDropdown(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, items)
}

// Grouped handles GET /api/editions/grouped
func (h *EditionHandler) Grouped(w http.ResponseWriter, r *http.Request) {
	groups, err := h.editions.ListGrouped(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, groups)
}

// Search handles GET /api/editions/search?name=
func (h *EditionHandler) Search(w http.ResponseWriter, r *http.Request) {
	edition, err := h.editions.GetEditionByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, edition)
}

// Get handles GET /api/editions/{id}
func (h *EditionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, apiErr := parseID(r, "id")
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	edition, err := h.editions.GetEdition(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, edition)
}
