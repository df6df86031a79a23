package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/service"
	"magicgatherer-api/pkg/apierror"
	"magicgatherer-api/pkg/response"
)

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(w, apierror.Unauthorized(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		response.Error(w, apierror.NotFound(""))
	case errors.Is(err, service.ErrValidation):
		response.Error(w, apierror.BadRequest(err.Error()))
	default:
		response.Error(w, err)
	}
}

// parseID reads a positive integer URL parameter.
func parseID(r *http.Request, name string) (int64, *apierror.Error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.InvalidParam(name, "must be a positive integer")
	}
	return id, nil
}

// parseListParams reads page, search, editionId, sortBy and foilFilter.
// page is one-based on the wire and defaults to 1; it is returned zero-based.
// Token parameters are passed through verbatim.
func parseListParams(r *http.Request) (model.ListParams, *apierror.Error) {
	q := r.URL.Query()
	var p model.ListParams

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, apierror.InvalidParam("page", "must be an integer of at least 1")
		}
		if page-1 > model.MaxPage {
			return p, apierror.InvalidParam("page", "is too large")
		}
		p.Page = page - 1
	}

	if q.Has("editionId") {
		id, err := strconv.ParseInt(q.Get("editionId"), 10, 64)
		if err != nil {
			return p, apierror.InvalidParam("editionId", "must be an integer")
		}
		p.EditionID = &id
	}

	p.Search = optional(q.Get("search"), q.Has("search"))
	p.SortBy = optional(q.Get("sortBy"), q.Has("sortBy"))
	p.FoilFilter = optional(q.Get("foilFilter"), q.Has("foilFilter"))
	return p, nil
}

func optional(v string, present bool) *string {
	if !present {
		return nil
	}
	return &v
}
