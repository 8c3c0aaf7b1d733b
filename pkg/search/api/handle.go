package api

import (
	"errors"
	"net/http"

	"github.com/alchemist-music/alchemist-api/pkg/search"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type Handle struct {
	service *search.SearchService
}

func NewHandle(service *search.SearchService) *Handle {
	return &Handle{service: service}
}

func (h *Handle) Routes(r chi.Router) {
	r.Get("/", h.Search)
}

// Search handles GET /search/?q=
func (h *Handle) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		switch {
		case errors.Is(err, search.ErrEmptyQuery):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, ErrorResponse{Detail: "q is required"})
		case errors.Is(err, search.ErrUpstream):
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, ErrorResponse{Detail: "Search is temporarily unavailable"})
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Detail: "Internal server error"})
		}
		return
	}

	render.JSON(w, r, results)
}
