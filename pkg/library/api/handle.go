package api

import (
	"log/slog"
	"net/http"

	"github.com/alchemist-music/alchemist-api/pkg/client"
	"github.com/alchemist-music/alchemist-api/pkg/library"
	"github.com/alchemist-music/alchemist-api/pkg/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"
)

type Handle struct {
	service *library.LibraryService
}

func NewHandle(service *library.LibraryService) *Handle {
	return &Handle{service: service}
}

// Routes mounts the handlers on r behind the authenticated middlewares.
func (h *Handle) Routes(r chi.Router, authenticated ...func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authenticated...)
		r.Get("/tracks", h.ListTracks)
		r.Post("/tracks", h.AddTrack)
	})
}

// ListTracks handles GET /library/tracks
func (h *Handle) ListTracks(w http.ResponseWriter, r *http.Request) {
	authUser, ok := client.AuthUserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Detail: "Not authenticated"})
		return
	}

	tracks, err := h.service.ListTracks(r.Context(), authUser.UserId)
	if err != nil {
		slog.Error("Failed to list library", "user", authUser, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Detail: "Internal server error"})
		return
	}

	response := make([]UserTrackOut, len(tracks))
	for i := range tracks {
		if err := toUserTrackOut(&response[i], &tracks[i]); err != nil {
			slog.Error("Failed to map library", "err", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Detail: "Internal server error"})
			return
		}
	}
	render.JSON(w, r, response)
}

// AddTrack handles POST /library/tracks
func (h *Handle) AddTrack(w http.ResponseWriter, r *http.Request) {
	authUser, ok := client.AuthUserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Detail: "Not authenticated"})
		return
	}

	var req AddToLibraryRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ErrorResponse{Detail: err.Error()})
		return
	}

	var params library.AddTrackParams
	if err := copier.Copy(&params, &req); err != nil {
		slog.Error("Failed to map add track request", "user_id", authUser.UserId, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Detail: "Internal server error"})
		return
	}

	userTrack, err := h.service.AddTrack(r.Context(), authUser.UserId, params)
	if err != nil {
		slog.Error("Failed to add track to library", "user_id", authUser.UserId, "source", params.Source, "source_id", params.SourceID, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Detail: "Internal server error"})
		return
	}

	var response UserTrackOut
	if err := toUserTrackOut(&response, userTrack); err != nil {
		slog.Error("Failed to map library entry", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Detail: "Internal server error"})
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response)
}

func toUserTrackOut(out *UserTrackOut, ut *library.UserTrack) error {
	if err := copier.Copy(out, ut); err != nil {
		return err
	}
	return copier.Copy(&out.Track, &ut.Track)
}
