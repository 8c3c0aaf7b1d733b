package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alchemist-music/alchemist-api/pkg/client"
	"github.com/alchemist-music/alchemist-api/pkg/logincode"
	"github.com/alchemist-music/alchemist-api/pkg/tokengenerator"
	"github.com/alchemist-music/alchemist-api/pkg/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const (
	invalidCodeMessage = "Invalid or expired code"
	internalMessage    = "Internal server error"
)

// Handle serves the /auth routes
type Handle struct {
	service    *logincode.LoginCodeService
	jwtService *tokengenerator.JwtService
}

// NewHandle creates a new login code API handler
func NewHandle(service *logincode.LoginCodeService, jwtService *tokengenerator.JwtService) *Handle {
	return &Handle{
		service:    service,
		jwtService: jwtService,
	}
}

// Routes mounts the handlers on r. The authenticated middlewares guard /me.
func (h *Handle) Routes(r chi.Router, authenticated ...func(http.Handler) http.Handler) {
	r.Post("/request-code", h.RequestCode)
	r.Post("/verify-code", h.VerifyCode)
	r.With(authenticated...).Get("/me", h.Me)
}

// RequestCode handles POST /auth/request-code
func (h *Handle) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ErrorResponse{Detail: err.Error()})
		return
	}

	result, err := h.service.RequestCode(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, logincode.ErrInvalidEmail) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, ErrorResponse{Detail: err.Error()})
			return
		}
		slog.Error("Failed to issue login code", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Detail: internalMessage})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RequestCodeResponse{
		Detail:    result.Detail,
		DebugCode: result.DebugCode,
	})
}

// VerifyCode handles POST /auth/verify-code
func (h *Handle) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if err := validation.DecodeJSON(r, &req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ErrorResponse{Detail: err.Error()})
		return
	}

	user, err := h.service.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, logincode.ErrInvalidCode) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Detail: invalidCodeMessage})
			return
		}
		slog.Error("Failed to verify login code", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Detail: internalMessage})
		return
	}

	tokens, err := h.jwtService.CreateTokenPair(user.ID)
	if err != nil {
		slog.Error("Failed to create tokens", "user_id", user.ID, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Detail: internalMessage})
		return
	}

	if err := h.jwtService.SetRefreshTokenCookie(w, tokens.RefreshToken, tokens.RefreshTokenExpiry); err != nil {
		slog.Error("Failed to set refresh cookie", "user_id", user.ID, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Detail: internalMessage})
		return
	}

	slog.Info("User signed in", "user_id", user.ID)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, TokenResponse{
		AccessToken: tokens.AccessToken,
		TokenType:   "bearer",
	})
}

// Me handles GET /auth/me
func (h *Handle) Me(w http.ResponseWriter, r *http.Request) {
	authUser, ok := client.AuthUserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Detail: "Not authenticated"})
		return
	}

	user, err := h.service.GetUser(r.Context(), authUser.UserId)
	if err != nil {
		if errors.Is(err, logincode.ErrUserNotFound) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, ErrorResponse{Detail: "User not found"})
			return
		}
		slog.Error("Failed to load current user", "user", authUser, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Detail: internalMessage})
		return
	}

	render.JSON(w, r, MeResponse{ID: user.ID, Email: user.Email})
}
