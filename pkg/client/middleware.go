package client

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// UserLookup resolves a token subject to a stored user.
type UserLookup func(ctx context.Context, userID string) error

// ErrUnknownUser is returned by a UserLookup for subjects with no user.
var ErrUnknownUser = errors.New("unknown user")

// RequireUser rejects authenticated requests whose subject no longer exists.
// Must be used after AuthUserMiddleware.
func RequireUser(lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authUser, ok := AuthUserFromContext(r.Context())
			if !ok {
				unauthorized(w, r)
				return
			}

			if err := lookup(r.Context(), authUser.UserId); err != nil {
				if errors.Is(err, ErrUnknownUser) {
					slog.Warn("Token subject has no user", "user", authUser)
					unauthorized(w, r)
					return
				}
				slog.Error("Failed to look up token subject", "user", authUser, "err", err)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"detail": "Internal server error"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
