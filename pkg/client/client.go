package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
)

// AuthUser is the caller identity carried by a verified access token.
type AuthUser struct {
	UserId string `json:"user_id"`
}

func (i AuthUser) LogValue() slog.Value {
	return slog.GroupValue(slog.String("user", i.UserId))
}

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "alchemist context value " + k.name
}

var (
	AuthUserKey = &contextKey{"AuthUser"}
)

// NewAuthUserContext stores user in ctx.
func NewAuthUserContext(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, AuthUserKey, user)
}

// AuthUserFromContext returns the user stored by AuthUserMiddleware.
func AuthUserFromContext(ctx context.Context) (*AuthUser, bool) {
	user, ok := ctx.Value(AuthUserKey).(*AuthUser)
	return user, ok && user != nil
}

// Verifier reads a bearer token from the Authorization header and verifies it.
// The outcome is stored in the request context for AuthUserMiddleware.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader)
}

// AuthUserMiddleware rejects requests without a valid token and puts the
// token subject into the context as an AuthUser.
func AuthUserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			slog.Debug("Rejected request without valid token", "err", err)
			unauthorized(w, r)
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			slog.Warn("Token has no subject")
			unauthorized(w, r)
			return
		}

		authUser := &AuthUser{UserId: sub}
		slog.Debug("authenticated user", "user", authUser)
		next.ServeHTTP(w, r.WithContext(NewAuthUserContext(r.Context(), authUser)))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"detail": "Could not validate credentials"})
}
