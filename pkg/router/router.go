package router

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/alchemist-music/alchemist-api/pkg/client"
	pkgconfig "github.com/alchemist-music/alchemist-api/pkg/config"
	libraryapi "github.com/alchemist-music/alchemist-api/pkg/library/api"
	"github.com/alchemist-music/alchemist-api/pkg/logincode"
	logincodeapi "github.com/alchemist-music/alchemist-api/pkg/logincode/api"
	"github.com/alchemist-music/alchemist-api/pkg/metrics"
	searchapi "github.com/alchemist-music/alchemist-api/pkg/search/api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
)

// Config holds all the dependencies and handlers needed to setup routes
type Config struct {
	LoginCodeHandle *logincodeapi.Handle
	LibraryHandle   *libraryapi.Handle
	SearchHandle    *searchapi.Handle

	// JWT authentication for protected routes
	TokenAuth *jwtauth.JWTAuth

	// UserLookup, when set, rejects tokens whose subject has no user
	UserLookup client.UserLookup
}

// StatusResponse is the body of GET /
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SetupRoutes mounts all API routes on the provided router
func SetupRoutes(router chi.Router, cfg Config) {
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, StatusResponse{Status: "ok", Message: "Alchemist API is alive"})
	})
	router.Handle("/metrics", metrics.Handler())

	authenticated := []func(http.Handler) http.Handler{
		client.Verifier(cfg.TokenAuth),
		client.AuthUserMiddleware,
	}
	if cfg.UserLookup != nil {
		authenticated = append(authenticated, client.RequireUser(cfg.UserLookup))
	}

	if cfg.LoginCodeHandle != nil {
		router.Route("/auth", func(r chi.Router) {
			cfg.LoginCodeHandle.Routes(r, authenticated...)
		})
	}
	if cfg.LibraryHandle != nil {
		router.Route("/library", func(r chi.Router) {
			cfg.LibraryHandle.Routes(r, authenticated...)
		})
	}
	if cfg.SearchHandle != nil {
		router.Route("/search", cfg.SearchHandle.Routes)
	}
}

// CORSOptions builds the cross-origin policy for the browser client. A
// wildcard origin with credentials echoes the request origin, since browsers
// reject "*" on credentialed requests.
func CORSOptions(c pkgconfig.CORSConfig) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   c.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	}
	if c.AllowCredentials && slices.Contains(c.AllowedOrigins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}
	return opts
}

// UserLookup adapts the login code service for client.RequireUser
func UserLookup(service *logincode.LoginCodeService) client.UserLookup {
	return func(ctx context.Context, userID string) error {
		_, err := service.GetUser(ctx, userID)
		if errors.Is(err, logincode.ErrUserNotFound) {
			return client.ErrUnknownUser
		}
		return err
	}
}
