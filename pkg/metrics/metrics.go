// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Verification outcomes for LoginCodeVerifications.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

var (
	LoginCodesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alchemist_login_codes_issued_total",
		Help: "One-time login codes persisted.",
	})

	LoginCodeDispatchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alchemist_login_code_dispatch_failures_total",
		Help: "One-time login codes that could not be delivered.",
	})

	LoginCodeVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alchemist_login_code_verifications_total",
		Help: "Login code verification attempts by result.",
	}, []string{"result"})

	UsersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alchemist_users_created_total",
		Help: "Users created on first code request.",
	})

	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alchemist_search_requests_total",
		Help: "Track searches by source of the answer.",
	}, []string{"source"})

	SearchBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "alchemist_search_breaker_state",
		Help: "Search circuit breaker state (0 closed, 1 half-open, 2 open).",
	}, []string{"name"})

	LibraryTracksAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alchemist_library_tracks_added_total",
		Help: "Tracks newly added to a personal library.",
	})
)

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
