// Package search finds tracks on the video platform through yt-dlp.
//
// Calls go through a circuit breaker so a broken binary or an upstream
// outage fails fast, and results can be cached in Redis by normalized query.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alchemist-music/alchemist-api/pkg/metrics"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultLimit    = 20
	DefaultTimeout  = 20 * time.Second
	DefaultCacheTTL = time.Hour
)

// BreakerConfig tunes the circuit breaker around the runner.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

var DefaultBreakerConfig = BreakerConfig{
	Name:             "yt-dlp",
	MaxRequests:      1,
	Interval:         time.Minute,
	Timeout:          30 * time.Second,
	FailureThreshold: 5,
}

type SearchService struct {
	runner   Runner
	breaker  *gobreaker.CircuitBreaker[[]TrackResult]
	cache    Cache
	limit    int
	timeout  time.Duration
	cacheTTL time.Duration
}

type SearchServiceOption func(*SearchService)

func WithLimit(limit int) SearchServiceOption {
	return func(s *SearchService) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

func WithTimeout(timeout time.Duration) SearchServiceOption {
	return func(s *SearchService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithCache enables result caching for ttl.
func WithCache(cache Cache, ttl time.Duration) SearchServiceOption {
	return func(s *SearchService) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithBreaker(cfg BreakerConfig) SearchServiceOption {
	return func(s *SearchService) {
		s.breaker = newBreaker(cfg)
	}
}

func NewSearchService(runner Runner, opts ...SearchServiceOption) *SearchService {
	s := &SearchService{
		runner:   runner,
		limit:    DefaultLimit,
		timeout:  DefaultTimeout,
		cacheTTL: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.breaker == nil {
		s.breaker = newBreaker(DefaultBreakerConfig)
	}
	return s
}

func newBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker[[]TrackResult] {
	metrics.SearchBreakerState.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker[[]TrackResult](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Search breaker state changed", "name", name, "from", from.String(), "to", to.String())
			metrics.SearchBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

// Search returns up to the configured number of tracks for q.
func (s *SearchService) Search(ctx context.Context, q string) ([]TrackResult, error) {
	query := strings.TrimSpace(q)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	key := strings.ToLower(query)

	if s.cache != nil {
		results, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("Search cache read failed", "err", err)
		} else if ok {
			metrics.SearchRequests.WithLabelValues("cache").Inc()
			return results, nil
		}
	}

	results, err := s.breaker.Execute(func() ([]TrackResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		out, err := s.runner.Run(runCtx, query, s.limit)
		if err != nil {
			return nil, err
		}
		return ParseResults(out)
	})
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		slog.Error("Search failed", "query", query, "breaker", s.breaker.State().String(), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	metrics.SearchRequests.WithLabelValues("upstream").Inc()

	if len(results) > s.limit {
		results = results[:s.limit]
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, results, s.cacheTTL); err != nil {
			slog.Warn("Search cache write failed", "err", err)
		}
	}
	return results, nil
}
