package search

import "errors"

var (
	// ErrEmptyQuery is returned for blank search queries
	ErrEmptyQuery = errors.New("query is required")

	// ErrUpstream is returned when the video platform search fails or the
	// breaker is open
	ErrUpstream = errors.New("search provider unavailable")
)
