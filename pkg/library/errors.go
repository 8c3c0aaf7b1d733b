package library

import "errors"

var (
	// ErrTrackNotFound is returned when no track matches the lookup
	ErrTrackNotFound = errors.New("track not found")

	// ErrUserTrackNotFound is returned when the user has not saved the track
	ErrUserTrackNotFound = errors.New("track not in library")
)
