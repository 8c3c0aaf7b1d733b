package library

import "context"

// Repository persists tracks and personal libraries.
type Repository interface {
	// UpsertTrack returns the track with the same (source, source_id),
	// creating it if needed. An existing track without an audio URL takes
	// the one from params.
	UpsertTrack(ctx context.Context, id string, params AddTrackParams) (*Track, error)

	// AddUserTrack saves the track for the user. created is false when the
	// user already had it, in which case the existing entry is returned.
	AddUserTrack(ctx context.Context, id, userID, trackID string) (userTrack *UserTrack, created bool, err error)

	// ListUserTracks returns the user's library, newest first.
	ListUserTracks(ctx context.Context, userID string) ([]UserTrack, error)
}
