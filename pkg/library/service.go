// Package library manages each user's saved tracks.
package library

import (
	"context"
	"log/slog"

	"github.com/alchemist-music/alchemist-api/pkg/metrics"
	"github.com/google/uuid"
)

type LibraryService struct {
	repo Repository
}

func NewLibraryService(repo Repository) *LibraryService {
	return &LibraryService{repo: repo}
}

// ListTracks returns the user's saved tracks, newest first.
func (s *LibraryService) ListTracks(ctx context.Context, userID string) ([]UserTrack, error) {
	return s.repo.ListUserTracks(ctx, userID)
}

// AddTrack saves a track for the user. Adding a track twice returns the
// existing entry.
func (s *LibraryService) AddTrack(ctx context.Context, userID string, params AddTrackParams) (*UserTrack, error) {
	params.Artist = nonEmpty(params.Artist)
	params.CoverURL = nonEmpty(params.CoverURL)
	params.AudioURL = nonEmpty(params.AudioURL)

	track, err := s.repo.UpsertTrack(ctx, uuid.New().String(), params)
	if err != nil {
		slog.Error("Failed to save track", "source", params.Source, "source_id", params.SourceID, "err", err)
		return nil, err
	}

	userTrack, created, err := s.repo.AddUserTrack(ctx, uuid.New().String(), userID, track.ID)
	if err != nil {
		slog.Error("Failed to add track to library", "user_id", userID, "track_id", track.ID, "err", err)
		return nil, err
	}
	if created {
		metrics.LibraryTracksAdded.Inc()
		slog.Info("Track added to library", "user_id", userID, "track_id", track.ID)
	}
	return userTrack, nil
}
