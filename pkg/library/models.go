package library

import (
	"strings"
	"time"
)

// SourceYouTube marks tracks found through the video search.
const SourceYouTube = "YOUTUBE"

// Track is a playable item identified by its origin.
type Track struct {
	ID          string
	Source      string
	SourceID    string
	Title       string
	Artist      *string
	DurationSec *int
	CoverURL    *string
	AudioURL    *string
	CreatedAt   time.Time
}

// UserTrack is a track saved in one user's library.
type UserTrack struct {
	ID               string
	UserID           string
	Track            Track
	Liked            bool
	PlayCount        int
	OfflineAvailable bool
	CreatedAt        time.Time
}

// AddTrackParams describes a track to save. Tracks are matched on
// (Source, SourceID).
type AddTrackParams struct {
	Source      string
	SourceID    string
	Title       string
	Artist      *string
	DurationSec *int
	CoverURL    *string
	AudioURL    *string
}

// nonEmpty maps blank strings to nil.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
