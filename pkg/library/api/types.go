package api

import "time"

// AddToLibraryRequest is the body of POST /library/tracks
type AddToLibraryRequest struct {
	Source      string  `json:"source" validate:"required"`
	SourceID    string  `json:"source_id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Artist      *string `json:"artist"`
	DurationSec *int    `json:"duration_sec" validate:"omitempty,gte=0"`
	CoverURL    *string `json:"cover_url"`
	AudioURL    *string `json:"audio_url"`
}

type TrackOut struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	SourceID    string    `json:"source_id"`
	Title       string    `json:"title"`
	Artist      *string   `json:"artist"`
	DurationSec *int      `json:"duration_sec"`
	CoverURL    *string   `json:"cover_url"`
	AudioURL    *string   `json:"audio_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserTrackOut struct {
	ID               string    `json:"id"`
	Track            TrackOut  `json:"track"`
	Liked            bool      `json:"liked"`
	PlayCount        int       `json:"play_count"`
	OfflineAvailable bool      `json:"offline_available"`
	CreatedAt        time.Time `json:"created_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}
