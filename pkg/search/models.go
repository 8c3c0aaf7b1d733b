package search

// SourceYouTube is the source tag of every search result.
const SourceYouTube = "YOUTUBE"

// TrackResult is one search hit, shaped so it can be posted to the library
// as is.
type TrackResult struct {
	Source      string  `json:"source"`
	SourceID    string  `json:"source_id"`
	Title       string  `json:"title"`
	Artist      *string `json:"artist"`
	DurationSec *int    `json:"duration_sec"`
	CoverURL    *string `json:"cover_url"`
	AudioURL    *string `json:"audio_url"`
}
