package search

import (
	"fmt"

	"github.com/goccy/go-json"
)

type ytThumbnail struct {
	URL string `json:"url"`
}

type ytEntry struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Uploader   string        `json:"uploader"`
	Channel    string        `json:"channel"`
	Duration   *float64      `json:"duration"`
	Thumbnail  string        `json:"thumbnail"`
	Thumbnails []ytThumbnail `json:"thumbnails"`
}

type ytPlaylist struct {
	Entries []*ytEntry `json:"entries"`
}

// ParseResults converts yt-dlp playlist JSON into track results. Null
// entries and entries without an id are skipped.
func ParseResults(data []byte) ([]TrackResult, error) {
	var playlist ytPlaylist
	if err := json.Unmarshal(data, &playlist); err != nil {
		return nil, fmt.Errorf("failed to decode search output: %w", err)
	}

	results := make([]TrackResult, 0, len(playlist.Entries))
	for _, e := range playlist.Entries {
		if e == nil || e.ID == "" {
			continue
		}
		results = append(results, TrackResult{
			Source:      SourceYouTube,
			SourceID:    e.ID,
			Title:       e.Title,
			Artist:      firstNonEmpty(e.Uploader, e.Channel),
			DurationSec: seconds(e.Duration),
			CoverURL:    e.cover(),
		})
	}
	return results, nil
}

func (e *ytEntry) cover() *string {
	if e.Thumbnail != "" {
		return &e.Thumbnail
	}
	// flat entries list thumbnails smallest first
	for i := len(e.Thumbnails) - 1; i >= 0; i-- {
		if e.Thumbnails[i].URL != "" {
			return &e.Thumbnails[i].URL
		}
	}
	return nil
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v != "" {
			return &v
		}
	}
	return nil
}

func seconds(d *float64) *int {
	if d == nil {
		return nil
	}
	s := int(*d)
	return &s
}
