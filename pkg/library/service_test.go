package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestService() (*LibraryService, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return NewLibraryService(repo), repo
}

func TestAddTrack(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	params := AddTrackParams{
		Source:      SourceYouTube,
		SourceID:    "abc123",
		Title:       "Song",
		Artist:      strPtr("Band"),
		DurationSec: func() *int { d := 215; return &d }(),
		CoverURL:    strPtr(""),
	}

	first, err := svc.AddTrack(ctx, "user-1", params)
	require.NoError(t, err)
	assert.Equal(t, "user-1", first.UserID)
	assert.True(t, first.Liked)
	assert.Equal(t, 0, first.PlayCount)
	assert.False(t, first.OfflineAvailable)
	assert.Equal(t, "Song", first.Track.Title)
	assert.Equal(t, 215, *first.Track.DurationSec)
	assert.Nil(t, first.Track.CoverURL)
	assert.Nil(t, first.Track.AudioURL)

	t.Run("AddTwiceReturnsExisting", func(t *testing.T) {
		again, err := svc.AddTrack(ctx, "user-1", params)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, first.Track.ID, again.Track.ID)
	})

	t.Run("BackfillsAudioURL", func(t *testing.T) {
		withAudio := params
		withAudio.Title = "Renamed"
		withAudio.AudioURL = strPtr("https://cdn.example/a.m4a")

		ut, err := svc.AddTrack(ctx, "user-1", withAudio)
		require.NoError(t, err)
		require.NotNil(t, ut.Track.AudioURL)
		assert.Equal(t, "https://cdn.example/a.m4a", *ut.Track.AudioURL)
		assert.Equal(t, "Song", ut.Track.Title)

		other := params
		other.AudioURL = strPtr("https://cdn.example/b.m4a")
		ut, err = svc.AddTrack(ctx, "user-2", other)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example/a.m4a", *ut.Track.AudioURL)
		assert.Equal(t, first.Track.ID, ut.Track.ID)
	})
}

func TestListTracks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	empty, err := svc.ListTracks(ctx, "user-1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, id := range []string{"one", "two", "three"} {
		_, err := svc.AddTrack(ctx, "user-1", AddTrackParams{Source: SourceYouTube, SourceID: id, Title: id})
		require.NoError(t, err)
	}
	_, err = svc.AddTrack(ctx, "user-2", AddTrackParams{Source: SourceYouTube, SourceID: "other", Title: "other"})
	require.NoError(t, err)

	tracks, err := svc.ListTracks(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Equal(t, "three", tracks[0].Track.SourceID)
	assert.Equal(t, "two", tracks[1].Track.SourceID)
	assert.Equal(t, "one", tracks[2].Track.SourceID)
}
