package library

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository keeps tracks and libraries in process memory.
type InMemoryRepository struct {
	mu          sync.Mutex
	tracks      map[string]*Track
	sourceIndex map[[2]string]string
	userTracks  []*UserTrack
	now         func() time.Time
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tracks:      make(map[string]*Track),
		sourceIndex: make(map[[2]string]string),
		now:         time.Now,
	}
}

func (r *InMemoryRepository) UpsertTrack(ctx context.Context, id string, params AddTrackParams) (*Track, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]string{params.Source, params.SourceID}
	if existingID, ok := r.sourceIndex[key]; ok {
		t := r.tracks[existingID]
		if t.AudioURL == nil && params.AudioURL != nil {
			audio := *params.AudioURL
			t.AudioURL = &audio
		}
		out := *t
		return &out, nil
	}

	t := &Track{
		ID:          id,
		Source:      params.Source,
		SourceID:    params.SourceID,
		Title:       params.Title,
		Artist:      params.Artist,
		DurationSec: params.DurationSec,
		CoverURL:    params.CoverURL,
		AudioURL:    params.AudioURL,
		CreatedAt:   r.now().UTC(),
	}
	r.tracks[id] = t
	r.sourceIndex[key] = id
	out := *t
	return &out, nil
}

func (r *InMemoryRepository) AddUserTrack(ctx context.Context, id, userID, trackID string) (*UserTrack, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tracks[trackID]
	if !ok {
		return nil, false, ErrTrackNotFound
	}

	for _, ut := range r.userTracks {
		if ut.UserID == userID && ut.Track.ID == trackID {
			out := *ut
			out.Track = *t
			return &out, false, nil
		}
	}

	ut := &UserTrack{
		ID:        id,
		UserID:    userID,
		Track:     Track{ID: trackID},
		Liked:     true,
		CreatedAt: r.now().UTC(),
	}
	r.userTracks = append(r.userTracks, ut)
	out := *ut
	out.Track = *t
	return &out, true, nil
}

func (r *InMemoryRepository) ListUserTracks(ctx context.Context, userID string) ([]UserTrack, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []UserTrack{}
	for i := len(r.userTracks) - 1; i >= 0; i-- {
		ut := r.userTracks[i]
		if ut.UserID != userID {
			continue
		}
		entry := *ut
		entry.Track = *r.tracks[ut.Track.ID]
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
