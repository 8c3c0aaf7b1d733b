package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alchemist-music/alchemist-api/pkg/client"
	"github.com/alchemist-music/alchemist-api/pkg/library"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

type failingRepository struct {
	library.Repository
}

func (failingRepository) UpsertTrack(ctx context.Context, id string, params library.AddTrackParams) (*library.Track, error) {
	return nil, errors.New("connection reset")
}

func setupTestRouter() http.Handler {
	return setupTestRouterWithRepo(library.NewInMemoryRepository())
}

func setupTestRouterWithRepo(repo library.Repository) http.Handler {
	r := chi.NewRouter()
	r.Route("/library", func(r chi.Router) {
		NewHandle(library.NewLibraryService(repo)).Routes(r,
			client.Verifier(tokenAuth),
			client.AuthUserMiddleware,
		)
	})
	return r
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	_, token, err := tokenAuth.Encode(map[string]interface{}{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return token
}

func do(t *testing.T, h http.Handler, method, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/library/tracks", bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLibraryTracks(t *testing.T) {
	h := setupTestRouter()
	alice := tokenFor(t, "alice")

	rec := do(t, h, http.MethodGet, alice, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	body := `{"source":"YOUTUBE","source_id":"abc","title":"Song","artist":"Band","duration_sec":200,"cover_url":"https://img/1.jpg"}`
	rec = do(t, h, http.MethodPost, alice, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added UserTrackOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.NotEmpty(t, added.ID)
	assert.NotEmpty(t, added.Track.ID)
	assert.Equal(t, "YOUTUBE", added.Track.Source)
	assert.Equal(t, "abc", added.Track.SourceID)
	assert.Equal(t, "Song", added.Track.Title)
	require.NotNil(t, added.Track.Artist)
	assert.Equal(t, "Band", *added.Track.Artist)
	require.NotNil(t, added.Track.DurationSec)
	assert.Equal(t, 200, *added.Track.DurationSec)
	assert.Nil(t, added.Track.AudioURL)
	assert.True(t, added.Liked)
	assert.Equal(t, 0, added.PlayCount)
	assert.False(t, added.OfflineAvailable)
	assert.False(t, added.CreatedAt.IsZero())

	t.Run("AddAgainReturnsExisting", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, alice, body)
		require.Equal(t, http.StatusCreated, rec.Code)
		var again UserTrackOut
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
		assert.Equal(t, added.ID, again.ID)
	})

	t.Run("List", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, alice, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var tracks []UserTrackOut
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tracks))
		require.Len(t, tracks, 1)
		assert.Equal(t, added.ID, tracks[0].ID)
		assert.Equal(t, "Song", tracks[0].Track.Title)
	})

	t.Run("OtherUserSeesOwnLibrary", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, tokenFor(t, "bob"), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("Validation", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, alice, `{"source":"YOUTUBE"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "", "").Code)
		assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "", body).Code)
	})
}

func TestAddTrack_RepositoryFailure(t *testing.T) {
	h := setupTestRouterWithRepo(failingRepository{})

	rec := do(t, h, http.MethodPost, tokenFor(t, "user-1"), `{"source":"YOUTUBE","source_id":"v1","title":"Song"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
