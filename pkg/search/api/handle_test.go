package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alchemist-music/alchemist-api/pkg/search"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	out []byte
	err error
}

func (s stubRunner) Run(ctx context.Context, query string, limit int) ([]byte, error) {
	return s.out, s.err
}

func setupTestRouter(runner search.Runner) http.Handler {
	r := chi.NewRouter()
	r.Route("/search", NewHandle(search.NewSearchService(runner)).Routes)
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSearchHandler(t *testing.T) {
	h := setupTestRouter(stubRunner{out: []byte(`{"entries":[{"id":"abc","title":"Song","uploader":"Band","duration":180.5}]}`)})

	rec := get(h, "/search/?q=song")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"source":"YOUTUBE","source_id":"abc","title":"Song","artist":"Band","duration_sec":180,"cover_url":null,"audio_url":null}]`, rec.Body.String())

	t.Run("MissingQuery", func(t *testing.T) {
		rec := get(h, "/search/")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestSearchHandler_Upstream(t *testing.T) {
	h := setupTestRouter(stubRunner{err: errors.New("exit status 1")})

	rec := get(h, "/search/?q=song")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Detail)
}
