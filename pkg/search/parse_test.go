package search

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResults(t *testing.T) {
	data, err := os.ReadFile("testdata/ytsearch.json")
	require.NoError(t, err)

	results, err := ParseResults(data)
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, SourceYouTube, first.Source)
	assert.Equal(t, "5NV6Rdv1a3I", first.SourceID)
	assert.Equal(t, "Daft Punk - Get Lucky", first.Title)
	require.NotNil(t, first.Artist)
	assert.Equal(t, "Daft Punk", *first.Artist)
	require.NotNil(t, first.DurationSec)
	assert.Equal(t, 369, *first.DurationSec)
	require.NotNil(t, first.CoverURL)
	assert.Equal(t, "https://i.ytimg.com/vi/5NV6Rdv1a3I/hqdefault.jpg", *first.CoverURL)
	assert.Nil(t, first.AudioURL)

	second := results[1]
	assert.Equal(t, "Daft Punk Official", *second.Artist)
	assert.Nil(t, second.DurationSec)
	assert.Equal(t, "https://i.ytimg.com/vi/FGBhQbmPwH8/maxresdefault.jpg", *second.CoverURL)

	t.Run("NoEntries", func(t *testing.T) {
		results, err := ParseResults([]byte(`{"entries": []}`))
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseResults([]byte(`not json`))
		assert.Error(t, err)
	})
}
