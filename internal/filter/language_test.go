package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/frame"
)

func TestLanguageFilter_JoinsAndDeduplicates(t *testing.T) {
	lf, err := NewLanguageFilter(sampleAkas(t), "en")
	require.NoError(t, err)
	assert.Equal(t, "language = en", lf.Name())

	got, err := lf.Apply(context.Background(), sampleTitles(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"tt0111161", "tt0903747", "tt0062622"}, ids(got))

	// Aka columns are carried and the first English aka wins.
	assert.True(t, got.Has(dataset.ColTitleID))
	assert.True(t, got.Has(dataset.ColRegion))
	assert.Equal(t, "US", got.Row(0).Get(dataset.ColRegion))
	assert.Equal(t, "2", got.Row(0).Get(dataset.ColOrdering))
}

func TestLanguageFilter_NoMatches(t *testing.T) {
	lf, err := NewLanguageFilter(sampleAkas(t), "ja")
	require.NoError(t, err)

	got, err := lf.Apply(context.Background(), sampleTitles(t))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestLanguageFilter_MissingAkaColumns(t *testing.T) {
	lf, err := NewLanguageFilter(frame.New([]string{"titleId"}), "en")
	require.NoError(t, err)

	_, err = lf.Apply(context.Background(), sampleTitles(t))
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestParseLanguage(t *testing.T) {
	for _, in := range []string{"en", "EN", " fr ", "ja"} {
		_, err := ParseLanguage(in)
		assert.NoError(t, err, in)
	}

	got, err := ParseLanguage("EN")
	require.NoError(t, err)
	assert.Equal(t, "en", got)

	for _, in := range []string{"", "english!", "en-US", "123"} {
		_, err := ParseLanguage(in)
		assert.Error(t, err, in)
	}
}
