package restructure

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/frame"
	"github.com/hupe1980/imdbsieve/internal/output"
)

const basicsTSV = "tconst\ttitleType\tprimaryTitle\tstartYear\n" +
	"tt1\tmovie\tHeat\t1995\n" +
	"tt2\ttvSeries\tDark\t2017\n" +
	"tt3\tmovie\tAmelie\t2001\n" +
	"tt4\tmovie\tLonely\t1970\n" +
	"tt5\tshort\tClip\t2001\n" +
	"tt6\tmovie\tUnrated\t2001\n"

const ratingsTSV = "tconst\taverageRating\tnumVotes\n" +
	"tt1\t8.3\t700000\n" +
	"tt2\t8.7\t400000\n" +
	"tt3\t8.3\t800000\n" +
	"tt4\t6.0\t10\n" +
	"tt5\t5.0\t3\n"

const akasTSV = "titleId\tordering\ttitle\tregion\tlanguage\n" +
	"tt1\t1\tHeat\t\\N\t\\N\n" +
	"tt1\t2\tHeat (DE)\tDE\tde\n" +
	"tt1\t3\tHeat\tUS\ten\n" +
	"tt2\t1\tDark\tDE\tde\n" +
	"tt2\t2\tDark (JA)\tJP\tja\n" +
	"tt3\t1\tAmelie\t\\N\t\\N\n"

func readTSV(t *testing.T, content string) *frame.Frame {
	t.Helper()

	f, err := dataset.ReadTSV(context.Background(), strings.NewReader(content))
	require.NoError(t, err)

	return f
}

func byID(t *testing.T, f *frame.Frame) map[string]frame.Row {
	t.Helper()

	out := make(map[string]frame.Row, f.Len())
	f.Each(func(r frame.Row) { out[r.Get(dataset.ColTconst)] = r })

	require.Len(t, out, f.Len(), "tconst must be unique")

	return out
}

// ---------------------------------------------------------------------------
// Merge
// ---------------------------------------------------------------------------

func TestMerge_PrefersLanguage(t *testing.T) {
	titles := dataset.Merge(readTSV(t, basicsTSV), readTSV(t, ratingsTSV))

	merged := Merge(titles, readTSV(t, akasTSV), "en")
	rows := byID(t, merged)

	require.Len(t, rows, 5)
	assert.False(t, merged.Has(dataset.ColTitleID))

	// The English alias wins over the German and the untagged ones.
	assert.Equal(t, "US", rows["tt1"].Get(dataset.ColRegion))
	assert.Equal(t, "3", rows["tt1"].Get(dataset.ColOrdering))

	// No English alias: other languages in descending order.
	assert.Equal(t, "ja", rows["tt2"].Get(dataset.ColLanguage))

	// Only an untagged alias.
	assert.Equal(t, "1", rows["tt3"].Get(dataset.ColOrdering))
	assert.True(t, rows["tt3"].IsNull(dataset.ColLanguage))

	// No alias at all: kept with null alias columns.
	assert.True(t, rows["tt4"].IsNull(dataset.ColTitle))

	// Unrated titles are gone.
	_, ok := rows["tt6"]
	assert.False(t, ok)
}

func TestMerge_OtherPreferredLanguage(t *testing.T) {
	titles := dataset.Merge(readTSV(t, basicsTSV), readTSV(t, ratingsTSV))

	rows := byID(t, Merge(titles, readTSV(t, akasTSV), "de"))

	assert.Equal(t, "DE", rows["tt1"].Get(dataset.ColRegion))
	assert.Equal(t, "de", rows["tt2"].Get(dataset.ColLanguage))
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

func writeDatasets(t *testing.T) dataset.Paths {
	t.Helper()

	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

		return p
	}

	return dataset.Paths{
		Basics:  write("title.basics.tsv", basicsTSV),
		Ratings: write("title.ratings.tsv", ratingsTSV),
		Akas:    write("title.akas.tsv", akasTSV),
	}
}

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "restructured_datasets")

	res, err := Run(context.Background(), writeDatasets(t), Options{OutputDir: out})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Merged)
	assert.Equal(t, 3, res.Movies)
	assert.Equal(t, 1, res.TVSeries)
	assert.Equal(t, filepath.Join(out, MoviesFile), res.MoviesPath)
	assert.Equal(t, filepath.Join(out, TVSeriesFile), res.TVSeriesPath)

	movies, err := dataset.ReadFile(context.Background(), res.MoviesPath)
	require.NoError(t, err)
	assert.Equal(t, 3, movies.Len())

	for _, id := range []string{"tt1", "tt3", "tt4"} {
		_, ok := byID(t, movies)[id]
		assert.True(t, ok, id)
	}

	series, err := dataset.ReadFile(context.Background(), res.TVSeriesPath)
	require.NoError(t, err)
	require.Equal(t, 1, series.Len())
	assert.Equal(t, "Dark (JA)", series.Row(0).Get(dataset.ColTitle))

	// Raw TSV keeps the null marker.
	raw, err := os.ReadFile(res.MoviesPath) //nolint:gosec // test
	require.NoError(t, err)
	assert.Contains(t, string(raw), `\N`)
}

func TestRun_InvalidLanguage(t *testing.T) {
	_, err := Run(context.Background(), writeDatasets(t), Options{OutputDir: t.TempDir(), Language: "english"})
	assert.ErrorContains(t, err, "invalid language")
}

func TestRun_MissingDataset(t *testing.T) {
	p := writeDatasets(t)
	p.Ratings = filepath.Join(t.TempDir(), "nope.tsv")

	_, err := Run(context.Background(), p, Options{OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, dataset.ErrLoad)
}

func TestRun_WriteFailure(t *testing.T) {
	_, err := Run(context.Background(), writeDatasets(t), Options{OutputDir: "/dev/null/impossible"})
	assert.ErrorIs(t, err, output.ErrWrite)
}
