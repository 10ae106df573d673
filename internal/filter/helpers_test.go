package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/imdbsieve/internal/frame"
)

var titleColumns = []string{
	"tconst", "titleType", "primaryTitle", "originalTitle", "isAdult",
	"startYear", "endYear", "runtimeMinutes", "genres", "averageRating", "numVotes",
}

// sampleTitles is a merged basics+ratings frame covering the edge cases the
// filters care about.
func sampleTitles(t *testing.T) *frame.Frame {
	t.Helper()

	f, err := frame.FromRows(titleColumns, [][]string{
		{"tt0111161", "movie", "The Shawshank Redemption", "The Shawshank Redemption", "0", "1994", `\N`, "142", "Drama", "9.3", "2900000"},
		{"tt0903747", "tvSeries", "Breaking Bad", "Breaking Bad", "0", "2008", "2013", "49", "Crime,Drama,Thriller", "9.5", "2100000"},
		{"tt0050083", "movie", "12 Angry Men", "12 Angry Men", "0", "1957", `\N`, "96", "Crime,Drama", "9.0", "900000"},
		{"tt0000001", "short", "Carmencita", "Carmencita", "0", "1894", `\N`, "1", "Documentary,Short", "5.7", "2100"},
		{"tt1234567", "movie", "Obscure Comedy", "Obscure Comedy", "0", "2015", `\N`, "90", "Comedy", "6.1", "120"},
		{"tt7654321", "movie", "Untitled", "Untitled", "0", `\N`, `\N`, `\N`, `\N`, "7.0", "3000"},
		{"tt0062622", "movie", "2001: A Space Odyssey", "2001: A Space Odyssey", "0", "1968", `\N`, "149", "Adventure,Sci-Fi", "8.3", "750000"},
	})
	require.NoError(t, err)

	return f
}

func sampleAkas(t *testing.T) *frame.Frame {
	t.Helper()

	f, err := frame.FromRows(
		[]string{"titleId", "ordering", "title", "region", "language", "types", "attributes", "isOriginalTitle"},
		[][]string{
			{"tt0111161", "1", "Die Verurteilten", "DE", "de", `\N`, `\N`, "0"},
			{"tt0111161", "2", "The Shawshank Redemption", "US", "en", `\N`, `\N`, "0"},
			{"tt0111161", "3", "Shawshank", "GB", "en", `\N`, `\N`, "0"},
			{"tt0903747", "1", "Breaking Bad", `\N`, `\N`, "original", `\N`, "1"},
			{"tt0903747", "2", "Breaking Bad", "US", "en", `\N`, `\N`, "0"},
			{"tt1234567", "1", "Comédie obscure", "FR", "fr", `\N`, `\N`, "0"},
			{"tt0062622", "1", "2001: A Space Odyssey", "US", "en", `\N`, `\N`, "0"},
		},
	)
	require.NoError(t, err)

	return f
}

func ids(f *frame.Frame) []string {
	out := make([]string, 0, f.Len())
	f.Each(func(r frame.Row) { out = append(out, r.Get("tconst")) })

	return out
}
