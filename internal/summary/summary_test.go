package summary

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/imdbsieve/internal/filter"
)

func TestTable(t *testing.T) {
	out := Table([]string{"Name", "Count"}, [][]string{{"movies", "12"}, {"short"}}, []Align{AlignLeft, AlignRight}, false)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "movies")
	assert.Contains(t, out, "short")
	assert.Contains(t, out, "╭")
}

func TestTable_NoHeaders(t *testing.T) {
	assert.Empty(t, Table(nil, [][]string{{"x"}}, nil, false))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "1,234,567", Count(1234567))
}

func TestShouldColorize_NonFile(t *testing.T) {
	assert.False(t, ShouldColorize(&bytes.Buffer{}))
}

func TestReport_Render(t *testing.T) {
	r := Report{
		Profile:  "default",
		Criteria: filter.Criteria{MinVotes: 5000},
		Steps: []filter.Step{
			{Name: "title type in [movie, tvSeries]", In: 12000, Out: 9000},
			{Name: "votes >= 5000", In: 9000, Out: 1500},
		},
		Exports: []Export{
			{Kind: "movies", Rows: 1200, Excluded: 3, Path: "outputs/filtered_movies.xlsx"},
		},
	}

	out := r.Render(false)

	assert.True(t, strings.HasPrefix(out, "Profile: default\nCriteria: votes>=5000\n"))
	assert.Contains(t, out, "title type in [movie, tvSeries]")
	assert.Contains(t, out, "12,000")
	assert.Contains(t, out, "7,500")
	assert.Contains(t, out, "outputs/filtered_movies.xlsx")
}
