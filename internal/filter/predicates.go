package filter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/frame"
)

// Predicate is a row-wise filter keeping rows for which Keep returns true.
type Predicate struct {
	name string
	keep func(frame.Row) bool
}

// NewPredicate wraps keep as a named Filter.
func NewPredicate(name string, keep func(frame.Row) bool) *Predicate {
	return &Predicate{name: name, keep: keep}
}

// Name returns the predicate description.
func (p *Predicate) Name() string {
	return p.name
}

// Apply keeps the rows matching the predicate.
func (p *Predicate) Apply(_ context.Context, titles *frame.Frame) (*frame.Frame, error) {
	return titles.Filter(p.keep), nil
}

// TitleType keeps titles whose titleType is one of types.
func TitleType(types ...string) *Predicate {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}

	return NewPredicate(
		fmt.Sprintf("title type in [%s]", strings.Join(types, ", ")),
		func(r frame.Row) bool { return allowed[r.Get(dataset.ColTitleType)] },
	)
}

// MinYear keeps titles released in year or later. Titles without a
// numeric startYear are dropped.
func MinYear(year int64) *Predicate {
	return NewPredicate(
		fmt.Sprintf("start year >= %d", year),
		func(r frame.Row) bool {
			y, ok := r.Int(dataset.ColStartYear)
			return ok && y >= year
		},
	)
}

// MinVotes keeps titles with at least n votes.
func MinVotes(n int64) *Predicate {
	return NewPredicate(
		fmt.Sprintf("votes >= %d", n),
		func(r frame.Row) bool {
			v, ok := r.Int(dataset.ColNumVotes)
			return ok && v >= n
		},
	)
}

// MinRating keeps titles whose average rating is at least rating.
func MinRating(rating float64) *Predicate {
	return NewPredicate(
		"rating >= "+strconv.FormatFloat(rating, 'f', -1, 64),
		func(r frame.Row) bool {
			v, ok := r.Float(dataset.ColAverageRating)
			return ok && v >= rating
		},
	)
}

// Genre keeps titles whose genre list contains genre. Matching is a
// case-insensitive substring match over the raw comma-separated list, so
// "Sci" matches "Sci-Fi". Titles without genres are dropped.
func Genre(genre string) *Predicate {
	needle := strings.ToLower(strings.TrimSpace(genre))

	return NewPredicate(
		fmt.Sprintf("genre contains %q", genre),
		func(r frame.Row) bool {
			if r.IsNull(dataset.ColGenres) {
				return false
			}

			return strings.Contains(strings.ToLower(r.Get(dataset.ColGenres)), needle)
		},
	)
}

// ExcludeTitles drops titles whose primaryTitle is in titles.
func ExcludeTitles(titles map[string]struct{}) *Predicate {
	return NewPredicate(
		fmt.Sprintf("exclude %d watched titles", len(titles)),
		func(r frame.Row) bool {
			_, watched := titles[r.Get(dataset.ColPrimaryTitle)]
			return !watched
		},
	)
}
