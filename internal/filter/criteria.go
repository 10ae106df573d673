package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxRating is the upper bound of the IMDb rating scale.
const MaxRating = 10.0

// Criteria are the user-selected narrowing filters. Zero values mean the
// criterion is not applied. Every genre adds its own filter, so a title
// must match all of them.
type Criteria struct {
	MinVotes  int64    `json:"minVotes,omitempty"`
	MinRating float64  `json:"minRating,omitempty"`
	Genres    []string `json:"genres,omitempty"`
}

// Validate checks the criteria ranges.
func (c Criteria) Validate() error {
	if c.MinVotes < 0 {
		return fmt.Errorf("minimum votes must not be negative, got %d", c.MinVotes)
	}

	if math.IsNaN(c.MinRating) || c.MinRating < 0 || c.MinRating > MaxRating {
		return fmt.Errorf("minimum rating must be between 0 and %g, got %g", MaxRating, c.MinRating)
	}

	return nil
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.MinVotes == 0 && c.MinRating == 0 && len(c.genres()) == 0
}

// genres returns the non-blank genres, trimmed.
func (c Criteria) genres() []string {
	var out []string

	for _, g := range c.Genres {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}

	return out
}

// Filters returns the filters for the set criteria in the order votes,
// rating, then one filter per genre.
func (c Criteria) Filters() []Filter {
	var filters []Filter

	if c.MinVotes > 0 {
		filters = append(filters, MinVotes(c.MinVotes))
	}

	if c.MinRating > 0 {
		filters = append(filters, MinRating(c.MinRating))
	}

	for _, g := range c.genres() {
		filters = append(filters, Genre(g))
	}

	return filters
}

// String renders the criteria for summaries.
func (c Criteria) String() string {
	if c.IsZero() {
		return "none"
	}

	var parts []string

	if c.MinVotes > 0 {
		parts = append(parts, "votes>="+strconv.FormatInt(c.MinVotes, 10))
	}

	if c.MinRating > 0 {
		parts = append(parts, "rating>="+strconv.FormatFloat(c.MinRating, 'f', -1, 64))
	}

	for _, g := range c.genres() {
		parts = append(parts, "genre="+g)
	}

	return strings.Join(parts, ", ")
}

// ErrInvalidNumber is returned by the parse helpers for malformed input.
var ErrInvalidNumber = errors.New("invalid number")

// ParseMinVotes parses a vote threshold as typed by a user ("5000", "5,000").
func ParseMinVotes(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	clean = strings.ReplaceAll(clean, "_", "")

	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidNumber, s)
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: %q must not be negative", ErrInvalidNumber, s)
	}

	return n, nil
}

// ParseMinRating parses a rating threshold such as "7.5".
func ParseMinRating(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidNumber, s)
	}

	if v < 0 || v > MaxRating {
		return 0, fmt.Errorf("%w: %q must be between 0 and %g", ErrInvalidNumber, s, MaxRating)
	}

	return v, nil
}
