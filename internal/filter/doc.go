// Package filter implements the row filters applied to the title catalog:
// title type, release year, language availability, vote count, rating,
// genre, and exclusion of already watched titles.
//
// The package is built around the [Filter] interface and [Chain] type, which
// allow composable, ordered filter application. Named [ProfileConfig] presets
// describe the baseline filters applied before any user-selected criteria.
package filter
