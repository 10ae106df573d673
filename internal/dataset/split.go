package dataset

import "github.com/hupe1980/imdbsieve/internal/frame"

// SplitByType separates f into its movie and tvSeries rows. Rows of any
// other type are left out.
func SplitByType(f *frame.Frame) (movies, tvSeries *frame.Frame) {
	movies = f.Filter(func(r frame.Row) bool { return r.Get(ColTitleType) == TypeMovie })
	tvSeries = f.Filter(func(r frame.Row) bool { return r.Get(ColTitleType) == TypeTVSeries })

	return movies, tvSeries
}
