// Package restructure builds the per-type title datasets: basics merged
// with ratings and one alias per title, split into movies.tsv and
// tvseries.tsv.
package restructure

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/filter"
	"github.com/hupe1980/imdbsieve/internal/frame"
	"github.com/hupe1980/imdbsieve/internal/logging"
	"github.com/hupe1980/imdbsieve/internal/output"
)

// Output file names inside the restructure directory.
const (
	MoviesFile   = "movies.tsv"
	TVSeriesFile = "tvseries.tsv"
)

// DefaultLanguage is the alias language kept when a title has several.
const DefaultLanguage = "en"

// Options configures a restructure run.
type Options struct {
	// OutputDir receives movies.tsv and tvseries.tsv.
	OutputDir string
	// Language is the preferred alias language. Empty means DefaultLanguage.
	Language string
	// FileOptions are passed to the TSV writers.
	FileOptions []output.FileOption
}

// Result reports what a run produced.
type Result struct {
	Merged       int
	Movies       int
	TVSeries     int
	MoviesPath   string
	TVSeriesPath string
}

// Merge joins titles (basics already merged with ratings) with akas and
// keeps one row per tconst. Rows are ordered so an alias in the preferred
// language wins, then other languages in descending order, then titles
// without a language. Titles with no alias at all are kept.
func Merge(titles, akas *frame.Frame, lang string) *frame.Frame {
	renamed := akas.Rename(dataset.ColTitleID, dataset.ColTconst)
	joined := frame.Join(titles, renamed, dataset.ColTconst, dataset.ColTconst, frame.Left)

	ordered := joined.SortStable(func(a, b frame.Row) bool {
		ra, rb := languageRank(a, lang), languageRank(b, lang)
		if ra != rb {
			return ra < rb
		}

		if ra == rankOther {
			return a.Get(dataset.ColLanguage) > b.Get(dataset.ColLanguage)
		}

		return false
	})

	return ordered.DropDuplicates(dataset.ColTconst)
}

const (
	rankPreferred = iota
	rankOther
	rankNull
)

func languageRank(r frame.Row, lang string) int {
	switch {
	case r.IsNull(dataset.ColLanguage):
		return rankNull
	case r.Get(dataset.ColLanguage) == lang:
		return rankPreferred
	default:
		return rankOther
	}
}

// Run loads the datasets at paths, merges them and writes the movie and
// tvSeries splits as TSV into opts.OutputDir.
func Run(ctx context.Context, paths dataset.Paths, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	lang, err := filter.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}

	cat, err := dataset.Load(ctx, paths)
	if err != nil {
		return nil, err
	}

	merged := Merge(cat.Titles, cat.Akas, lang)
	logger.Info("datasets merged", slog.String("language", lang), logging.Rows(cat.Titles.Len(), merged.Len()))

	movies, series := dataset.SplitByType(merged)

	res := &Result{
		Merged:       merged.Len(),
		Movies:       movies.Len(),
		TVSeries:     series.Len(),
		MoviesPath:   filepath.Join(opts.OutputDir, MoviesFile),
		TVSeriesPath: filepath.Join(opts.OutputDir, TVSeriesFile),
	}

	if err := output.NewDelimitedWriter(output.DialectTSV, res.MoviesPath, opts.FileOptions...).Write(ctx, movies); err != nil {
		return nil, fmt.Errorf("%w: movies: %w", output.ErrWrite, err)
	}

	if err := output.NewDelimitedWriter(output.DialectTSV, res.TVSeriesPath, opts.FileOptions...).Write(ctx, series); err != nil {
		return nil, fmt.Errorf("%w: tv series: %w", output.ErrWrite, err)
	}

	logger.Info("restructured datasets written",
		slog.String("dir", opts.OutputDir),
		slog.Int("movies", res.Movies),
		slog.Int("tvseries", res.TVSeries),
	)

	return res, nil
}
