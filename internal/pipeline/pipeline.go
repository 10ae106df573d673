// Package pipeline runs the filter workflow end to end: load the
// datasets, apply the profile and criteria filters, split by title type,
// drop watched titles and write the two exports.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hupe1980/imdbsieve/internal/config"
	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/filter"
	"github.com/hupe1980/imdbsieve/internal/frame"
	"github.com/hupe1980/imdbsieve/internal/logging"
	"github.com/hupe1980/imdbsieve/internal/output"
	"github.com/hupe1980/imdbsieve/internal/watched"
)

// Export base names, without extension.
const (
	MoviesExport   = "filtered_movies"
	TVSeriesExport = "filtered_tvseries"
)

// Options configures a pipeline run.
type Options struct {
	// Paths locates the datasets, watched lists and output directory.
	Paths config.Paths

	// ProfileName is reported in summaries.
	ProfileName string

	// Profile holds the baseline filters.
	Profile filter.ProfileConfig

	// Criteria are the user-selected filters applied after the profile.
	Criteria filter.Criteria

	// Format selects the export writer. Empty means xlsx.
	Format string

	// Registry resolves Format. Nil means output.DefaultRegistry().
	Registry *output.Registry

	// Progress receives one line per pipeline stage. Nil discards them.
	Progress io.Writer
}

// Export describes one written export.
type Export struct {
	Kind     string
	Rows     int
	Excluded int
	Path     string
}

// Result is the outcome of a run.
type Result struct {
	ProfileName string
	Criteria    filter.Criteria
	Steps       []filter.Step
	Movies      Export
	TVSeries    Export
	Elapsed     time.Duration
}

// Run executes the filter workflow.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	if err := opts.Criteria.Validate(); err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = output.FormatXLSX
	}

	reg := opts.Registry
	if reg == nil {
		reg = output.DefaultRegistry(output.WithLogger(logger))
	}

	factory, err := reg.Writer(format)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(progress, "Loading datasets...")

	cat, err := dataset.Load(ctx, dataset.Paths{
		Basics:  opts.Paths.Basics,
		Ratings: opts.Paths.Ratings,
		Akas:    opts.Paths.Akas,
	})
	if err != nil {
		return nil, err
	}

	filters, err := filter.BuildFiltersFromProfile(opts.Profile, cat.Akas)
	if err != nil {
		return nil, err
	}

	chain := filter.NewChain(filters...)
	chain.Append(opts.Criteria.Filters()...)

	for _, name := range chain.Names() {
		fmt.Fprintf(progress, "Filtering: %s...\n", name)
	}

	res, err := chain.Apply(ctx, cat.Titles)
	if err != nil {
		return nil, fmt.Errorf("applying filters: %w", err)
	}

	movies, series := dataset.SplitByType(res.Included)

	result := &Result{
		ProfileName: opts.ProfileName,
		Criteria:    opts.Criteria,
		Steps:       res.Steps,
	}

	fmt.Fprintln(progress, "Excluding watched titles...")

	result.Movies, err = export(ctx, factory, movies, exportTarget{
		kind:    "movies",
		watched: opts.Paths.WatchedMovies,
		path:    filepath.Join(opts.Paths.OutputDir, output.FileName(MoviesExport, format)),
	})
	if err != nil {
		return nil, err
	}

	result.TVSeries, err = export(ctx, factory, series, exportTarget{
		kind:    "tv series",
		watched: opts.Paths.WatchedTVSeries,
		path:    filepath.Join(opts.Paths.OutputDir, output.FileName(TVSeriesExport, format)),
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(progress, "Filtered movies saved to %s\n", result.Movies.Path)
	fmt.Fprintf(progress, "Filtered TV series saved to %s\n", result.TVSeries.Path)

	result.Elapsed = time.Since(start)

	logger.Info("filter run complete",
		slog.String("profile", opts.ProfileName),
		slog.String("criteria", opts.Criteria.String()),
		slog.Int("movies", result.Movies.Rows),
		slog.Int("tvseries", result.TVSeries.Rows),
		slog.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

type exportTarget struct {
	kind    string
	watched string
	path    string
}

func export(ctx context.Context, factory output.WriterFactory, titles *frame.Frame, target exportTarget) (Export, error) {
	kept, excluded, err := watched.Exclude(ctx, titles, target.watched)
	if err != nil {
		return Export{}, err
	}

	if err := factory(target.path).Write(ctx, output.Layout(kept)); err != nil {
		return Export{}, fmt.Errorf("%w: %s: %w", output.ErrWrite, target.kind, err)
	}

	return Export{
		Kind:     target.kind,
		Rows:     kept.Len(),
		Excluded: excluded,
		Path:     target.path,
	}, nil
}
