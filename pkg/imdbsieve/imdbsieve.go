// Package imdbsieve provides a public Go API for filtering the IMDb title
// datasets into movie and TV series exports.
//
// This package exposes the filter and restructure workflows as a library,
// allowing programmatic use without the CLI.
//
// Basic usage:
//
//	result, err := imdbsieve.Filter(ctx, "path/to/project")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Movies.Path, result.Movies.Rows)
//
// With options:
//
//	result, err := imdbsieve.Filter(ctx, "path/to/project",
//	    imdbsieve.WithMinVotes(50000),
//	    imdbsieve.WithMinRating(8),
//	    imdbsieve.WithGenre("crime"),
//	    imdbsieve.WithFormat("csv"),
//	)
package imdbsieve

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/hupe1980/imdbsieve/internal/config"
	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/filter"
	"github.com/hupe1980/imdbsieve/internal/logging"
	"github.com/hupe1980/imdbsieve/internal/output"
	"github.com/hupe1980/imdbsieve/internal/pipeline"
	"github.com/hupe1980/imdbsieve/internal/restructure"
)

// Sentinel errors callers can match with errors.Is.
var (
	// ErrLoad reports that a dataset file could not be read or lacks a
	// required column.
	ErrLoad = dataset.ErrLoad
	// ErrWrite reports that an export could not be written.
	ErrWrite = output.ErrWrite
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Option configures a Filter or Restructure call.
// Use the With* functions to create Options.
type Option func(*options)

type options struct {
	// Locations.
	user        string
	datasetsDir string
	outputDir   string
	userDir     string

	// Filtering.
	profile      string
	profilesFile string
	criteria     filter.Criteria

	// Output.
	format   string
	language string

	logger   *slog.Logger
	progress io.Writer
}

// --- Locations ---

// WithUser selects whose watched lists are applied.
func WithUser(name string) Option { return func(o *options) { o.user = name } }

// WithDatasetsDir overrides <dataDir>/datasets.
func WithDatasetsDir(dir string) Option { return func(o *options) { o.datasetsDir = dir } }

// WithOutputDir overrides <dataDir>/outputs.
func WithOutputDir(dir string) Option { return func(o *options) { o.outputDir = dir } }

// WithUserDir overrides <dataDir>/usrdata/<user>.
func WithUserDir(dir string) Option { return func(o *options) { o.userDir = dir } }

// --- Filtering ---

// WithProfile selects the baseline profile. Defaults to "default".
func WithProfile(name string) Option { return func(o *options) { o.profile = name } }

// WithProfilesFile loads custom profiles from a YAML file with a
// top-level "profiles" key.
func WithProfilesFile(path string) Option { return func(o *options) { o.profilesFile = path } }

// WithMinVotes keeps titles with at least n votes.
func WithMinVotes(n int64) Option { return func(o *options) { o.criteria.MinVotes = n } }

// WithMinRating keeps titles rated at least r.
func WithMinRating(r float64) Option { return func(o *options) { o.criteria.MinRating = r } }

// WithGenre keeps titles whose genres contain g, case-insensitively.
// Repeated options each add a genre the titles must match.
func WithGenre(g string) Option {
	return func(o *options) { o.criteria.Genres = append(o.criteria.Genres, g) }
}

// --- Output ---

// WithFormat selects the export format: xlsx (default), csv, tsv or sqlite.
func WithFormat(format string) Option { return func(o *options) { o.format = format } }

// WithLanguage sets the preferred alias language for Restructure.
func WithLanguage(lang string) Option { return func(o *options) { o.language = lang } }

// WithLogger routes structured logs to logger. Logs are discarded by default.
func WithLogger(logger *slog.Logger) Option { return func(o *options) { o.logger = logger } }

// WithProgress receives the one-line progress messages of a run.
func WithProgress(w io.Writer) Option { return func(o *options) { o.progress = w } }

// Step is one applied filter with its row counts.
type Step struct {
	Name string
	In   int
	Out  int
}

// Export describes one written export file.
type Export struct {
	Rows     int
	Excluded int
	Path     string
}

// Result is the outcome of Filter.
type Result struct {
	Profile  string
	Criteria string
	Steps    []Step
	Movies   Export
	TVSeries Export
}

// RestructureResult is the outcome of Restructure.
type RestructureResult struct {
	Merged       int
	Movies       int
	TVSeries     int
	MoviesPath   string
	TVSeriesPath string
}

// Filter loads the datasets under dataDir, applies the profile and
// criteria, removes watched titles and writes the movie and TV series
// exports.
func Filter(ctx context.Context, dataDir string, opts ...Option) (*Result, error) {
	o, cfg, err := resolve(dataDir, opts)
	if err != nil {
		return nil, err
	}

	var custom map[string]filter.ProfileConfig

	if o.profilesFile != "" {
		custom, err = filter.LoadCustomProfiles(o.profilesFile)
		if err != nil {
			return nil, err
		}
	}

	profile, err := filter.ResolveProfile(o.profile, custom)
	if err != nil {
		return nil, err
	}

	ctx = logging.NewContext(ctx, o.logger)

	res, err := pipeline.Run(ctx, pipeline.Options{
		Paths:       cfg.Paths(),
		ProfileName: o.profile,
		Profile:     profile,
		Criteria:    o.criteria,
		Format:      o.format,
		Registry:    output.DefaultRegistry(output.WithLogger(o.logger)),
		Progress:    o.progress,
	})
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(res.Steps))
	for _, s := range res.Steps {
		steps = append(steps, Step{Name: s.Name, In: s.In, Out: s.Out})
	}

	return &Result{
		Profile:  res.ProfileName,
		Criteria: res.Criteria.String(),
		Steps:    steps,
		Movies:   Export{Rows: res.Movies.Rows, Excluded: res.Movies.Excluded, Path: res.Movies.Path},
		TVSeries: Export{Rows: res.TVSeries.Rows, Excluded: res.TVSeries.Excluded, Path: res.TVSeries.Path},
	}, nil
}

// Restructure merges the datasets under dataDir into one row per title and
// writes movies.tsv and tvseries.tsv to datasets/restructured_datasets.
func Restructure(ctx context.Context, dataDir string, opts ...Option) (*RestructureResult, error) {
	o, cfg, err := resolve(dataDir, opts)
	if err != nil {
		return nil, err
	}

	p := cfg.Paths()
	ctx = logging.NewContext(ctx, o.logger)

	res, err := restructure.Run(ctx, dataset.Paths{
		Basics:  p.Basics,
		Ratings: p.Ratings,
		Akas:    p.Akas,
	}, restructure.Options{
		OutputDir:   p.RestructuredDir,
		Language:    o.language,
		FileOptions: []output.FileOption{output.WithLogger(o.logger)},
	})
	if err != nil {
		return nil, err
	}

	return &RestructureResult{
		Merged:       res.Merged,
		Movies:       res.Movies,
		TVSeries:     res.TVSeries,
		MoviesPath:   res.MoviesPath,
		TVSeriesPath: res.TVSeriesPath,
	}, nil
}

func resolve(dataDir string, opts []Option) (*options, *config.Config, error) {
	if dataDir == "" {
		return nil, nil, errors.New("data directory must not be empty")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	o.applyDefaults()

	cfg := config.Default()
	cfg.DataDir = dataDir
	cfg.User = o.user
	cfg.DatasetsDir = o.datasetsDir
	cfg.OutputDir = o.outputDir
	cfg.UserDir = o.userDir

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return o, cfg, nil
}

func (o *options) applyDefaults() {
	if o.user == "" {
		o.user = config.DefaultUser
	}

	if o.profile == "" {
		o.profile = filter.DefaultProfile
	}

	if o.format == "" {
		o.format = output.FormatXLSX
	}

	if o.logger == nil {
		o.logger = discardLogger()
	}
}
