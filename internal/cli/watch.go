package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/imdbsieve/internal/config"
	"github.com/hupe1980/imdbsieve/internal/logging"
	"github.com/hupe1980/imdbsieve/internal/output"
	"github.com/hupe1980/imdbsieve/internal/pipeline"
	"github.com/hupe1980/imdbsieve/internal/watch"
)

type watchOptions struct {
	filterOptions

	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the filter whenever datasets or watched lists change",
		Long: `Watch runs the filter once, then monitors the datasets directory and
the user's watched-list directory. When title.basics, title.ratings,
title.akas or a watched list changes, the filter runs again with the
same profile and criteria.

File changes are debounced so that a large dataset being copied into
place triggers one run. Each run reports the export sizes and how they
moved since the previous run. Watch never prompts; criteria come from
flags only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd, opts)
		},
	}

	registerFilterFlags(cmd, &opts.filterOptions)
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultOptions().Debounce, "debounce interval for file changes")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *watchOptions) error {
	if opts.debounce <= 0 {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("--debounce must be positive, got %s", opts.debounce)}
	}

	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)
	paths := cfg.Paths()

	profile, err := resolveProfile(cfg, &opts.filterOptions)
	if err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}

	criteria, err := criteriaFromFlags(&opts.filterOptions)
	if err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}

	opts.format = exportFormat(cmd, cfg, &opts.filterOptions)

	reg := output.DefaultRegistry(output.WithLogger(logger))
	if _, err := reg.Writer(opts.format); err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}

	// The user directory may not exist before the first watched list is saved.
	if err := os.MkdirAll(paths.UserDir, 0o750); err != nil {
		return exitFor(fmt.Errorf("creating user directory: %w", err))
	}

	runFn := func(runCtx context.Context) (*watch.RunResult, error) {
		res, err := pipeline.Run(runCtx, pipeline.Options{
			Paths:       paths,
			ProfileName: opts.profile,
			Profile:     profile,
			Criteria:    criteria,
			Format:      opts.format,
			Registry:    reg,
			Progress:    io.Discard,
		})
		if err != nil {
			return nil, err
		}

		return &watch.RunResult{
			Movies:   res.Movies.Rows,
			TVSeries: res.TVSeries.Rows,
			Outputs:  []string{res.Movies.Path, res.TVSeries.Path},
		}, nil
	}

	watchOpts := watch.Options{
		Dirs:  []string{paths.DatasetsDir, paths.UserDir},
		Files: []string{paths.Basics, paths.Ratings, paths.Akas, paths.WatchedMovies, paths.WatchedTVSeries},

		Debounce: opts.debounce,
		Logger:   logger,
		Out:      cmd.ErrOrStderr(),
	}

	if err := watch.Run(ctx, watchOpts, runFn); err != nil {
		return exitFor(err)
	}

	return nil
}
