package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hupe1980/imdbsieve/internal/config"
	"github.com/hupe1980/imdbsieve/internal/filter"
	"github.com/hupe1980/imdbsieve/internal/logging"
	"github.com/hupe1980/imdbsieve/internal/output"
	"github.com/hupe1980/imdbsieve/internal/pipeline"
	"github.com/hupe1980/imdbsieve/internal/prompt"
	"github.com/hupe1980/imdbsieve/internal/summary"
)

type filterOptions struct {
	profile      string
	profilesFile string
	minVotes     string
	minRating    string
	genre        string
	format       string
	interactive  bool
}

func newFilterCommand() *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter the datasets and export movies and TV series",
		Long: `Filter loads title.basics, title.ratings and title.akas, applies the
selected profile (by default: movies and TV series, English titles,
released 1960 or later) and any extra criteria, removes the titles on
the user's watched lists, and writes two exports:

  outputs/filtered_movies.<format>
  outputs/filtered_tvseries.<format>

Criteria come from --min-votes, --min-rating and --genre. When none of
them is given and stdin is a terminal, an interactive menu asks for
them instead. Use --interactive to force the menu.`,
		Example: `  # Ask for criteria interactively
  imdbsieve filter

  # Non-interactive: well-rated crime titles with many votes
  imdbsieve filter --min-votes 50000 --min-rating 8 --genre crime

  # Keep every title type and language, write CSV
  imdbsieve filter --profile all --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilter(cmd.Context(), cmd, opts)
		},
	}

	registerFilterFlags(cmd, opts)
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for criteria even when flags are given")

	return cmd
}

func runFilter(ctx context.Context, cmd *cobra.Command, opts *filterOptions) error {
	cfg := config.FromContext(ctx)

	profile, err := resolveProfile(cfg, opts)
	if err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}

	opts.format = exportFormat(cmd, cfg, opts)

	criteria, err := resolveCriteria(ctx, cmd, opts)
	if err != nil {
		return err
	}

	var progress io.Writer = cmd.OutOrStdout()
	if cfg.Quiet {
		progress = io.Discard
	}

	res, err := pipeline.Run(ctx, pipeline.Options{
		Paths:       cfg.Paths(),
		ProfileName: opts.profile,
		Profile:     profile,
		Criteria:    criteria,
		Format:      opts.format,
		Registry:    output.DefaultRegistry(output.WithLogger(logging.FromContext(ctx))),
		Progress:    progress,
	})
	if err != nil {
		if errors.Is(err, output.ErrUnknownFormat) {
			return &ExitError{Code: exitUsage, Err: err}
		}

		return exitFor(err)
	}

	if cfg.Quiet {
		return nil
	}

	out := cmd.OutOrStdout()
	color := !cfg.NoColor && summary.ShouldColorize(out)

	_, err = fmt.Fprintln(out, reportFor(res).Render(color))

	return err
}

// resolveProfile looks the profile up among the built-ins and the custom
// profiles from --profiles or the config file.
func resolveProfile(cfg *config.Config, opts *filterOptions) (filter.ProfileConfig, error) {
	path := opts.profilesFile
	if path == "" {
		path = cfg.ConfigFile
	}

	var custom map[string]filter.ProfileConfig

	if path != "" {
		var err error

		custom, err = filter.LoadCustomProfiles(path)
		if err != nil {
			return filter.ProfileConfig{}, err
		}
	}

	return filter.ResolveProfile(opts.profile, custom)
}

// resolveCriteria builds the criteria from flags or from the interactive
// menu.
func resolveCriteria(ctx context.Context, cmd *cobra.Command, opts *filterOptions) (filter.Criteria, error) {
	if opts.interactive || (!criteriaChanged(cmd) && isTerminal(cmd.InOrStdin())) {
		criteria, err := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
		if err != nil {
			if errors.Is(err, prompt.ErrNoInput) {
				return filter.Criteria{}, &ExitError{Code: exitUsage, Err: err}
			}

			return filter.Criteria{}, err
		}

		return criteria, nil
	}

	criteria, err := criteriaFromFlags(opts)
	if err != nil {
		return filter.Criteria{}, &ExitError{Code: exitUsage, Err: err}
	}

	return criteria, nil
}

func criteriaFromFlags(opts *filterOptions) (filter.Criteria, error) {
	var c filter.Criteria

	if opts.minVotes != "" {
		n, err := filter.ParseMinVotes(opts.minVotes)
		if err != nil {
			return c, fmt.Errorf("--min-votes: %w", err)
		}

		c.MinVotes = n
	}

	if opts.minRating != "" {
		v, err := filter.ParseMinRating(opts.minRating)
		if err != nil {
			return c, fmt.Errorf("--min-rating: %w", err)
		}

		c.MinRating = v
	}

	if opts.genre != "" {
		c.Genres = []string{opts.genre}
	}

	return c, c.Validate()
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func reportFor(res *pipeline.Result) summary.Report {
	exports := make([]summary.Export, 0, 2)
	for _, e := range []pipeline.Export{res.Movies, res.TVSeries} {
		exports = append(exports, summary.Export{
			Kind:     e.Kind,
			Rows:     e.Rows,
			Excluded: e.Excluded,
			Path:     e.Path,
		})
	}

	return summary.Report{
		Profile:  res.ProfileName,
		Criteria: res.Criteria,
		Steps:    res.Steps,
		Exports:  exports,
	}
}
