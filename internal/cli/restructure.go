package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/imdbsieve/internal/config"
	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/filter"
	"github.com/hupe1980/imdbsieve/internal/logging"
	"github.com/hupe1980/imdbsieve/internal/output"
	"github.com/hupe1980/imdbsieve/internal/restructure"
	"github.com/hupe1980/imdbsieve/internal/summary"
)

func newRestructureCommand() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "restructure",
		Short: "Merge the datasets into per-type TSV files",
		Long: `Restructure merges title.basics, title.ratings and title.akas into
one row per title, keeping the alias in the preferred language where
one exists, and writes the movies and TV series to

  datasets/restructured_datasets/movies.tsv
  datasets/restructured_datasets/tvseries.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRestructure(cmd.Context(), cmd, language)
		},
	}

	cmd.Flags().StringVar(&language, "language", restructure.DefaultLanguage, "preferred alias language (ISO 639-1)")
	_ = cmd.RegisterFlagCompletionFunc("language", completeValues("en", "de", "es", "fr", "it", "ja", "ko", "pt"))

	return cmd
}

func runRestructure(ctx context.Context, cmd *cobra.Command, language string) error {
	cfg := config.FromContext(ctx)
	p := cfg.Paths()

	if _, err := filter.ParseLanguage(language); err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}

	res, err := restructure.Run(ctx, dataset.Paths{
		Basics:  p.Basics,
		Ratings: p.Ratings,
		Akas:    p.Akas,
	}, restructure.Options{
		OutputDir:   p.RestructuredDir,
		Language:    language,
		FileOptions: []output.FileOption{output.WithLogger(logging.FromContext(ctx))},
	})
	if err != nil {
		return exitFor(err)
	}

	if cfg.Quiet {
		return nil
	}

	out := cmd.OutOrStdout()

	_, err = fmt.Fprintln(out, summary.Table(
		[]string{"Kind", "Rows", "File"},
		[][]string{
			{"movies", summary.Count(res.Movies), res.MoviesPath},
			{"tv series", summary.Count(res.TVSeries), res.TVSeriesPath},
		},
		[]summary.Align{summary.AlignLeft, summary.AlignRight, summary.AlignLeft},
		!cfg.NoColor && summary.ShouldColorize(out),
	))

	return err
}
