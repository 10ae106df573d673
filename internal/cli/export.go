package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/frame"
	"github.com/hupe1980/imdbsieve/internal/logging"
	"github.com/hupe1980/imdbsieve/internal/output"
)

type exportOptions struct {
	format    string
	outputArg string
	raw       bool
}

func newExportCommand() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert a TSV or CSV title file to another format",
		Long: `Export reads a TSV (IMDb style, \N for missing values) or CSV file,
such as a restructured dataset or an earlier export, and writes it in
another format.

Supported formats:
  xlsx    Excel workbook with typed numeric cells (requires -o)
  csv     Comma-separated values, empty cells for missing values
  tsv     Tab-separated values, \N for missing values
  sqlite  SQLite database with a single "titles" table (requires -o)

Columns are reordered like the filter exports unless --raw is given.`,
		Example: `  imdbsieve export datasets/restructured_datasets/movies.tsv -o movies.xlsx
  imdbsieve export outputs/filtered_movies.csv --format tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	registerFormatFlag(cmd, &opts.format, output.FormatCSV)
	f.StringVarP(&opts.outputArg, "output", "o", "", "output file path (default: stdout, csv and tsv only)")
	f.BoolVar(&opts.raw, "raw", false, "keep the input column order")

	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, filePath string, opts *exportOptions) error {
	format := strings.ToLower(opts.format)

	reg := output.DefaultRegistry(output.WithLogger(logging.FromContext(ctx)))

	factory, err := reg.Writer(format)
	if err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}

	toStdout := opts.outputArg == "" || opts.outputArg == "-"
	if toStdout && format != output.FormatCSV && format != output.FormatTSV {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("--output (-o) is required for %s format", format)}
	}

	f, err := dataset.ReadFile(ctx, filePath)
	if err != nil {
		return exitFor(fmt.Errorf("%w: %w", dataset.ErrLoad, err))
	}

	if !opts.raw {
		f = output.Layout(f)
	}

	return exitFor(writeExport(ctx, cmd, factory, format, opts.outputArg, toStdout, f))
}

func writeExport(ctx context.Context, cmd *cobra.Command, factory output.WriterFactory, format, path string, toStdout bool, f *frame.Frame) error {
	var w output.Writer

	if toStdout {
		dialect := output.DialectCSV
		if format == output.FormatTSV {
			dialect = output.DialectTSV
		}

		w = output.NewStreamWriter(dialect, cmd.OutOrStdout())
	} else {
		w = factory(path)
	}

	if err := w.Write(ctx, f); err != nil {
		return fmt.Errorf("%w: %w", output.ErrWrite, err)
	}

	if !toStdout {
		logging.FromContext(ctx).Info("export written",
			slog.String("format", format),
			slog.String("path", path),
			slog.Int("rows", f.Len()),
		)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d rows to %s\n", f.Len(), path)
	}

	return nil
}
