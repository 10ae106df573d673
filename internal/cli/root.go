// Package cli implements the cobra command tree for imdbsieve.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/imdbsieve/internal/config"
	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/logging"
	"github.com/hupe1980/imdbsieve/internal/output"
)

// Process exit codes.
const (
	exitRuntime = 1
	exitUsage   = 2
	exitDataset = 3
	exitWrite   = 6
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitFor attaches the exit code matching err's cause.
func exitFor(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError

	switch {
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, dataset.ErrLoad):
		return &ExitError{Code: exitDataset, Err: err}
	case errors.Is(err, output.ErrWrite):
		return &ExitError{Code: exitWrite, Err: err}
	default:
		return &ExitError{Code: exitRuntime, Err: err}
	}
}

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return exitRuntime
	}

	return 0
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "imdbsieve",
		Short: "Filter the IMDb datasets into personal watch lists",
		Long: `imdbsieve filters the public IMDb title datasets (title.basics,
title.ratings and title.akas) into smaller, curated exports.

It applies a baseline profile (movies and TV series, English titles,
released 1960 or later), lets you narrow the result by vote count,
rating and genre, removes the titles on your watched lists, and writes
the movies and TV series to spreadsheets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: exitUsage, Err: err}
			}

			logger := logging.SetupWithWriter(cfg, cmd.ErrOrStderr())

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
				slog.String("dataDir", cfg.DataDir),
				slog.String("configFile", cfg.ConfigFile),
			)

			return nil
		},
	}

	// Global persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .imdbsieve.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
	pf.String("data-dir", ".", "project directory holding datasets/, outputs/ and usrdata/")
	pf.String("user", config.DefaultUser, "user whose watched lists are applied")

	// Flag parsing errors return exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: exitUsage, Err: err}
	})

	cmd.AddCommand(
		newVersionCommand(),
		newFilterCommand(),
		newRestructureCommand(),
		newInspectCommand(),
		newExportCommand(),
		newWatchCommand(),
		newCompletionCommand(),
	)

	return cmd
}
