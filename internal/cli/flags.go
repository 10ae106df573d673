package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/imdbsieve/internal/config"
	"github.com/hupe1980/imdbsieve/internal/filter"
	"github.com/hupe1980/imdbsieve/internal/output"
)

// criteriaFlags are the flag names that select filters non-interactively.
var criteriaFlags = []string{"min-votes", "min-rating", "genre"}

// registerCriteriaFlags adds the --min-votes/--min-rating/--genre family.
func registerCriteriaFlags(cmd *cobra.Command, opts *filterOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.minVotes, "min-votes", "", "keep titles with at least this many votes")
	f.StringVar(&opts.minRating, "min-rating", "", "keep titles rated at least this (0-10)")
	f.StringVar(&opts.genre, "genre", "", "keep titles of this genre (case-insensitive)")
}

// registerProfileFlags adds the profile selection flags.
func registerProfileFlags(cmd *cobra.Command, opts *filterOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.profile, "profile", filter.DefaultProfile, "baseline filter profile (built-in or from the config file)")
	f.StringVar(&opts.profilesFile, "profiles", "", "YAML file with custom profiles (default: the config file)")

	_ = cmd.RegisterFlagCompletionFunc("profile", completeValues(filter.BuiltinProfileNames()...))
}

// registerFormatFlag adds --format with the given default.
func registerFormatFlag(cmd *cobra.Command, target *string, def string) {
	reg := output.DefaultRegistry()

	cmd.Flags().StringVar(target, "format", def, "output format: "+reg.AvailableFormats())
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(reg.Formats()...))
}

// registerFilterFlags registers every flag the filter and watch commands share.
func registerFilterFlags(cmd *cobra.Command, opts *filterOptions) {
	registerProfileFlags(cmd, opts)
	registerCriteriaFlags(cmd, opts)
	registerFormatFlag(cmd, &opts.format, config.DefaultExportFormat)
}

// exportFormat returns --format when set and the configured export-format
// otherwise.
func exportFormat(cmd *cobra.Command, cfg *config.Config, opts *filterOptions) string {
	if cmd.Flags().Changed("format") || cfg.ExportFormat == "" {
		return opts.format
	}

	return cfg.ExportFormat
}

// criteriaChanged reports whether any criteria flag was set explicitly.
func criteriaChanged(cmd *cobra.Command) bool {
	for _, name := range criteriaFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}

	return false
}
