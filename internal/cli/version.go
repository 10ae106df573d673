package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/imdbsieve/internal/version"
)

func newVersionCommand() *cobra.Command {
	var (
		jsonOutput bool
		short      bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the imdbsieve version",
		Long: `Print the imdbsieve release, the commit it was built from, the build
date and the Go toolchain and platform.

Binaries installed with "go install" report the module version and VCS
data recorded by the Go toolchain. A commit marked "-dirty" was built
from a modified working tree.`,
		Example: `  imdbsieve version
  imdbsieve version --short
  imdbsieve version --json | jq -r .gitCommit`,
		Args: cobra.NoArgs,
		// Version needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()
			out := cmd.OutOrStdout()

			switch {
			case jsonOutput:
				j, err := info.JSON()
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(out, j)

				return err
			case short:
				_, err := fmt.Fprintln(out, info.Version)
				return err
			default:
				_, err := fmt.Fprintln(out, info.String())
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the build metadata as JSON")
	cmd.Flags().BoolVar(&short, "short", false, "print only the release version")
	cmd.MarkFlagsMutuallyExclusive("json", "short")

	return cmd
}
