package cli

import (
	"github.com/spf13/cobra"
)

func newCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for imdbsieve.

Besides subcommands and flags, the scripts complete the values of
--profile (built-in profiles), --format (export formats) and
--language on restructure.`,
		Example: `  # Bash, current session
  source <(imdbsieve completion bash)

  # Bash, every session
  imdbsieve completion bash > /etc/bash_completion.d/imdbsieve

  # Zsh (needs "autoload -U compinit; compinit" in ~/.zshrc)
  imdbsieve completion zsh > "${fpath[1]}/_imdbsieve"

  # Fish
  imdbsieve completion fish > ~/.config/fish/completions/imdbsieve.fish

  # PowerShell
  imdbsieve completion powershell | Out-String | Invoke-Expression`,
		// Completion needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Args:              cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:         []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()

			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			default:
				return root.GenBashCompletionV2(w, true)
			}
		},
	}

	return cmd
}

// completeValues returns a completion function offering a fixed list.
func completeValues(values ...string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
