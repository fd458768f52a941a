package cli

import (
	"github.com/spf13/cobra"
)

// archiveExts are the file extensions offered when completing archive paths.
var archiveExts = []string{"db", "offwiki", "sqlite"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for offwiki.

Archive arguments complete to files ending in .db, .offwiki or .sqlite.

Bash:
  $ source <(offwiki completion bash)

  # Persist for new sessions (Linux):
  $ offwiki completion bash > /etc/bash_completion.d/offwiki

Zsh:
  # Enable completion once if it is not already:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ offwiki completion zsh > "${fpath[1]}/_offwiki"

Fish:
  $ offwiki completion fish > ~/.config/fish/completions/offwiki.fish

PowerShell:
  PS> offwiki completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// completeArchive completes the first positional argument to archive files.
func completeArchive(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return archiveExts, cobra.ShellCompDirectiveFilterFileExt
}
