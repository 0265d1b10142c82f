package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for jsontree.

To load completions:

Bash:
  $ source <(jsontree completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ jsontree completion bash > /etc/bash_completion.d/jsontree
  # macOS:
  $ jsontree completion bash > $(brew --prefix)/etc/bash_completion.d/jsontree

Zsh:
  $ jsontree completion zsh > "${fpath[1]}/_jsontree"

Fish:
  $ jsontree completion fish > ~/.config/fish/completions/jsontree.fish

PowerShell:
  PS> jsontree completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
