package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Output goes to the
// command's writer so it can be redirected into a completion file.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for factoryfloor.

  bash:        source <(factoryfloor completion bash)
  zsh:         factoryfloor completion zsh > "${fpath[1]}/_factoryfloor"
  fish:        factoryfloor completion fish | source
  powershell:  factoryfloor completion powershell | Out-String | Invoke-Expression

Start a new shell for a persisted script to take effect.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
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
}
