package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for vgraph, including flavor and format flags.

To load completions:

Bash:
  $ source <(vgraph completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ vgraph completion bash > /etc/bash_completion.d/vgraph
  # macOS:
  $ vgraph completion bash > $(brew --prefix)/etc/bash_completion.d/vgraph

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ vgraph completion zsh > "${fpath[1]}/_vgraph"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ vgraph completion fish | source

  # To load completions for each session, execute once:
  $ vgraph completion fish > ~/.config/fish/completions/vgraph.fish

PowerShell:
  PS> vgraph completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> vgraph completion powershell > vgraph.ps1
  # and source this file from your PowerShell profile.
`,
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

	return cmd
}
