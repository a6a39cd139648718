package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for conftool.

To load completions:

Bash:
  $ source <(conftool completion bash)
  # To load permanently:
  $ conftool completion bash > /etc/bash_completion.d/conftool

Zsh:
  $ conftool completion zsh > "${fpath[1]}/_conftool"
  $ compinit

Fish:
  $ conftool completion fish | source
  # To load permanently:
  $ conftool completion fish > ~/.config/fish/completions/conftool.fish

PowerShell:
  PS> conftool completion powershell | Out-String | Invoke-Expression
  # To load permanently, add to your PowerShell profile
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	// Replaced by completionCmd
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
