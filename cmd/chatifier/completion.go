package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/chatifier/pkg/providerfactory"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a shell completion script for chatifier.

To load completions:

Bash:
  $ source <(chatifier completion bash)

Zsh:
  $ chatifier completion zsh > "${fpath[1]}/_chatifier"
  $ compinit

Fish:
  $ chatifier completion fish > ~/.config/fish/completions/chatifier.fish

PowerShell:
  PS> chatifier completion powershell | Out-String | Invoke-Expression
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

	// Provider names for --override.
	_ = rootCmd.RegisterFlagCompletionFunc("override", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return providerfactory.Supported(), cobra.ShellCompDirectiveNoFileComp
	})
}
