package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/chatifier/pkg/cli"
	"mercator-hq/chatifier/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration file",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a configuration file",
	Long: `Load a configuration file with environment overrides applied and report
every validation problem.

Without a path the file chatifier would use is checked (--config,
$CHATIFIER_CONFIG, then the XDG location).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigValidate,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the default configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.DefaultPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	explicit := cfgFile
	if len(args) > 0 {
		explicit = args[0]
	}

	_, path, err := config.Load(explicit)
	if err != nil {
		return cli.NewConfigError("config", err.Error())
	}
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No configuration file found; defaults are valid.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid.\n", path)
	return nil
}
