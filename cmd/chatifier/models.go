package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/chatifier/pkg/cli"
	"mercator-hq/chatifier/pkg/providers"
)

var modelsFlags struct {
	output string
}

var modelsCmd = &cobra.Command{
	Use:   "models [host]",
	Short: "List the models a host offers",
	Long: `Detect the API on a host (or use --override), connect and print the
available models.

Providers without a models endpoint report a fixed list.

Examples:
  chatifier models localhost -p 11434
  chatifier models https://api.openai.com -o openai -t "$OPENAI_API_KEY" --output json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().StringVar(&modelsFlags.output, "output", "text", "output format: text, json")
}

// modelList is the JSON shape of the models command.
type modelList struct {
	Provider string   `json:"provider"`
	BaseURL  string   `json:"base_url"`
	Models   []string `json:"models"`
}

func runModels(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(modelsFlags.output)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	errOut := cmd.ErrOrStderr()
	ep, err := resolveEndpoint(ctx, a, args, errOut)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, a, ep)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := connect(ctx, client, cli.NewPrompter(), errOut); err != nil {
		return cli.NewCommandError("models", err)
	}

	models := client.ListModels(ctx)
	formatter := cli.NewFormatter(format)
	if format == cli.FormatJSON {
		return formatter.FormatTo(cmd.OutOrStdout(), modelList{
			Provider: client.Provider(),
			BaseURL:  client.Config().BaseURL,
			Models:   models,
		})
	}

	lines := make([]string, len(models))
	for i, m := range models {
		lines[i] = providers.FormatModelName(m)
		if lines[i] != m {
			lines[i] = m + " (" + lines[i] + ")"
		}
	}
	if len(lines) == 0 {
		lines = []string{"No models reported by " + describe(client)}
	}
	return formatter.FormatTo(cmd.OutOrStdout(), lines)
}
