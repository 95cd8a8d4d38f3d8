package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/chatifier/pkg/cli"
	"mercator-hq/chatifier/pkg/detect"
)

var detectFlags struct {
	provider string
	output   string
}

var detectCmd = &cobra.Command{
	Use:   "detect [host]",
	Short: "Report which API is listening on a host",
	Long: `Probe a host and report which provider API answers, without starting a chat.

With --provider only that provider's signature is checked, against the base
URL built from the host (and --port).

Examples:
  # Scan the common ports on localhost
  chatifier detect

  # JSON for scripts
  chatifier detect 10.0.0.5 --output json

  # Is this an Ollama server?
  chatifier detect localhost -p 11434 --provider ollama`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVar(&detectFlags.provider, "provider", "", "check a single provider")
	detectCmd.Flags().StringVar(&detectFlags.output, "output", "text", "output format: text, json")
}

func runDetect(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(detectFlags.output)
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

	target, err := targetFromArgs(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if detectFlags.provider != "" {
		baseURL := target.BaseURL()
		d := detect.New(a.prober, detect.WithMetrics(a.metrics))
		if !d.DetectProvider(ctx, baseURL, detectFlags.provider) {
			return cli.NewCommandError("detect", fmt.Errorf("%s API not found at %s", detectFlags.provider, baseURL))
		}
		return writeDetection(out, format, &detect.Result{
			Provider: detectFlags.provider,
			Hostname: target.Hostname,
			Port:     target.Port,
			BaseURL:  baseURL,
		})
	}

	d, done := a.detector(target)
	res := d.Detect(ctx, target)
	done()

	if res == nil {
		return &cli.NoProviderError{Target: target.Hostname, Ports: d.Ports(target)}
	}
	return writeDetection(out, format, res)
}

func writeDetection(out io.Writer, format cli.OutputFormat, res *detect.Result) error {
	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(out, res)
	}
	return cli.NewFormatter(format).FormatTo(out, []string{
		fmt.Sprintf("Detected %s API at %s", res.Provider, res.BaseURL),
		"Endpoints: " + endpointsFor(res.Provider),
	})
}
