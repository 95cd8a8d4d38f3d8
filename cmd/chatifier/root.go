package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	verbose     bool
	secure      bool
	parallel    bool
	metricsFile string
)

// Connection flags shared by chat, detect and models.
var connFlags struct {
	port     int
	token    string
	override string
	model    string
}

var chatFlags struct {
	noMarkdown bool
}

var rootCmd = &cobra.Command{
	Use:   "chatifier [host]",
	Short: "Chat with any LLM API from the terminal",
	Long: `chatifier talks to an unknown HTTP chat endpoint. It probes the host to
find out which API is listening, normalizes the provider differences and runs
an interactive conversation.

The host may be a bare name or IP (localhost, 10.0.0.5), host:port, or a full
URL. Without --port the common LLM serving ports are tried:
8080, 8000, 3000, 5000, 11434, 80, 443.

Supported providers: openai, anthropic, ollama, gemini, cohere, generic.

Examples:
  # Chat with whatever answers on localhost
  chatifier

  # Ollama on another machine
  chatifier 192.168.1.20 -p 11434

  # Force the provider and pass a token
  chatifier https://api.anthropic.com -o anthropic -t "$ANTHROPIC_API_KEY"`,
	Args:          cobra.MaximumNArgs(1),
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default $XDG_CONFIG_HOME/chatifier/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&secure, "secure", false, "verify TLS certificates")
	rootCmd.PersistentFlags().BoolVar(&parallel, "parallel", false, "probe candidate ports concurrently")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	rootCmd.PersistentFlags().IntVarP(&connFlags.port, "port", "p", 0, "port number (default: try common ports)")
	rootCmd.PersistentFlags().StringVarP(&connFlags.token, "token", "t", "", "API token")
	rootCmd.PersistentFlags().StringVarP(&connFlags.override, "override", "o", "", "force the provider (openai, anthropic, ollama, gemini, cohere, generic)")
	rootCmd.PersistentFlags().StringVarP(&connFlags.model, "model", "m", "", "model to use")

	rootCmd.Flags().BoolVar(&chatFlags.noMarkdown, "no-markdown", false, "print replies as plain text")
}
