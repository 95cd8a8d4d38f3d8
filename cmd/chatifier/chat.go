package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/chatifier/pkg/chat"
	"mercator-hq/chatifier/pkg/cli"
	"mercator-hq/chatifier/pkg/config"
)

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	ep, err := resolveEndpoint(ctx, a, args, os.Stderr)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, a, ep)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := connect(ctx, client, cli.NewPrompter(), os.Stderr); err != nil {
		return cli.NewCommandError("chat", err)
	}
	slog.Debug("connected", "endpoint", describe(client))

	if a.cfg.Chat.WatchConfig && a.cfgPath != "" {
		go watchConfig(ctx, a)
	}

	reader := chat.NewTerminalReader()
	defer reader.Close()

	wrap := a.cfg.Chat.WordWrap
	if w := cli.TerminalWidth(wrap); w < wrap {
		wrap = w
	}

	session := chat.NewSession(client, chat.Options{
		Reader:    reader,
		Out:       os.Stdout,
		PlainText: chatFlags.noMarkdown || a.cfg.Chat.PlainText,
		WordWrap:  wrap,
		Metrics:   a.metrics,
	})
	return session.Run(ctx)
}

// watchConfig applies log level changes from the configuration file while
// the conversation runs. --verbose pins the level to debug.
func watchConfig(ctx context.Context, a *app) {
	err := config.Watch(ctx, a.cfgPath, func(cfg *config.Config) {
		if verbose {
			return
		}
		if err := a.logger.SetLevel(cfg.Telemetry.Logging.Level); err != nil {
			slog.Warn("ignoring log level from reloaded config", "error", err)
		}
	})
	if err != nil {
		slog.Warn("config watch stopped", "error", err)
	}
}
