package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/chatifier/pkg/cli"
	"mercator-hq/chatifier/pkg/config"
	"mercator-hq/chatifier/pkg/detect"
	"mercator-hq/chatifier/pkg/probe"
	"mercator-hq/chatifier/pkg/telemetry/logging"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
	"mercator-hq/chatifier/pkg/telemetry/tracing"
)

// app holds what every command needs: configuration, telemetry and the
// prober.
type app struct {
	cfg     *config.Config
	cfgPath string
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	prober  *probe.Prober
}

// newApp loads configuration, applies the global flags and starts
// telemetry. Close must be called when the command finishes.
func newApp() (*app, error) {
	cfg, path, err := config.Load(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("config", err.Error())
	}

	if secure {
		cfg.Detection.VerifyTLS = true
	}
	if parallel {
		cfg.Detection.Parallel = true
	}
	if metricsFile != "" {
		cfg.Telemetry.Metrics.Enabled = true
		cfg.Telemetry.Metrics.Textfile = metricsFile
	}
	config.SetConfig(cfg)

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, verbose))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger.Install()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())

	if path != "" {
		slog.Debug("configuration loaded", "path", path)
	}

	return &app{
		cfg:     cfg,
		cfgPath: path,
		logger:  logger,
		metrics: collector,
		tracer:  tracer,
		prober: probe.New(probe.Options{
			Timeout:   cfg.Detection.ProbeTimeout,
			VerifyTLS: cfg.Detection.VerifyTLS,
			Metrics:   collector,
		}),
	}, nil
}

// Close flushes metrics and traces.
func (a *app) Close() {
	a.prober.Close()

	if err := a.metrics.WriteTextfile(a.cfg.Telemetry.Metrics.Textfile); err != nil {
		slog.Warn("failed to write metrics file", "path", a.cfg.Telemetry.Metrics.Textfile, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.tracer.Shutdown(ctx); err != nil {
		slog.Warn("failed to flush traces", "error", err)
	}
}

// detector builds a Detector from the detection settings, with a progress
// bar when stderr is a terminal and debug logging is off.
func (a *app) detector(target detect.Target) (*detect.Detector, func()) {
	opts := []detect.Option{
		detect.WithPorts(a.cfg.Detection.Ports),
		detect.WithMetrics(a.metrics),
	}
	if a.cfg.Detection.Parallel {
		opts = append(opts, detect.WithParallel(a.cfg.Detection.MaxConcurrency))
	}

	done := func() {}
	if cli.StderrIsTerminal() && !verbose {
		progress := cli.NewProgressReporter(nil)
		opts = append(opts, detect.WithProgress(cli.DetectionProgress(progress)))
		done = progress.Finish

		d := detect.New(a.prober, opts...)
		progress.Start(cli.MaxProbes(len(d.Ports(target))))
		return d, done
	}

	return detect.New(a.prober, opts...), done
}

// targetFromArgs normalizes the host argument (localhost when absent) and
// applies --port.
func targetFromArgs(args []string) (detect.Target, error) {
	host := "localhost"
	if len(args) > 0 {
		host = args[0]
	}

	target, err := detect.Normalize(host)
	if err != nil {
		return detect.Target{}, cli.NewConfigError("host", err.Error())
	}
	if connFlags.port != 0 {
		if connFlags.port < 1 || connFlags.port > 65535 {
			return detect.Target{}, cli.NewConfigError("port", fmt.Sprintf("port %d out of range (1-65535)", connFlags.port))
		}
		target.Port = connFlags.port
	}
	return target, nil
}
