// Package telemetry groups chatifier's observability packages.
//
// # Components
//
//   - logging: slog handler setup with credential redaction and context fields
//   - metrics: Prometheus collectors for probes, detection and provider calls,
//     flushed to a node_exporter textfile at exit
//   - tracing: OpenTelemetry spans exported over OTLP gRPC
//
// All three are optional at runtime. Logging always runs; metrics and
// tracing are no-ops unless enabled in the telemetry section of the
// configuration file.
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, verbose))
//	if err != nil {
//	    return err
//	}
//	logger.Install()
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	defer collector.WriteTextfile(cfg.Telemetry.Metrics.Textfile)
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
package telemetry
