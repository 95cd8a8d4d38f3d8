// Package metrics provides Prometheus metrics collection for chatifier.
//
// # Overview
//
// chatifier is a short-lived terminal program, so nothing is scraped. The
// metrics live in a private registry and are written once, on exit, to a
// file in the node_exporter textfile format when telemetry.metrics.textfile
// (or --metrics-file) is set.
//
// # Metrics Categories
//
//   - Probe Metrics: attempts and latency per HTTP method and outcome
//   - Detection Metrics: runs, duration and candidates probed
//   - Provider Metrics: HTTP requests per provider and operation, chat turns
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	defer collector.WriteTextfile(cfg.Telemetry.Metrics.Textfile)
//
//	collector.RecordProbe("HEAD", metrics.OutcomeSuccess, 12*time.Millisecond)
//	collector.RecordProviderRequest("ollama", "send_message", metrics.OutcomeSuccess, time.Second)
//
// A nil *Collector is valid and records nothing.
//
// # Output
//
//	# HELP chatifier_probe_attempts_total Total number of probe attempts by HTTP method and outcome
//	# TYPE chatifier_probe_attempts_total counter
//	chatifier_probe_attempts_total{method="HEAD",outcome="success"} 3
package metrics
