// Package tracing provides OpenTelemetry tracing for chatifier.
//
// # Overview
//
// Tracing is off by default. When telemetry.tracing.enabled is set, New
// installs a global tracer provider that exports spans over OTLP gRPC, and
// every package records its work through StartSpan:
//
//	detect                 one span per detection run
//	  probe                one span per HEAD or GET attempt
//	provider.<operation>   one span per provider HTTP request
//
// Outgoing provider requests carry a W3C traceparent header (see Inject), so
// a traced server joins the same trace.
//
// # Sampling Strategies
//
//   - always: Sample all traces (default)
//   - never: Sample no traces
//   - ratio: Sample a fraction of traces (sample_ratio)
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "detect", attribute.String(tracing.AttrTarget, host))
//	defer span.End()
package tracing
