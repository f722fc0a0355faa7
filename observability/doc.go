// Package observability provides OpenTelemetry tracing and metrics for the
// testimonial feed.
//
// Tracing and metric export are opt-in:
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability, observability.Service{Name: "synapseiq"})
//	defer shutdown(ctx)
//
// Without Setup the global no-op providers are used, so StartSpan and
// FetchMetrics cost nothing in tests and library use.
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanFetchPage)
//	defer span.End()
//
//	metrics, err := observability.NewFetchMetrics(observability.Meter(observability.InstrumentationName))
//	metrics.RecordFetch(ctx, "ok", len(records), time.Since(start))
package observability
