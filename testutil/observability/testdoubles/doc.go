// Package testdoubles provides test doubles (spies) for the observability interfaces
// of the library store and the application shell:
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures tracing spans with their start and finish attributes
//   - ContextualLoggerSpy: captures structured logging with context
//   - LogHandlerSpy: a slog.Handler capturing log records
//
// They allow verifying the instrumentation without a telemetry backend.
package testdoubles
