// Package oteladapters implements the librarystore observability interfaces with OpenTelemetry.
//
// MetricsCollector maps durations to histograms, counters to counters and values to gauges.
// TracingCollector starts one span per store operation or handler call.
// SlogBridgeLogger and OTelLogger are the two ContextualLogger flavors: the first goes through log/slog,
// the second emits OpenTelemetry log records directly.
package oteladapters
