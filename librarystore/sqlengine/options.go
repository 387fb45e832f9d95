package sqlengine

import (
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// Logger interface for SQL query logging, operational messages, warnings, and error reporting.
type Logger = librarystore.Logger

// MetricsCollector interface for collecting store performance and operational metrics.
type MetricsCollector = librarystore.MetricsCollector

// TracingCollector interface for collecting distributed tracing information from store operations.
type TracingCollector = librarystore.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = librarystore.SpanContext

// ContextualLogger interface for context-aware logging with trace correlation.
type ContextualLogger = librarystore.ContextualLogger

// Option defines a functional option for configuring LibraryStore.
type Option func(*LibraryStore) error

// WithDialect sets the SQL dialect used to build statements.
// Only needed for database/sql and sqlx connections, pgx connections are always PostgreSQL.
func WithDialect(dialect string) Option {
	return func(s *LibraryStore) error {
		switch dialect {
		case DialectPostgres, DialectSQLite3:
			s.dialect = dialect
			return nil
		default:
			return librarystore.ErrUnsupportedDialect
		}
	}
}

// WithLogger sets the logger for the LibraryStore.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: inserted/updated/deleted records, concurrency conflicts (production-safe)
// Warn level: non-critical issues like failures when closing rows
// Error level: failures that cause an operation to fail.
func WithLogger(logger Logger) Option {
	return func(s *LibraryStore) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the LibraryStore.
// It receives statement durations, affected rows, concurrency conflicts and database errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *LibraryStore) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the LibraryStore.
// Every store operation is recorded as one span.
func WithTracing(collector TracingCollector) Option {
	return func(s *LibraryStore) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the LibraryStore.
// When set, it is preferred over the plain logger, so log records carry trace correlation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *LibraryStore) error {
		s.contextualLogger = logger
		return nil
	}
}
