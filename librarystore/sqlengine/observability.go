package sqlengine

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

const (
	metricStatementDuration    = "librarystore_statement_duration_seconds"
	metricRowsProcessed        = "librarystore_rows_processed"
	metricConcurrencyConflicts = "librarystore_concurrency_conflicts_total"
	metricDatabaseErrors       = "librarystore_database_errors_total"

	spanNamePrefix       = "librarystore."
	spanAttrOperation    = "operation"
	spanAttrDialect      = "db.dialect"
	spanAttrRows         = "rows"
	spanAttrErrorType    = "error_type"
	spanAttrDurationMS   = "duration_ms"
	labelStatus          = "status"
	labelConflictType    = "conflict_type"
	statusSuccess        = "success"
	statusError          = "error"
	conflictTypeStaleCAS = "stale_state"

	errorTypeDatabaseQuery   = "database_query"
	errorTypeDatabaseExec    = "database_exec"
	errorTypeRowScan         = "row_scan"
	errorTypeRowsAffected    = "rows_affected"
	errorTypeDuplicateRecord = "duplicate_record"
	errorTypeCheckViolation  = "check_violation"
)

// operationObserver records tracing and metrics for exactly one store operation.
type operationObserver struct {
	s         LibraryStore
	ctx       context.Context
	operation string
	span      SpanContext
	start     time.Time
}

// startObservation opens the span of a store operation and starts its clock.
func (s LibraryStore) startObservation(ctx context.Context, operation string) (*operationObserver, context.Context) {
	spanCtx := ctx

	var span SpanContext
	if s.tracingCollector != nil {
		spanCtx, span = s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
			spanAttrOperation: operation,
			spanAttrDialect:   s.dialect,
		})
	}

	return &operationObserver{
		s:         s,
		ctx:       spanCtx,
		operation: operation,
		span:      span,
		start:     time.Now(),
	}, spanCtx
}

func (o *operationObserver) finishSuccess(rows int64) {
	duration := time.Since(o.start)

	o.s.recordDuration(o.ctx, o.operation, statusSuccess, duration)
	o.s.recordValue(o.ctx, metricRowsProcessed, float64(rows), o.operation, statusSuccess)

	if o.span != nil {
		o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", o.s.toMilliseconds(duration)))
		o.s.tracingCollector.FinishSpan(o.span, statusSuccess, map[string]string{
			spanAttrRows: strconv.FormatInt(rows, 10),
		})
	}
}

func (o *operationObserver) finishError(errorType string) {
	duration := time.Since(o.start)

	o.s.recordDuration(o.ctx, o.operation, statusError, duration)
	o.s.recordError(o.ctx, o.operation, errorType)

	if o.span != nil {
		o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", o.s.toMilliseconds(duration)))
		o.s.tracingCollector.FinishSpan(o.span, statusError, map[string]string{
			spanAttrErrorType: errorType,
		})
	}
}

func (s LibraryStore) recordDuration(ctx context.Context, operation, status string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricStatementDuration, duration, labels)
	} else {
		s.metricsCollector.RecordDuration(metricStatementDuration, duration, labels)
	}
}

func (s LibraryStore) recordValue(ctx context.Context, metricName string, value float64, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
	} else {
		s.metricsCollector.RecordValue(metricName, value, labels)
	}
}

func (s LibraryStore) recordError(ctx context.Context, operation, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

func (s LibraryStore) recordConcurrencyConflict(ctx context.Context, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelConflictType: conflictTypeStaleCAS,
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s LibraryStore) logQueryWithDuration(ctx context.Context, sqlQuery string, operation string, duration time.Duration) {
	args := []any{logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation, args...)
	} else if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+operation, args...)
	}
}

// logOperation logs operational information at info level.
func (s LibraryStore) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	} else if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s LibraryStore) logWarn(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
	} else if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

func (s LibraryStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	} else if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s LibraryStore) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
