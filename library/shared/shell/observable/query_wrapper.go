package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
)

// QueryWrapper provides comprehensive observability instrumentation for any query handler.
// It wraps a core query handler and adds metrics, tracing, and logging.
// This follows the same composition pattern as CommandWrapper for consistency.
type QueryWrapper[Q shell.Query, R any] struct {
	coreHandler shell.CoreQueryHandler[Q, R]
	queryType   string
	observers
}

// NewQueryWrapper creates a new observable wrapper around the core query handler.
func NewQueryWrapper[Q shell.Query, R any](
	coreHandler shell.CoreQueryHandler[Q, R],
	opts ...Option,
) (*QueryWrapper[Q, R], error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	// Extract query type from a zero-value instance
	var zeroQuery Q

	return &QueryWrapper[Q, R]{
		coreHandler: coreHandler,
		queryType:   zeroQuery.QueryType(),
		observers:   o,
	}, nil
}

// Handle executes the wrapped handler and records metrics, spans, and logs from timing and errors.
func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	queryStart := time.Now()
	ctx, span := shell.StartQuerySpan(ctx, w.tracingCollector, w.queryType)
	shell.LogQueryStart(ctx, w.logger, w.contextualLogger, w.queryType)

	result, err := w.coreHandler.Handle(ctx, query)

	duration := time.Since(queryStart)

	if err != nil {
		status := shell.ClassifyQueryError(err)

		shell.RecordQueryMetrics(ctx, w.metricsCollector, w.queryType, status, duration)
		shell.FinishSpan(w.tracingCollector, span, status, duration, err)
		shell.LogQueryError(ctx, w.logger, w.contextualLogger, w.queryType, err)

		return result, err
	}

	shell.RecordQueryMetrics(ctx, w.metricsCollector, w.queryType, shell.StatusSuccess, duration)
	shell.FinishSpan(w.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogQuerySuccess(ctx, w.logger, w.contextualLogger, w.queryType, duration)

	return result, nil
}
