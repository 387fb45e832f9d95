package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
)

// CommandWrapper provides comprehensive observability instrumentation for any command handler.
// It wraps a core command handler and adds metrics, tracing, and logging.
// The wrapper handles all infrastructure concerns while delegating business logic to the wrapped handler.
type CommandWrapper[C shell.Command, R any] struct {
	coreHandler shell.CoreCommandHandler[C, R]
	commandType string
	observers
}

// NewCommandWrapper creates a new observable wrapper around the core command handler.
func NewCommandWrapper[C shell.Command, R any](
	coreHandler shell.CoreCommandHandler[C, R],
	opts ...Option,
) (*CommandWrapper[C, R], error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	// Extract command type from a zero-value instance
	var zeroCommand C

	return &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
		observers:   o,
	}, nil
}

// Handle executes the wrapped handler and translates its HandlerResult and error into metrics, spans, and logs.
//
// Business rule violations are recorded with status "rejected" and logged at info level,
// they are expected outcomes, not operational failures.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, shell.HandlerResult, error) {
	commandStart := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType)
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	state, result, err := w.coreHandler.Handle(ctx, command)

	w.recordRetryMetrics(ctx, result)

	duration := time.Since(commandStart)

	if err != nil {
		status := shell.ClassifyCommandError(err)

		shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
		shell.FinishSpan(w.tracingCollector, span, status, duration, err)

		if status == shell.StatusRejected {
			shell.LogCommandRejected(ctx, w.logger, w.contextualLogger, w.commandType, err)
		} else {
			shell.LogCommandError(ctx, w.logger, w.contextualLogger, w.commandType, err)
		}

		return state, result, err
	}

	status := shell.StatusSuccess
	if result.Idempotent {
		status = shell.StatusIdempotent
	}

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
	shell.FinishSpan(w.tracingCollector, span, status, duration, nil)
	shell.LogCommandSuccess(ctx, w.logger, w.contextualLogger, w.commandType, status, duration)

	return state, result, nil
}

// recordRetryMetrics records retry execution metadata from the handler result.
func (w *CommandWrapper[C, R]) recordRetryMetrics(ctx context.Context, result shell.HandlerResult) {
	if w.metricsCollector == nil {
		return
	}

	if result.RetryAttempts > 1 {
		retryLabels := shell.BuildRetryLabels(w.commandType, result.RetryAttempts-1, result.LastErrorType)
		delayLabels := map[string]string{
			shell.LogAttrCommandType: w.commandType,
		}

		if contextualCollector, ok := w.metricsCollector.(shell.ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, shell.CommandHandlerRetriesMetric, retryLabels)
			contextualCollector.RecordDurationContext(ctx, shell.CommandHandlerRetryDelayMetric, result.TotalRetryDelay, delayLabels)
		} else {
			w.metricsCollector.IncrementCounter(shell.CommandHandlerRetriesMetric, retryLabels)
			w.metricsCollector.RecordDuration(shell.CommandHandlerRetryDelayMetric, result.TotalRetryDelay, delayLabels)
		}
	}

	if result.RetriesExhausted {
		exhaustedLabels := map[string]string{
			shell.LogAttrCommandType: w.commandType,
		}

		if contextualCollector, ok := w.metricsCollector.(shell.ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, shell.CommandHandlerMaxRetriesReachedMetric, exhaustedLabels)
		} else {
			w.metricsCollector.IncrementCounter(shell.CommandHandlerMaxRetriesReachedMetric, exhaustedLabels)
		}
	}
}
