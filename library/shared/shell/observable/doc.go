// Package observable provides wrapper components for instrumenting command and query handlers
// with observability (metrics, tracing, logging) while keeping business logic pure.
//
// The wrappers are applied externally at wiring time, not hidden inside factory functions:
//
//	coreHandler := borrowbook.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithMetrics(metricsCollector),
//		observable.WithTracing(tracingCollector),
//		observable.WithContextualLogging(contextualLogger),
//	)
//
//	borrow, result, err := handler.Handle(ctx, command)
//
// Every option is optional, a wrapper without options only delegates.
// Tests of business logic use the core handlers directly.
package observable
