package observable

import (
	"errors"

	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
)

// ErrNilObserver is returned when an option is called with a nil collector or logger.
var ErrNilObserver = errors.New("observer must not be nil")

// observers holds the optional observability backends shared by CommandWrapper and QueryWrapper.
type observers struct {
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// Option configures the observability of a CommandWrapper or a QueryWrapper.
type Option func(*observers) error

// WithMetrics sets the metrics collector.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(o *observers) error {
		if collector == nil {
			return ErrNilObserver
		}

		o.metricsCollector = collector

		return nil
	}
}

// WithTracing sets the tracing collector.
func WithTracing(collector shell.TracingCollector) Option {
	return func(o *observers) error {
		if collector == nil {
			return ErrNilObserver
		}

		o.tracingCollector = collector

		return nil
	}
}

// WithContextualLogging sets the contextual logger. It takes precedence over the basic logger.
func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(o *observers) error {
		if logger == nil {
			return ErrNilObserver
		}

		o.contextualLogger = logger

		return nil
	}
}

// WithLogging sets the basic logger.
func WithLogging(logger shell.Logger) Option {
	return func(o *observers) error {
		if logger == nil {
			return ErrNilObserver
		}

		o.logger = logger

		return nil
	}
}

func applyOptions(opts []Option) (observers, error) {
	var o observers

	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return observers{}, err
		}
	}

	return o, nil
}
