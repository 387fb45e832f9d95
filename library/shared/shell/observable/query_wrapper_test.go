package observable_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-backend-go/testutil/observability/testdoubles"
)

const infoLevel = slog.LevelInfo

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	metricsCollector := testdoubles.NewMetricsCollectorSpy(true)
	tracingCollector := testdoubles.NewTracingCollectorSpy(true)
	contextualLogger := testdoubles.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewQueryWrapper[mockQuery, []int](
		mockQueryHandler{result: []int{1, 2, 3}},
		observable.WithMetrics(metricsCollector),
		observable.WithTracing(tracingCollector),
		observable.WithContextualLogging(contextualLogger),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, result)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
		WithLabel(shell.LogAttrQueryType, "TestQuery").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, tracingCollector.HasSpanRecordForName(shell.SpanNameQueryHandle).
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgQueryStarted))
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgQueryCompleted))
}

func Test_QueryWrapper_Handle_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus string
	}{
		{name: "not found", err: core.NotFound("Book not found"), expectedStatus: shell.StatusError},
		{name: "canceled", err: context.Canceled, expectedStatus: shell.StatusCanceled},
		{name: "timeout", err: context.DeadlineExceeded, expectedStatus: shell.StatusTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			metricsCollector := testdoubles.NewMetricsCollectorSpy(true)
			logHandler := testdoubles.NewLogHandlerSpy(false)

			wrapper, err := observable.NewQueryWrapper[mockQuery, []int](
				mockQueryHandler{err: tc.err},
				observable.WithMetrics(metricsCollector),
				observable.WithLogging(newSlogLogger(logHandler)),
			)
			require.NoError(t, err)

			// act
			_, err = wrapper.Handle(context.Background(), mockQuery{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
				WithStatus(tc.expectedStatus).
				Assert())
			assert.True(t, logHandler.HasLog(slog.LevelError, shell.LogMsgQueryFailed))
		})
	}
}

type mockQuery struct{}

func (q mockQuery) QueryType() string {
	return "TestQuery"
}

type mockQueryHandler struct {
	result []int
	err    error
}

func (h mockQueryHandler) Handle(_ context.Context, _ mockQuery) ([]int, error) {
	return h.result, h.err
}

func newSlogLogger(handler slog.Handler) *slog.Logger {
	return slog.New(handler)
}
