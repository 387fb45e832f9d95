package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// ContextualLoggerSpy is a ContextualLogger implementation that captures contextual logging calls for testing.
type ContextualLoggerSpy struct {
	debugRecords []SpyContextualLogRecord
	infoRecords  []SpyContextualLogRecord
	warnRecords  []SpyContextualLogRecord
	errorRecords []SpyContextualLogRecord
	mu           sync.Mutex
	recordCalls  bool
}

// SpyContextualLogRecord represents a recorded contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy instance.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{
		recordCalls: recordCalls,
	}
}

// DebugContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	if s.recordCalls {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.debugRecords = append(s.debugRecords, SpyContextualLogRecord{
			Level:   "debug",
			Message: msg,
			Args:    args,
			Context: ctx,
		})
	}
}

// InfoContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	if s.recordCalls {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.infoRecords = append(s.infoRecords, SpyContextualLogRecord{
			Level:   "info",
			Message: msg,
			Args:    args,
			Context: ctx,
		})
	}
}

// WarnContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	if s.recordCalls {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.warnRecords = append(s.warnRecords, SpyContextualLogRecord{
			Level:   "warn",
			Message: msg,
			Args:    args,
			Context: ctx,
		})
	}
}

// ErrorContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	if s.recordCalls {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.errorRecords = append(s.errorRecords, SpyContextualLogRecord{
			Level:   "error",
			Message: msg,
			Args:    args,
			Context: ctx,
		})
	}
}

// GetInfoRecords returns a copy of all info log records.
func (s *ContextualLoggerSpy) GetInfoRecords() []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyContextualLogRecord(nil), s.infoRecords...)
}

// GetErrorRecords returns a copy of all error log records.
func (s *ContextualLoggerSpy) GetErrorRecords() []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyContextualLogRecord(nil), s.errorRecords...)
}

// HasDebugLog checks if a debug log with the specified message exists.
func (s *ContextualLoggerSpy) HasDebugLog(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.debugRecords {
		if record.Message == message {
			return true
		}
	}

	return false
}

// HasInfoLog checks if an info log with the specified message exists.
func (s *ContextualLoggerSpy) HasInfoLog(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.infoRecords {
		if record.Message == message {
			return true
		}
	}

	return false
}

// HasErrorLog checks if an error log with the specified message exists.
func (s *ContextualLoggerSpy) HasErrorLog(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.errorRecords {
		if record.Message == message {
			return true
		}
	}

	return false
}

// Compile-time check to ensure ContextualLoggerSpy implements ContextualLogger interface.
var _ librarystore.ContextualLogger = (*ContextualLoggerSpy)(nil)
