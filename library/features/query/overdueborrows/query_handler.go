package overdueborrows

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// ErrNonPositiveThreshold is returned when the overdue threshold is zero or negative.
var ErrNonPositiveThreshold = errors.New("overdue threshold must be positive")

// BorrowStore defines the interface needed by the QueryHandler for store operations.
type BorrowStore interface {
	ListOverdueBorrows(ctx context.Context, cutoff time.Time) (librarystore.OverdueBorrowRecords, error)
}

// QueryHandler loads the overdue borrows and projects them. External wrappers handle all observability concerns.
type QueryHandler struct {
	store     BorrowStore
	threshold time.Duration
	now       func() time.Time
}

// Option defines a functional option for configuring QueryHandler.
type Option func(*QueryHandler) error

// WithThreshold sets how long a copy may stay on loan before the borrow is overdue.
func WithThreshold(threshold time.Duration) Option {
	return func(h *QueryHandler) error {
		if threshold <= 0 {
			return ErrNonPositiveThreshold
		}

		h.threshold = threshold

		return nil
	}
}

// WithClock replaces the wall clock, which is mostly useful in tests.
func WithClock(now func() time.Time) Option {
	return func(h *QueryHandler) error {
		h.now = now
		return nil
	}
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency and options.
func NewQueryHandler(store BorrowStore, opts ...Option) (QueryHandler, error) {
	h := QueryHandler{
		store:     store,
		threshold: core.DefaultOverdueThreshold,
		now:       time.Now,
	}

	for _, opt := range opts {
		if err := opt(&h); err != nil {
			return QueryHandler{}, err
		}
	}

	return h, nil
}

// Handle executes the query: Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (OverdueBorrows, error) {
	now := h.now()

	records, err := h.store.ListOverdueBorrows(librarystore.WithEventualConsistency(ctx), now.Add(-h.threshold))
	if err != nil {
		return OverdueBorrows{}, err
	}

	return ProjectOverdueBorrows(records, now), nil
}
