package reconcilebookcopies

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// LibraryStore defines the interface needed by the CommandHandler for store operations.
type LibraryStore interface {
	ListBooks(ctx context.Context) (librarystore.BookRecords, error)
	CountActiveBorrowsByBook(ctx context.Context) ([]librarystore.ActiveBorrowCount, error)
	UpdateBook(ctx context.Context, book librarystore.BookRecord, expectedVersion int64) error
}

// Correction describes the counters of one book before and after the reconciliation.
type Correction struct {
	Before core.Book
	After  core.Book
}

// Report summarizes a reconciliation pass.
type Report struct {
	CheckedBooks int
	Corrections  []Correction
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide per book -> Update, with retry.
// A concurrency conflict on any book restarts the pass; books corrected before are idempotent then.
type CommandHandler struct {
	store        LibraryStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store LibraryStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle runs the reconciliation pass. The result is idempotent when no book needed a correction.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Report, shell.HandlerResult, error) {
	var report Report

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		report, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Report{}, shell.NewErrorResult(retryMetrics), err
	}

	if len(report.Corrections) == 0 {
		return report, shell.NewIdempotentResult(retryMetrics), nil
	}

	return report, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, _ Command) (Report, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	// Books are read before the ledger. A borrow or return landing in between bumps the book version,
	// so the CAS below fails and the pass restarts instead of writing counts older than the book.
	books, err := h.store.ListBooks(ctx)
	if err != nil {
		return Report{}, err
	}

	counts, err := h.store.CountActiveBorrowsByBook(ctx)
	if err != nil {
		return Report{}, err
	}

	activeBorrows := make(map[int64]int64, len(counts))
	for _, count := range counts {
		activeBorrows[count.BookID] = count.Count
	}

	report := Report{CheckedBooks: len(books), Corrections: make([]Correction, 0)}

	for _, record := range books {
		book := shell.BookFromRecord(record)

		result := Decide(book, activeBorrows[book.ID])
		if !result.HasStateToPersist() {
			continue
		}

		if err = h.store.UpdateBook(ctx, shell.BookToRecord(result.State), book.Version); err != nil {
			return Report{}, err
		}

		after := result.State
		after.Version = book.Version + 1
		report.Corrections = append(report.Corrections, Correction{Before: book, After: after})
	}

	return report, nil
}
