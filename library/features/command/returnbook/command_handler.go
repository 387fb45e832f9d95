package returnbook

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// LibraryStore defines the interface needed by the CommandHandler for store operations.
type LibraryStore interface {
	FindBorrowByID(ctx context.Context, borrowID string) (librarystore.BorrowRecord, error)
	FindBookByID(ctx context.Context, bookID int64) (librarystore.BookRecord, error)
	UpdateBook(ctx context.Context, book librarystore.BookRecord, expectedVersion int64) error
	ApplyCopyDelta(ctx context.Context, bookID int64, delta librarystore.CopyDelta) error
	MarkBorrowReturned(ctx context.Context, borrowID string, returnedAt time.Time) error
}

// CommandHandler orchestrates the command processing workflow:
// Load -> Decide -> Update book -> Mark record returned, with retry and compensation.
type CommandHandler struct {
	store            LibraryStore
	retryOptions     []shell.RetryOption
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLogging sets the logger that reports failed compensations.
func WithLogging(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithContextualLogging sets the contextual logger that reports failed compensations.
// It takes precedence over the basic logger.
func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(h *CommandHandler) {
		h.contextualLogger = logger
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

// Handle returns the copy and returns the finished borrow record.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.BorrowRecord, shell.HandlerResult, error) {
	var borrow core.BorrowRecord

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		borrow, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return core.BorrowRecord{}, shell.NewErrorResult(retryMetrics), err
	}

	return borrow, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.BorrowRecord, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	borrowID, err := shell.ParseID(command.BorrowID, "borrow")
	if err != nil {
		return core.BorrowRecord{}, err
	}

	borrowRecord, err := h.store.FindBorrowByID(ctx, borrowID)
	if err != nil {
		return core.BorrowRecord{}, shell.NotFoundOr(err, "Borrow record not found")
	}

	bookExists := true

	bookRecord, err := h.store.FindBookByID(ctx, borrowRecord.BookID)
	if errors.Is(err, librarystore.ErrRecordNotFound) {
		bookExists = false
	} else if err != nil {
		return core.BorrowRecord{}, err
	}

	book := shell.BookFromRecord(bookRecord)

	result := Decide(shell.BorrowFromRecord(borrowRecord), book, bookExists, command)
	if err = result.HasError(); err != nil {
		return core.BorrowRecord{}, err
	}

	returned := result.State

	if err = h.store.UpdateBook(ctx, shell.BookToRecord(returned.Book), book.Version); err != nil {
		return core.BorrowRecord{}, err
	}

	if err = h.store.MarkBorrowReturned(ctx, borrowID, *returned.Borrow.ReturnedAt); err != nil {
		// on a conflict a concurrent return of the same record won, the retry reports it as already returned
		h.compensate(ctx, book, returned.Book)

		return core.BorrowRecord{}, err
	}

	return returned.Borrow, nil
}

// compensate reverts the counter change from before to after with one atomic delta update,
// also when the request context was canceled meanwhile.
func (h CommandHandler) compensate(ctx context.Context, before core.Book, after core.Book) {
	delta := librarystore.CopyDelta{
		Available: before.AvailableCopies - after.AvailableCopies,
		Borrowed:  before.BorrowedCopies - after.BorrowedCopies,
	}

	if delta == (librarystore.CopyDelta{}) {
		return
	}

	if err := h.store.ApplyCopyDelta(context.WithoutCancel(ctx), before.ID, delta); err != nil {
		shell.LogCompensationFailed(ctx, h.logger, h.contextualLogger, before.ID, err)
	}
}
