package borrowbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// LibraryStore defines the interface needed by the CommandHandler for store operations.
type LibraryStore interface {
	FindBookByID(ctx context.Context, bookID int64) (librarystore.BookRecord, error)
	FindActiveBorrow(ctx context.Context, userID string, bookID int64) (librarystore.BorrowRecord, error)
	UpdateBook(ctx context.Context, book librarystore.BookRecord, expectedVersion int64) error
	ApplyCopyDelta(ctx context.Context, bookID int64, delta librarystore.CopyDelta) error
	InsertBorrow(ctx context.Context, borrow librarystore.BorrowRecord) error
}

// putCopyBack undoes the book update of a borrow whose record could not be inserted.
var putCopyBack = librarystore.CopyDelta{Available: 1, Borrowed: -1}

// CommandHandler orchestrates the command processing workflow:
// Load -> Decide -> Update book -> Insert borrow record, with retry and compensation.
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

// Handle lends the copy and returns the new active borrow record.
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

	record, err := h.store.FindBookByID(ctx, command.BookID)
	if err != nil {
		return core.BorrowRecord{}, shell.NotFoundOr(err, "Book not found")
	}

	hasActiveBorrow, err := h.hasActiveBorrow(ctx, command)
	if err != nil {
		return core.BorrowRecord{}, err
	}

	book := shell.BookFromRecord(record)

	result := Decide(book, hasActiveBorrow, command)
	if err = result.HasError(); err != nil {
		return core.BorrowRecord{}, err
	}

	if err = h.store.UpdateBook(ctx, shell.BookToRecord(result.State), book.Version); err != nil {
		return core.BorrowRecord{}, err
	}

	borrow := core.NewBorrowRecord(command.BorrowID, command.UserID, command.BookID, command.BorrowedAt)

	if err = h.store.InsertBorrow(ctx, shell.BorrowToRecord(borrow)); err != nil {
		h.compensate(ctx, command.BookID)

		if errors.Is(err, librarystore.ErrDuplicateRecord) {
			return core.BorrowRecord{}, core.Conflict(failureReasonAlreadyBorrowed)
		}

		return core.BorrowRecord{}, err
	}

	return borrow, nil
}

func (h CommandHandler) hasActiveBorrow(ctx context.Context, command Command) (bool, error) {
	_, err := h.store.FindActiveBorrow(ctx, command.UserID, command.BookID)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, librarystore.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

// compensate puts the copy back on the shelf, also when the request context was canceled meanwhile.
func (h CommandHandler) compensate(ctx context.Context, bookID int64) {
	if err := h.store.ApplyCopyDelta(context.WithoutCancel(ctx), bookID, putCopyBack); err != nil {
		shell.LogCompensationFailed(ctx, h.logger, h.contextualLogger, bookID, err)
	}
}
