package overridebookavailability

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// BookStore defines the interface needed by the CommandHandler for store operations.
type BookStore interface {
	FindBookByID(ctx context.Context, bookID int64) (librarystore.BookRecord, error)
	UpdateBook(ctx context.Context, book librarystore.BookRecord, expectedVersion int64) error
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Persist, with retry.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        BookStore
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
func NewCommandHandler(store BookStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle applies the override and returns the book as persisted.
// If the book already is in the requested state the result is marked idempotent and the stored book is returned unchanged.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Book, shell.HandlerResult, error) {
	var (
		book         core.Book
		isIdempotent bool
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		book, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return core.Book{}, shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return book, shell.NewIdempotentResult(retryMetrics), nil
	}

	return book, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Book, bool, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	record, err := h.store.FindBookByID(ctx, command.BookID)
	if err != nil {
		return core.Book{}, false, shell.NotFoundOr(err, "Book not found")
	}

	book := shell.BookFromRecord(record)

	result := Decide(book, command)
	if result.IsIdempotent() {
		return book, true, nil
	}

	if err = result.HasError(); err != nil {
		return core.Book{}, false, err
	}

	if err = h.store.UpdateBook(ctx, shell.BookToRecord(result.State), book.Version); err != nil {
		return core.Book{}, false, err
	}

	overridden := result.State
	overridden.Version = book.Version + 1

	return overridden, false, nil
}
