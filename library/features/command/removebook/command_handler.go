package removebook

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// BookStore defines the interface needed by the CommandHandler for store operations.
type BookStore interface {
	FindBookByID(ctx context.Context, bookID int64) (librarystore.BookRecord, error)
	DeleteBook(ctx context.Context, bookID int64, expectedVersion int64) error
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Delete, with retry.
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

// Handle deletes the book and returns it as it was last read.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Book, shell.HandlerResult, error) {
	var book core.Book

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		book, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return core.Book{}, shell.NewErrorResult(retryMetrics), err
	}

	return book, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Book, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	record, err := h.store.FindBookByID(ctx, command.BookID)
	if err != nil {
		return core.Book{}, shell.NotFoundOr(err, "Book not found")
	}

	result := Decide(shell.BookFromRecord(record), command)
	if err = result.HasError(); err != nil {
		return core.Book{}, err
	}

	if err = h.store.DeleteBook(ctx, record.ID, record.Version); err != nil {
		return core.Book{}, err
	}

	return result.State, nil
}
