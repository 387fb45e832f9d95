package addbook

import (
	"context"
	"errors"
	"strings"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
)

// BookStore defines the interface needed by the CommandHandler for store operations.
type BookStore interface {
	FindBookByTitleAndAuthor(ctx context.Context, title string, author string) (librarystore.BookRecord, error)
	NextSequenceValue(ctx context.Context, name string) (int64, error)
	InsertBook(ctx context.Context, book librarystore.BookRecord) error
	UpdateBook(ctx context.Context, book librarystore.BookRecord, expectedVersion int64) error
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Insert or Update, with retry.
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

// Handle adds the copies and returns the created or merged book as persisted.
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

	exists := true

	record, err := h.store.FindBookByTitleAndAuthor(ctx, strings.TrimSpace(command.Title), strings.TrimSpace(command.Author))
	if errors.Is(err, librarystore.ErrRecordNotFound) {
		exists = false
	} else if err != nil {
		return core.Book{}, err
	}

	existing := shell.BookFromRecord(record)

	result := Decide(existing, exists, command)
	if err = result.HasError(); err != nil {
		return core.Book{}, err
	}

	book := result.State

	if exists {
		if err = h.store.UpdateBook(ctx, shell.BookToRecord(book), existing.Version); err != nil {
			return core.Book{}, err
		}

		book.Version = existing.Version + 1

		return book, nil
	}

	if book.ID, err = h.store.NextSequenceValue(ctx, sqlengine.SequenceBookID); err != nil {
		return core.Book{}, err
	}

	if err = h.store.InsertBook(ctx, shell.BookToRecord(book)); err != nil {
		if errors.Is(err, librarystore.ErrDuplicateRecord) {
			// another admin added the same pair in the meantime, the retry merges into it
			return core.Book{}, errors.Join(librarystore.ErrConcurrencyConflict, err)
		}

		return core.Book{}, err
	}

	book.Version = 1

	return book, nil
}
