package deleteuser

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// UserStore defines the interface needed by the CommandHandler for store operations.
type UserStore interface {
	FindUserByID(ctx context.Context, userID string) (librarystore.UserRecord, error)
	ListBorrows(ctx context.Context, filter librarystore.BorrowFilter) (librarystore.BorrowRecords, error)
	DeleteUser(ctx context.Context, userID string) error
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Delete, with retry.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        UserStore
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
func NewCommandHandler(store UserStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle deletes the user and returns it as it was last read.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.User, shell.HandlerResult, error) {
	var user core.User

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		user, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return core.User{}, shell.NewErrorResult(retryMetrics), err
	}

	return user, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.User, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	userID, err := shell.ParseID(command.UserID, "user")
	if err != nil {
		return core.User{}, err
	}

	record, err := h.store.FindUserByID(ctx, userID)
	if err != nil {
		return core.User{}, shell.NotFoundOr(err, "User not found")
	}

	activeBorrows, err := h.store.ListBorrows(ctx, librarystore.ActiveBorrowsOfUser(userID))
	if err != nil {
		return core.User{}, err
	}

	result := Decide(shell.UserFromRecord(record), len(activeBorrows) > 0, command)
	if err = result.HasError(); err != nil {
		return core.User{}, err
	}

	if err = h.store.DeleteUser(ctx, userID); err != nil {
		return core.User{}, err
	}

	return result.State, nil
}
