package changeuserrole

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// UserStore defines the interface needed by the CommandHandler for store operations.
type UserStore interface {
	FindUserByID(ctx context.Context, userID string) (librarystore.UserRecord, error)
	UpdateUserRole(ctx context.Context, userID string, expectedRole string, newRole string) error
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Update, with retry.
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

// Handle changes the role and returns the user together with its previous role.
func (h CommandHandler) Handle(ctx context.Context, command Command) (RoleChange, shell.HandlerResult, error) {
	var change RoleChange

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		change, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return RoleChange{}, shell.NewErrorResult(retryMetrics), err
	}

	return change, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (RoleChange, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	userID, err := shell.ParseID(command.UserID, "user")
	if err != nil {
		return RoleChange{}, err
	}

	record, err := h.store.FindUserByID(ctx, userID)
	if err != nil {
		return RoleChange{}, shell.NotFoundOr(err, "User not found")
	}

	result := Decide(shell.UserFromRecord(record), command)
	if err = result.HasError(); err != nil {
		return RoleChange{}, err
	}

	change := result.State
	if err = h.store.UpdateUserRole(ctx, userID, change.OldRole.String(), change.User.Role.String()); err != nil {
		return RoleChange{}, err
	}

	return change, nil
}
