package registeruser

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// UserStore defines the interface needed by the CommandHandler for store operations.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (librarystore.UserRecord, error)
	InsertUser(ctx context.Context, user librarystore.UserRecord) error
}

// PasswordHasher turns a plain password into the hash that is stored.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// CommandHandler orchestrates the command processing workflow: Load -> Decide -> Hash -> Insert.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store              UserStore
	hasher             PasswordHasher
	adminSignupAllowed bool
	retryOptions       []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithAdminSignup allows or forbids registering with the admin role. It is forbidden by default.
func WithAdminSignup(allowed bool) Option {
	return func(h *CommandHandler) {
		h.adminSignupAllowed = allowed
	}
}

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store UserStore, hasher PasswordHasher, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:  store,
		hasher: hasher,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle registers the user and returns it, including the password hash.
// A concurrent registration of the same email is reported as a conflict, not retried.
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

	emailTaken := true

	_, err := h.store.FindUserByEmail(ctx, command.Email)
	if errors.Is(err, librarystore.ErrRecordNotFound) {
		emailTaken = false
	} else if err != nil {
		return core.User{}, err
	}

	result := Decide(emailTaken, h.adminSignupAllowed, command)
	if err = result.HasError(); err != nil {
		return core.User{}, err
	}

	user := result.State

	if user.PasswordHash, err = h.hasher.HashPassword(command.Password); err != nil {
		return core.User{}, err
	}

	if err = h.store.InsertUser(ctx, shell.UserToRecord(user)); err != nil {
		if errors.Is(err, librarystore.ErrDuplicateRecord) {
			return core.User{}, core.Conflict("Email already registered")
		}

		return core.User{}, err
	}

	return user, nil
}
