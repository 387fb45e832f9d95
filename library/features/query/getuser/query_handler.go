package getuser

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// UserStore defines the interface needed by the QueryHandler for store operations.
type UserStore interface {
	FindUserByID(ctx context.Context, userID string) (librarystore.UserRecord, error)
}

// QueryHandler loads one user. External wrappers handle all observability concerns.
type QueryHandler struct {
	store UserStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store UserStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the user without its password hash.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.User, error) {
	userID, err := shell.ParseID(query.UserID, "user")
	if err != nil {
		return core.User{}, err
	}

	record, err := h.store.FindUserByID(ctx, userID)
	if err != nil {
		return core.User{}, shell.NotFoundOr(err, "User not found")
	}

	user := shell.UserFromRecord(record)
	user.PasswordHash = ""

	return user, nil
}
