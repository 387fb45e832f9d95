package listusers

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// UserStore defines the interface needed by the QueryHandler for store operations.
type UserStore interface {
	ListUsers(ctx context.Context) (librarystore.UserRecords, error)
}

// QueryHandler loads all users. External wrappers handle all observability concerns.
type QueryHandler struct {
	store UserStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store UserStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query: Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Users, error) {
	records, err := h.store.ListUsers(librarystore.WithEventualConsistency(ctx))
	if err != nil {
		return Users{}, err
	}

	users := make([]core.User, 0, len(records))
	for _, record := range records {
		user := shell.UserFromRecord(record)
		user.PasswordHash = ""
		users = append(users, user)
	}

	return Users{Users: users, Count: len(users)}, nil
}
