package listborrows

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// LibraryStore defines the interface needed by the QueryHandler for store operations.
type LibraryStore interface {
	FindUserByID(ctx context.Context, userID string) (librarystore.UserRecord, error)
	ListBorrows(ctx context.Context, filter librarystore.BorrowFilter) (librarystore.BorrowRecords, error)
}

// QueryHandler resolves the scope into a filter and loads the borrow records.
// External wrappers handle all observability concerns.
type QueryHandler struct {
	store LibraryStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store LibraryStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query: Authorize -> Resolve filter -> Load.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Borrows, error) {
	ctx = librarystore.WithEventualConsistency(ctx)

	filter, err := h.filterFor(ctx, query)
	if err != nil {
		return Borrows{}, err
	}

	records, err := h.store.ListBorrows(ctx, filter)
	if err != nil {
		return Borrows{}, err
	}

	borrows := shell.BorrowsFromRecords(records)

	return Borrows{Borrows: borrows, Count: len(borrows)}, nil
}

func (h QueryHandler) filterFor(ctx context.Context, query Query) (librarystore.BorrowFilter, error) {
	if query.Scope == ScopeOwn {
		return librarystore.BorrowsOfUser(query.Actor.UserID), nil
	}

	if err := query.Actor.RequireAdmin(); err != nil {
		return librarystore.BorrowFilter{}, err
	}

	switch query.Scope {
	case ScopeAll:
		return librarystore.AllBorrows(), nil

	case ScopeUser, ScopeUserActive:
		userID, err := shell.ParseID(query.UserID, "user")
		if err != nil {
			return librarystore.BorrowFilter{}, err
		}

		if _, err = h.store.FindUserByID(ctx, userID); err != nil {
			return librarystore.BorrowFilter{}, shell.NotFoundOr(err, "User not found")
		}

		if query.Scope == ScopeUserActive {
			return librarystore.ActiveBorrowsOfUser(userID), nil
		}

		return librarystore.BorrowsOfUser(userID), nil

	default:
		return librarystore.BorrowFilter{}, fmt.Errorf("unknown borrow listing scope %q", query.Scope)
	}
}
