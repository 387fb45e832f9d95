package listbooks

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// BookStore defines the interface needed by the QueryHandler for store operations.
type BookStore interface {
	ListBooks(ctx context.Context) (librarystore.BookRecords, error)
}

// QueryHandler loads the catalog and projects it. External wrappers handle all observability concerns.
type QueryHandler struct {
	store BookStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store BookStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query: Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Books, error) {
	records, err := h.store.ListBooks(librarystore.WithEventualConsistency(ctx))
	if err != nil {
		return Books{}, err
	}

	return ProjectBooks(records), nil
}
