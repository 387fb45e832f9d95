package getbook

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// BookStore defines the interface needed by the QueryHandler for store operations.
type BookStore interface {
	FindBookByID(ctx context.Context, bookID int64) (librarystore.BookRecord, error)
}

// QueryHandler loads one book. External wrappers handle all observability concerns.
type QueryHandler struct {
	store BookStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store BookStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the book or a NotFound error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Book, error) {
	record, err := h.store.FindBookByID(librarystore.WithEventualConsistency(ctx), query.BookID)
	if err != nil {
		return core.Book{}, shell.NotFoundOr(err, "Book not found")
	}

	return shell.BookFromRecord(record), nil
}
