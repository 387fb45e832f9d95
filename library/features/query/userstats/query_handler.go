package userstats

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// UserStore defines the interface needed by the QueryHandler for store operations.
type UserStore interface {
	UserStats(ctx context.Context) (librarystore.UserStats, error)
}

// QueryHandler loads the user aggregates. External wrappers handle all observability concerns.
type QueryHandler struct {
	store UserStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store UserStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the query: Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Stats, error) {
	stats, err := h.store.UserStats(librarystore.WithEventualConsistency(ctx))
	if err != nil {
		return Stats{}, err
	}

	return ProjectStats(stats), nil
}
