package shell

import (
	"context"
)

// Query represents the contract for all query types of the library.
// Each query encapsulates the parameters needed to read one view of the catalog, the ledger, or the user directory.
// The QueryType method enables polymorphic handling and observability instrumentation.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that process queries with pure business logic.
// Handlers read records from the store and map them into the query result.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
// This interface is designed to be wrapped with observability decorators for complete functionality.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Command represents the contract for all command types of the library.
// Each command encapsulates the intent and parameters needed to execute a specific business operation.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete command workflow: loading records, deciding, and persisting with compare-and-swap.
// The generic parameters C and R ensure type safety between commands and the state they produce,
// e.g. the book after copies were added or the created borrow record.
// Handlers also return HandlerResult containing business outcomes (idempotency) and execution metadata (retry info).
// This interface is designed to be wrapped with observability decorators for complete functionality.
type CoreCommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (R, HandlerResult, error)
}
