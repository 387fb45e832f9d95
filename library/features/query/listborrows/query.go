package listborrows

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

const (
	queryType = "ListBorrows"
)

// Scope selects which borrow records are listed.
type Scope string

const (
	// ScopeOwn lists the records of the actor.
	ScopeOwn Scope = "own"

	// ScopeAll lists every record. Admins only.
	ScopeAll Scope = "all"

	// ScopeUser lists the records of UserID. Admins only.
	ScopeUser Scope = "user"

	// ScopeUserActive lists the active records of UserID. Admins only.
	ScopeUserActive Scope = "user_active"
)

// Query represents the intent to list borrow records.
type Query struct {
	Scope  Scope
	Actor  core.Principal
	UserID string
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
// userID is only considered for ScopeUser and ScopeUserActive.
func BuildQuery(scope Scope, actor core.Principal, userID string) Query {
	return Query{
		Scope:  scope,
		Actor:  actor,
		UserID: userID,
	}
}
