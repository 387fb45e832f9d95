package authenticateuser

import (
	"context"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/credentials"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

const failureReasonInvalidCredentials = "Invalid credentials"

// UserStore defines the interface needed by the QueryHandler for store operations.
type UserStore interface {
	FindUsersByEmailOrName(ctx context.Context, identifier string) (librarystore.UserRecords, error)
}

// Authenticator verifies passwords and issues tokens.
type Authenticator interface {
	VerifyPassword(hash string, password string) bool
	IssueToken(principal core.Principal) (credentials.Token, error)
}

// QueryHandler checks the credentials and issues an access token.
// External wrappers handle all observability concerns.
type QueryHandler struct {
	store         UserStore
	authenticator Authenticator
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store UserStore, authenticator Authenticator) QueryHandler {
	return QueryHandler{
		store:         store,
		authenticator: authenticator,
	}
}

// Handle returns the authenticated user and its token, or an Unauthenticated error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Authenticated, error) {
	if query.Identifier == "" || query.Password == "" {
		return Authenticated{}, core.Unauthenticated(failureReasonInvalidCredentials)
	}

	candidates, err := h.store.FindUsersByEmailOrName(librarystore.WithStrongConsistency(ctx), query.Identifier)
	if err != nil {
		return Authenticated{}, err
	}

	for _, candidate := range candidates {
		if !h.authenticator.VerifyPassword(candidate.PasswordHash, query.Password) {
			continue
		}

		user := shell.UserFromRecord(candidate)
		user.PasswordHash = ""

		token, tokenErr := h.authenticator.IssueToken(core.Principal{UserID: user.ID, Role: user.Role})
		if tokenErr != nil {
			return Authenticated{}, tokenErr
		}

		return Authenticated{User: user, Token: token}, nil
	}

	return Authenticated{}, core.Unauthenticated(failureReasonInvalidCredentials)
}
