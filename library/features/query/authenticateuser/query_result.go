package authenticateuser

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/credentials"
)

// Authenticated represents a successful login: the user without its password hash and the issued token.
type Authenticated struct {
	User  core.User
	Token credentials.Token
}
