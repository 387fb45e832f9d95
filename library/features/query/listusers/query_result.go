package listusers

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Users represents the query result. Password hashes are not included.
type Users struct {
	Users []core.User
	Count int
}
