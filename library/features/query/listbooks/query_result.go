package listbooks

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Books represents the query result containing the catalog.
type Books struct {
	Books []core.Book
	Count int
}
