package listborrows

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Borrows represents the query result containing the selected borrow records.
type Borrows struct {
	Borrows []core.BorrowRecord
	Count   int
}
