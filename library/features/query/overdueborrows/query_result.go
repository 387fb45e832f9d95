package overdueborrows

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// OverdueBorrow is one row of the overdue listing.
type OverdueBorrow struct {
	BorrowID    string
	UserID      string
	UserName    string
	UserEmail   string
	BookID      int64
	BookTitle   string
	BookAuthor  string
	BorrowedAt  core.Timestamp
	DaysOverdue int64
}

// OverdueBorrows represents the query result, the longest overdue borrow first.
type OverdueBorrows struct {
	Borrows []OverdueBorrow
	Count   int
}
