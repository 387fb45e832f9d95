package overdueborrows

import (
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// ProjectOverdueBorrows maps the joined overdue records into listing rows as seen at now.
func ProjectOverdueBorrows(records librarystore.OverdueBorrowRecords, now time.Time) OverdueBorrows {
	result := OverdueBorrows{Borrows: make([]OverdueBorrow, 0, len(records))}

	for _, record := range records {
		borrow := shell.BorrowFromRecord(record.BorrowRecord)

		result.Borrows = append(result.Borrows, OverdueBorrow{
			BorrowID:    borrow.ID,
			UserID:      borrow.UserID,
			UserName:    orUnknown(record.UserName),
			UserEmail:   orUnknown(record.UserEmail),
			BookID:      borrow.BookID,
			BookTitle:   orUnknown(record.BookTitle),
			BookAuthor:  orUnknown(record.BookAuthor),
			BorrowedAt:  borrow.BorrowedAt,
			DaysOverdue: borrow.DaysOverdue(now),
		})
	}

	result.Count = len(result.Borrows)

	return result
}

func orUnknown(value *string) string {
	if value == nil {
		return core.UnknownPlaceholder
	}

	return *value
}
