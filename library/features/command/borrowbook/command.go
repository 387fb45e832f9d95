package borrowbook

import (
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

const (
	commandType = "BorrowBook"
)

// Command represents the intent of a user to borrow one copy of a book.
type Command struct {
	BorrowID   string
	UserID     string
	BookID     int64
	BorrowedAt core.Timestamp
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// borrowID becomes the ID of the new borrow record.
func BuildCommand(borrowID string, userID string, bookID int64, borrowedAt time.Time) Command {
	return Command{
		BorrowID:   borrowID,
		UserID:     userID,
		BookID:     bookID,
		BorrowedAt: core.ToTimestamp(borrowedAt),
	}
}
