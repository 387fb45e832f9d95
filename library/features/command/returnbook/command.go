package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to return the copy of a borrow record.
type Command struct {
	BorrowID   string
	Actor      core.Principal
	ReturnedAt core.Timestamp
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowID string, actor core.Principal, returnedAt time.Time) Command {
	return Command{
		BorrowID:   borrowID,
		Actor:      actor,
		ReturnedAt: core.ToTimestamp(returnedAt),
	}
}
