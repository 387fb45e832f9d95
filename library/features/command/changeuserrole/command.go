package changeuserrole

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

const (
	commandType = "ChangeUserRole"
)

// Command represents the intent of an admin to change the role of a user.
type Command struct {
	UserID  string
	NewRole string
	Actor   core.Principal
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID string, newRole string, actor core.Principal) Command {
	return Command{
		UserID:  userID,
		NewRole: newRole,
		Actor:   actor,
	}
}
