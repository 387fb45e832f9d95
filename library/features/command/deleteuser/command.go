package deleteuser

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

const (
	commandType = "DeleteUser"
)

// Command represents the intent of an admin to delete a user.
type Command struct {
	UserID string
	Actor  core.Principal
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID string, actor core.Principal) Command {
	return Command{
		UserID: userID,
		Actor:  actor,
	}
}
