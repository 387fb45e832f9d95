package overridebookavailability

const (
	commandType = "OverrideBookAvailability"
)

// Command represents the intent to force a book available or unavailable.
type Command struct {
	BookID    int64
	Available bool
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID int64, available bool) Command {
	return Command{
		BookID:    bookID,
		Available: available,
	}
}
