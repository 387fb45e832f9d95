package discontinuebook

const (
	commandType = "DiscontinueBook"
)

// Command represents the intent to discontinue a book.
type Command struct {
	BookID int64
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID int64) Command {
	return Command{
		BookID: bookID,
	}
}
