package removebookcopies

const (
	commandType = "RemoveBookCopies"
)

// Command represents the intent to take copies off the shelf of a book.
type Command struct {
	BookID int64
	Copies int64
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID int64, copies int64) Command {
	return Command{
		BookID: bookID,
		Copies: copies,
	}
}
