package addbook

const (
	commandType = "AddBook"
)

// Command represents the intent to add copies of a title to the catalog.
// Callers without an explicit number of copies use core.DefaultCopiesOnAdd.
type Command struct {
	Title  string
	Author string
	Copies int64
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(title string, author string, copies int64) Command {
	return Command{
		Title:  title,
		Author: author,
		Copies: copies,
	}
}
