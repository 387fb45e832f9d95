package reconcilebookcopies

const (
	commandType = "ReconcileBookCopies"
)

// Command represents the intent to align all book counters with the borrow ledger.
type Command struct{}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand() Command {
	return Command{}
}
