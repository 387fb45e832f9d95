package registeruser

const (
	commandType = "RegisterUser"
)

// Command represents the intent to register a new user.
// An empty Role registers a member.
type Command struct {
	UserID   string
	Name     string
	Email    string
	Password string
	Role     string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID string, name string, email string, password string, role string) Command {
	return Command{
		UserID:   userID,
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}
}
