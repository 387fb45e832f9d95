package shell

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// ParseID validates that id is a UUID and returns it in its canonical form.
// entity names the record in the error message, e.g. "user" gives "Invalid user ID format".
func ParseID(id string, entity string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", core.InvalidArgument("Invalid %s ID format", entity)
	}

	return parsed.String(), nil
}

// NewID generates a time-ordered UUID for a new record.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}
