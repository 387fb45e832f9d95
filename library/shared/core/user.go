package core

import (
	"net/mail"
	"strings"
)

// Role is the permission level of a user.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Password bounds accepted at registration. bcrypt cannot hash more than 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// ParseRole validates a role name.
func ParseRole(role string) (Role, error) {
	switch Role(role) {
	case RoleMember, RoleAdmin:
		return Role(role), nil
	default:
		return "", InvalidArgument("Invalid role. Must be one of: [%s, %s]", RoleMember, RoleAdmin)
	}
}

func (r Role) String() string {
	return string(r)
}

// User is a registered member or admin of the library.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}

// ValidateRegistration checks the user-supplied registration data.
func ValidateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return InvalidArgument("Name must not be empty")
	}

	if parsed, err := mail.ParseAddress(email); err != nil || parsed.Address != email {
		return InvalidArgument("Invalid email address")
	}

	if len(password) < MinPasswordLength {
		return InvalidArgument("Password must be at least %d characters long", MinPasswordLength)
	}

	if len(password) > MaxPasswordBytes {
		return InvalidArgument("Password must be at most %d bytes long", MaxPasswordBytes)
	}

	return nil
}

// ChangeRole switches the role of the user. Principals cannot change their own role.
func (u User) ChangeRole(newRole Role, actor Principal) (User, error) {
	if actor.UserID == u.ID {
		return User{}, InvalidArgument("You cannot change your own role")
	}

	if u.Role == newRole {
		return User{}, Conflict("User already has role: %s", newRole)
	}

	u.Role = newRole

	return u, nil
}

// CheckCanBeDeletedBy fails when the actor tries to delete their own account.
func (u User) CheckCanBeDeletedBy(actor Principal) error {
	if actor.UserID == u.ID {
		return InvalidArgument("You cannot delete your own account")
	}

	return nil
}
