package registeruser

import (
	"strings"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Decide implements the business logic to register a user.
// The state of a successful decision is the user without password hash, hashing is up to the caller.
//
// Business Rules:
//
//	GIVEN: Whether the email is registered already and whether admins may sign up
//	WHEN: RegisterUser command is received
//	THEN: a user with the requested role, member by default, is registered
//	ERROR: "Name must not be empty", "Invalid email address" or "Password must be at least 6 characters long"
//	ERROR: "Invalid role. Must be one of: [member, admin]" for unknown roles
//	ERROR: "Admin signup is not allowed" if an admin registers while admin signup is disabled
//	ERROR: "Email already registered" if the email is taken
func Decide(emailTaken bool, adminSignupAllowed bool, command Command) core.DecisionResult[core.User] {
	if err := core.ValidateRegistration(command.Name, command.Email, command.Password); err != nil {
		return core.ErrorDecision[core.User](err)
	}

	role := core.RoleMember

	if command.Role != "" {
		parsed, err := core.ParseRole(command.Role)
		if err != nil {
			return core.ErrorDecision[core.User](err)
		}

		role = parsed
	}

	if role == core.RoleAdmin && !adminSignupAllowed {
		return core.ErrorDecision[core.User](core.PermissionDenied("Admin signup is not allowed"))
	}

	if emailTaken {
		return core.ErrorDecision[core.User](core.Conflict("Email already registered"))
	}

	return core.SuccessDecision(core.User{
		ID:    command.UserID,
		Name:  strings.TrimSpace(command.Name),
		Email: command.Email,
		Role:  role,
	})
}
