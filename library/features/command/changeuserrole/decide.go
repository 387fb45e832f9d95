package changeuserrole

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// RoleChange is the state of a successful decision: the user with the new role and the role it had before.
type RoleChange struct {
	User    core.User
	OldRole core.Role
}

// Decide implements the business logic to change the role of a user.
//
// Business Rules:
//
//	GIVEN: A registered user
//	WHEN: ChangeUserRole command is received
//	THEN: the user gets the new role
//	ERROR: "Invalid role. Must be one of: [member, admin]" if the role is unknown
//	ERROR: "You cannot change your own role" if the actor targets themselves
//	ERROR: "User already has role: {role}" if nothing would change
func Decide(user core.User, command Command) core.DecisionResult[RoleChange] {
	newRole, err := core.ParseRole(command.NewRole)
	if err != nil {
		return core.ErrorDecision[RoleChange](err)
	}

	changed, err := user.ChangeRole(newRole, command.Actor)
	if err != nil {
		return core.ErrorDecision[RoleChange](err)
	}

	return core.SuccessDecision(RoleChange{User: changed, OldRole: user.Role})
}
