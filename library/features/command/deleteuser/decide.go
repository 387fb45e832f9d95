package deleteuser

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

const failureReasonActiveBorrows = "Cannot delete user with active borrows. Please ensure all books are returned first."

// Decide implements the business logic to delete a user.
// The state of a successful decision is the user to delete.
//
// Business Rules:
//
//	GIVEN: A registered user and whether they hold active borrows
//	WHEN: DeleteUser command is received
//	THEN: the user is deleted
//	ERROR: "You cannot delete your own account" if the actor targets themselves
//	ERROR: "Cannot delete user with active borrows. ..." if the user holds an active borrow
func Decide(user core.User, hasActiveBorrows bool, command Command) core.DecisionResult[core.User] {
	if err := user.CheckCanBeDeletedBy(command.Actor); err != nil {
		return core.ErrorDecision[core.User](err)
	}

	if hasActiveBorrows {
		return core.ErrorDecision[core.User](core.Conflict(failureReasonActiveBorrows))
	}

	return core.SuccessDecision(user)
}
