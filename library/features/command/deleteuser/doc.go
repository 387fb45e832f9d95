// Package deleteuser implements the Delete User use case.
//
// An admin deletes another user's account. Users holding an active borrow cannot be deleted, and the
// delete statement itself re-checks that no active borrow exists, so a borrow racing the delete
// either wins and blocks the delete, or finds the user gone. Returned borrow records are kept.
package deleteuser
