package borrowbook

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

const failureReasonAlreadyBorrowed = "You already have this book borrowed"

// Decide implements the business logic to lend one copy of a book to a user.
// The state of a successful decision is the book with one copy less on the shelf.
//
// Business Rules:
//
//	GIVEN: A book in the catalog and whether the user holds an active borrow of it
//	WHEN: BorrowBook command is received
//	THEN: one copy moves from available to borrowed
//	ERROR: "No copies of this book are currently available" if no copy is on the shelf
//	ERROR: "You already have this book borrowed" if the user holds an active borrow of the book
func Decide(book core.Book, hasActiveBorrow bool, _ Command) core.DecisionResult[core.Book] {
	borrowed, err := book.BorrowCopy()
	if err != nil {
		return core.ErrorDecision[core.Book](err)
	}

	if hasActiveBorrow {
		return core.ErrorDecision[core.Book](core.Conflict(failureReasonAlreadyBorrowed))
	}

	return core.SuccessDecision(borrowed)
}
