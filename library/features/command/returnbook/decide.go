package returnbook

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Returned is the state a successful return persists.
type Returned struct {
	Borrow core.BorrowRecord
	Book   core.Book
}

// Decide implements the business logic to return a borrowed copy.
// book is only meaningful if bookExists is true.
//
// Business Rules:
//
//	GIVEN: A borrow record and its book
//	WHEN: ReturnBook command is received
//	THEN: the record is marked returned, one copy moves back to the shelf and the book becomes available
//	ERROR: "Book already returned" if the record is not active
//	ERROR: "Cannot return someone else's book" if the actor is neither the borrower nor an admin
//	ERROR: "Book not found" if the book was deleted in the meantime
func Decide(borrow core.BorrowRecord, book core.Book, bookExists bool, command Command) core.DecisionResult[Returned] {
	returned, err := borrow.MarkReturned(command.Actor, command.ReturnedAt)
	if err != nil {
		return core.ErrorDecision[Returned](err)
	}

	if !bookExists {
		return core.ErrorDecision[Returned](core.NotFound("Book not found"))
	}

	return core.SuccessDecision(Returned{
		Borrow: returned,
		Book:   book.ReturnCopy(),
	})
}
