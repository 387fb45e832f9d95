package removebookcopies

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Decide implements the business logic to remove copies from a book.
//
// Business Rules:
//
//	GIVEN: A book in the catalog
//	WHEN: RemoveBookCopies command is received
//	THEN: total and available copies shrink by the number of copies
//	ERROR: "Number of copies must be positive" if copies <= 0
//	ERROR: "Cannot remove n copies. Only m copies are available (not borrowed)" if copies > available copies
func Decide(book core.Book, command Command) core.DecisionResult[core.Book] {
	changed, err := book.RemoveCopies(command.Copies)
	if err != nil {
		return core.ErrorDecision[core.Book](err)
	}

	return core.SuccessDecision(changed)
}
