package addbookcopies

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Decide implements the business logic to add copies to a book.
//
// Business Rules:
//
//	GIVEN: A book in the catalog
//	WHEN: AddBookCopies command is received
//	THEN: total and available copies grow by the number of copies and the book becomes available
//	ERROR: "Number of copies must be positive" if copies <= 0
func Decide(book core.Book, command Command) core.DecisionResult[core.Book] {
	changed, err := book.AddCopies(command.Copies)
	if err != nil {
		return core.ErrorDecision[core.Book](err)
	}

	return core.SuccessDecision(changed)
}
