package addbook

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Decide implements the business logic to add copies of a title to the catalog.
// existing is only meaningful if exists is true.
//
// Business Rules:
//
//	GIVEN: The book with the same title and author, if there is one
//	WHEN: AddBook command is received
//	THEN: the copies are merged into the existing book, which becomes available again
//	THEN: or a new book with all copies on the shelf is created, its ID is assigned on insert
//	ERROR: "Number of copies must not be negative" if copies < 0
//	ERROR: "Title must not be empty" or "Author must not be empty" for blank values
func Decide(existing core.Book, exists bool, command Command) core.DecisionResult[core.Book] {
	if exists {
		merged, err := existing.MergeCopies(command.Copies)
		if err != nil {
			return core.ErrorDecision[core.Book](err)
		}

		return core.SuccessDecision(merged)
	}

	created, err := core.NewBook(0, command.Title, command.Author, command.Copies)
	if err != nil {
		return core.ErrorDecision[core.Book](err)
	}

	return core.SuccessDecision(created)
}
