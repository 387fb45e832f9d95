package removebook

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Decide implements the business logic to delete a book from the catalog.
// The state of a successful decision is the book to delete.
//
// Business Rules:
//
//	GIVEN: A book in the catalog
//	WHEN: RemoveBook command is received
//	THEN: the book is deleted
//	ERROR: "Cannot discontinue book. n copies are currently borrowed" if copies are on loan
func Decide(book core.Book, _ Command) core.DecisionResult[core.Book] {
	if err := book.CheckCanBeRemoved(); err != nil {
		return core.ErrorDecision[core.Book](err)
	}

	return core.SuccessDecision(book)
}
