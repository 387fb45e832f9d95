package discontinuebook

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Decide implements the business logic to discontinue a book.
//
// Business Rules:
//
//	GIVEN: A book in the catalog
//	WHEN: DiscontinueBook command is received
//	THEN: all counters are zeroed and the book is marked as discontinued
//	ERROR: "Cannot discontinue book. n copies are currently borrowed" if copies are on loan
//	IDEMPOTENCY: If the book is already discontinued, nothing changes
func Decide(book core.Book, _ Command) core.DecisionResult[core.Book] {
	if book.Discontinued {
		return core.IdempotentDecision[core.Book]()
	}

	discontinued, err := book.Discontinue()
	if err != nil {
		return core.ErrorDecision[core.Book](err)
	}

	return core.SuccessDecision(discontinued)
}
