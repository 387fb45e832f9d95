package overridebookavailability

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Decide implements the business logic of the availability override.
//
// Business Rules:
//
//	GIVEN: A book in the catalog
//	WHEN: OverrideBookAvailability command is received
//	THEN: available=true puts every copy on the shelf, available=false marks every copy as borrowed
//	IDEMPOTENCY: If the counters and the flag already match, nothing changes
func Decide(book core.Book, command Command) core.DecisionResult[core.Book] {
	overridden := book.OverrideAvailability(command.Available)
	if overridden.SameCounters(book) {
		return core.IdempotentDecision[core.Book]()
	}

	return core.SuccessDecision(overridden)
}
