package reconcilebookcopies

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Decide implements the business logic to reconcile the counters of one book.
//
// Business Rules:
//
//	GIVEN: A book and the number of active borrow records for it
//	WHEN: ReconcileBookCopies command is received
//	THEN: borrowed copies equal the active borrows, available copies the rest of the total
//	IDEMPOTENCY: If the counters already agree with the ledger, no change is made
func Decide(book core.Book, activeBorrows int64) core.DecisionResult[core.Book] {
	reconciled := book.Reconcile(activeBorrows)
	if reconciled.SameCounters(book) {
		return core.IdempotentDecision[core.Book]()
	}

	return core.SuccessDecision(reconciled)
}
