package core

// DecisionResult represents the outcome of a business decision in a Decide function.
// S is the state to persist, e.g. the changed Book.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// IdempotentDecision(), SuccessDecision(state), or ErrorDecision(err).
// Do not construct DecisionResult directly to ensure type safety.
type DecisionResult[S any] struct {
	Outcome string // "idempotent", "success", or "error"
	State   S      // zero value for idempotent and error decisions
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision[S any]() DecisionResult[S] {
	return DecisionResult[S]{
		Outcome: idempotentOutcome,
	}
}

// SuccessDecision creates a DecisionResult indicating a successful state change with the state to persist.
func SuccessDecision[S any](state S) DecisionResult[S] {
	return DecisionResult[S]{
		Outcome: successOutcome,
		State:   state,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
func ErrorDecision[S any](err error) DecisionResult[S] {
	return DecisionResult[S]{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// IsIdempotent returns true if there is nothing to persist and nothing went wrong.
func (r DecisionResult[S]) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasStateToPersist returns true if there is a state change to persist.
func (r DecisionResult[S]) HasStateToPersist() bool {
	return r.Outcome == successOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult[S]) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
