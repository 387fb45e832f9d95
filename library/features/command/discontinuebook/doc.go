// Package discontinuebook implements the Discontinue Book use case.
//
// Discontinuing is the soft removal of a book: all counters drop to zero and the record stays in the
// catalog marked as discontinued, so the borrow history keeps pointing at it. Adding the same title
// and author again revives it. Discontinuing an already discontinued book is an idempotent no-op.
package discontinuebook
