// Package borrowbook implements the Borrow Book use case.
//
// A user borrows one copy of a book. The handler moves the copy from the shelf with a compare-and-swap
// update of the book and then inserts the active borrow record. The two writes are not one transaction:
//
//   - A lost compare-and-swap is retried with a fresh read, so two users can never take the last copy.
//   - If the insert fails after the book was updated, the copy is put back with one atomic delta update.
//     A duplicate insert means a concurrent borrow of the same user won, and is reported as a conflict.
//   - If even the compensation fails, the book is logged for reconciliation.
package borrowbook
