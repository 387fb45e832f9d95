// Package returnbook implements the Return Book use case.
//
// The borrower, or an admin, returns the copy of an active borrow record. The handler puts the copy
// back with a compare-and-swap update of the book and then marks the record returned, but only while it
// is still active. If another return of the same record won in between, the book update is compensated
// and the retry reports that the book was already returned.
package returnbook
