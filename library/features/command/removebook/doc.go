// Package removebook implements the Remove Book use case, the hard delete of a catalog entry.
//
// The book is only deleted while none of its copies is on loan. The delete is conditional on the
// version read before deciding and on borrowed_copies = 0, so a borrow that slips in between makes
// the delete a concurrency conflict, and the retry reports the failed precondition.
// Borrow records of the book are kept. Listings show "Unknown" for the deleted book.
package removebook
