// Package overridebookavailability implements the administrative availability override of a book.
//
// Setting a book available force-returns all copies, setting it unavailable marks all copies as
// borrowed. The borrow records are not touched, so the counters may disagree with the ledger
// afterwards. The reconcilebookcopies feature repairs such books.
package overridebookavailability
