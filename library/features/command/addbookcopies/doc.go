// Package addbookcopies implements the Add Book Copies use case.
//
// An admin puts n new copies of an existing book on the shelf.
// The handler follows the Load-Decide-Persist pattern: it loads the book, lets the pure Decide function
// compute the new counters, and writes them back with compare-and-swap on the book version.
// A lost race is retried with a fresh read.
package addbookcopies
