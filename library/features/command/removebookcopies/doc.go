// Package removebookcopies implements the Remove Book Copies use case.
//
// An admin takes n copies of a book off the shelf. Copies on loan cannot be removed, so the request
// fails with a failed precondition when n exceeds the available copies, and nothing changes.
package removebookcopies
