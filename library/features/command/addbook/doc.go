// Package addbook implements the Add Book use case.
//
// An admin adds copies of a title to the catalog. A book is identified by its (title, author) pair:
// adding a pair that exists merges the copies into the existing book, otherwise a new book gets the
// next id of the book id sequence.
//
// Two admins adding the same new pair at once race on the unique (title, author) index. The loser's
// insert is treated as a concurrency conflict, and its retry finds the winner's book and merges into it.
package addbook
