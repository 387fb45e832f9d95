// Package listborrows implements the List Borrows query use case.
//
// Members see their own borrow records. Admins can list all records, all records of one user,
// or only the active ones of a user. Records are listed most recent borrow first.
package listborrows
