// Package overdueborrows implements the Overdue Borrows query use case.
//
// A borrow is overdue while it is active and was borrowed longer ago than the threshold, 14 days by
// default. Each row carries the title and author of the book and the name and email of the borrower.
// Details of a book or user that was deleted in the meantime are shown as "Unknown".
package overdueborrows
