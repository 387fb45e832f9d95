package librarystore

import (
	"errors"
	"time"
)

var (
	// ErrNegativeCopyCounter is returned when a book record carries a negative counter.
	ErrNegativeCopyCounter = errors.New("copy counters must not be negative")

	// ErrCopyCountersOutOfBalance is returned when available + borrowed != total.
	ErrCopyCountersOutOfBalance = errors.New("available and borrowed copies must add up to total copies")
)

// BookRecord is the persisted shape of a catalog entry.
//
// Version is the compare-and-swap token: every successful update increments it,
// and conditional writes only apply when the stored version still equals the expected one.
type BookRecord struct {
	ID              int64
	Title           string
	Author          string
	TotalCopies     int64
	AvailableCopies int64
	BorrowedCopies  int64
	Available       bool
	Discontinued    bool
	Version         int64
}

// BookRecords is an alias type for a slice of BookRecord.
type BookRecords = []BookRecord

// CheckCounters verifies the copy accounting invariant of the record.
func (r BookRecord) CheckCounters() error {
	if r.TotalCopies < 0 || r.AvailableCopies < 0 || r.BorrowedCopies < 0 {
		return ErrNegativeCopyCounter
	}

	if r.AvailableCopies+r.BorrowedCopies != r.TotalCopies {
		return ErrCopyCountersOutOfBalance
	}

	return nil
}

// CopyDelta describes a relative change of the available and borrowed counters of one book.
// It is applied as a single atomic statement, used to compensate a borrow or return
// whose second step failed.
type CopyDelta struct {
	Available int64
	Borrowed  int64
}

// UserRecord is the persisted shape of a registered user.
type UserRecord struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// UserRecords is an alias type for a slice of UserRecord.
type UserRecords = []UserRecord

// UserStats holds the aggregated user counts of the user directory.
type UserStats struct {
	TotalUsers      int64
	AdminCount      int64
	ActiveBorrowers int64
}

// BorrowRecord is the persisted shape of a ledger entry.
// ReturnedAt is nil while the borrow is active.
type BorrowRecord struct {
	ID         string
	UserID     string
	BookID     int64
	BorrowedAt time.Time
	ReturnedAt *time.Time
}

// BorrowRecords is an alias type for a slice of BorrowRecord.
type BorrowRecords = []BorrowRecord

// IsActive reports whether the borrowed copy is still out on loan.
func (r BorrowRecord) IsActive() bool {
	return r.ReturnedAt == nil
}

// OverdueBorrowRecord is an active BorrowRecord joined with its book and user.
// The joined values are nil when the book or the user does not exist anymore.
type OverdueBorrowRecord struct {
	BorrowRecord
	BookTitle  *string
	BookAuthor *string
	UserName   *string
	UserEmail  *string
}

// OverdueBorrowRecords is an alias type for a slice of OverdueBorrowRecord.
type OverdueBorrowRecords = []OverdueBorrowRecord

// ActiveBorrowCount is the number of active borrow records per book.
type ActiveBorrowCount struct {
	BookID int64
	Count  int64
}

// BorrowFilter selects borrow records for listings.
//
// It should only be constructed with the supplied factory methods:
//   - AllBorrows
//   - BorrowsOfUser
//   - ActiveBorrowsOfUser
type BorrowFilter struct {
	userID     string
	activeOnly bool
}

// AllBorrows selects every borrow record.
func AllBorrows() BorrowFilter {
	return BorrowFilter{}
}

// BorrowsOfUser selects all borrow records of one user.
func BorrowsOfUser(userID string) BorrowFilter {
	return BorrowFilter{userID: userID}
}

// ActiveBorrowsOfUser selects the active borrow records of one user.
func ActiveBorrowsOfUser(userID string) BorrowFilter {
	return BorrowFilter{userID: userID, activeOnly: true}
}

// UserID returns the user the filter is restricted to, or an empty string.
func (f BorrowFilter) UserID() string {
	return f.userID
}

// ActiveOnly reports whether returned records are excluded.
func (f BorrowFilter) ActiveOnly() bool {
	return f.activeOnly
}
