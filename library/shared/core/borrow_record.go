package core

import (
	"time"
)

const (
	// DefaultOverdueThreshold is how long a copy may stay on loan before the borrow counts as overdue.
	DefaultOverdueThreshold = 14 * 24 * time.Hour

	// UnknownPlaceholder replaces book and user details that do not exist anymore in the overdue listing.
	UnknownPlaceholder = "Unknown"
)

// BorrowRecord is one loan of one copy to one user. It is ACTIVE while ReturnedAt is nil.
type BorrowRecord struct {
	ID         string
	UserID     string
	BookID     int64
	BorrowedAt Timestamp
	ReturnedAt *Timestamp
}

// NewBorrowRecord creates an active borrow record.
func NewBorrowRecord(id, userID string, bookID int64, borrowedAt time.Time) BorrowRecord {
	return BorrowRecord{
		ID:         id,
		UserID:     userID,
		BookID:     bookID,
		BorrowedAt: ToTimestamp(borrowedAt),
	}
}

// IsActive reports whether the copy is still on loan.
func (r BorrowRecord) IsActive() bool {
	return r.ReturnedAt == nil
}

// MarkReturned finishes the loan. Only the borrower or an admin may return a copy.
func (r BorrowRecord) MarkReturned(actor Principal, at time.Time) (BorrowRecord, error) {
	if !r.IsActive() {
		return BorrowRecord{}, Conflict("Book already returned")
	}

	if actor.UserID != r.UserID && !actor.IsAdmin() {
		return BorrowRecord{}, PermissionDenied("Cannot return someone else's book")
	}

	returnedAt := ToTimestamp(at)
	r.ReturnedAt = &returnedAt

	return r, nil
}

// DaysOverdue is the number of full days the copy has been on loan at the given time.
func (r BorrowRecord) DaysOverdue(now time.Time) int64 {
	elapsed := now.Sub(r.BorrowedAt)
	if elapsed < 0 {
		return 0
	}

	return int64(elapsed / (24 * time.Hour))
}

// IsOverdue reports whether an active loan started before now - threshold.
func (r BorrowRecord) IsOverdue(now time.Time, threshold time.Duration) bool {
	return r.IsActive() && r.BorrowedAt.Before(now.Add(-threshold))
}
