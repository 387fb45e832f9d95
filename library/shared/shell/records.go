package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// BookFromRecord maps a persisted book to the domain.
func BookFromRecord(r librarystore.BookRecord) core.Book {
	return core.Book{
		ID:              r.ID,
		Title:           r.Title,
		Author:          r.Author,
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.AvailableCopies,
		BorrowedCopies:  r.BorrowedCopies,
		Available:       r.Available,
		Discontinued:    r.Discontinued,
		Version:         r.Version,
	}
}

// BookToRecord maps a domain book to its persisted shape.
func BookToRecord(b core.Book) librarystore.BookRecord {
	return librarystore.BookRecord{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		BorrowedCopies:  b.BorrowedCopies,
		Available:       b.Available,
		Discontinued:    b.Discontinued,
		Version:         b.Version,
	}
}

// UserFromRecord maps a persisted user to the domain.
func UserFromRecord(r librarystore.UserRecord) core.User {
	return core.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         core.Role(r.Role),
	}
}

// UserToRecord maps a domain user to its persisted shape.
func UserToRecord(u core.User) librarystore.UserRecord {
	return librarystore.UserRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
	}
}

// BorrowFromRecord maps a persisted borrow record to the domain.
func BorrowFromRecord(r librarystore.BorrowRecord) core.BorrowRecord {
	borrow := core.BorrowRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		BookID:     r.BookID,
		BorrowedAt: core.ToTimestamp(r.BorrowedAt),
	}

	if r.ReturnedAt != nil {
		returnedAt := core.ToTimestamp(*r.ReturnedAt)
		borrow.ReturnedAt = &returnedAt
	}

	return borrow
}

// BorrowToRecord maps a domain borrow record to its persisted shape.
func BorrowToRecord(b core.BorrowRecord) librarystore.BorrowRecord {
	record := librarystore.BorrowRecord{
		ID:         b.ID,
		UserID:     b.UserID,
		BookID:     b.BookID,
		BorrowedAt: b.BorrowedAt,
	}

	if b.ReturnedAt != nil {
		returnedAt := *b.ReturnedAt
		record.ReturnedAt = &returnedAt
	}

	return record
}

// BorrowsFromRecords maps a list of persisted borrow records to the domain.
func BorrowsFromRecords(records librarystore.BorrowRecords) []core.BorrowRecord {
	borrows := make([]core.BorrowRecord, 0, len(records))
	for _, r := range records {
		borrows = append(borrows, BorrowFromRecord(r))
	}

	return borrows
}

// NotFoundOr turns librarystore.ErrRecordNotFound into a NotFound business error with the given message.
// Other errors are returned unchanged.
func NotFoundOr(err error, message string) error {
	if errors.Is(err, librarystore.ErrRecordNotFound) {
		return core.NotFound("%s", message)
	}

	return err
}
