package shell_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

func Test_BookRecordMapping_RoundTrip(t *testing.T) {
	record := librarystore.BookRecord{
		ID: 3, Title: "Kindred", Author: "Octavia E. Butler",
		TotalCopies: 4, AvailableCopies: 1, BorrowedCopies: 3,
		Available: true, Version: 9,
	}

	assert.Equal(t, record, shell.BookToRecord(shell.BookFromRecord(record)))
}

func Test_BorrowFromRecord_NormalizesTimestamps(t *testing.T) {
	// arrange
	berlin := time.FixedZone("CET", 3600)
	borrowedAt := time.Date(2025, 1, 2, 10, 0, 0, 123456789, berlin)
	returnedAt := borrowedAt.Add(time.Hour)

	// act
	borrow := shell.BorrowFromRecord(librarystore.BorrowRecord{
		ID: "b-1", UserID: "u-1", BookID: 3, BorrowedAt: borrowedAt, ReturnedAt: &returnedAt,
	})

	// assert
	assert.Equal(t, time.UTC, borrow.BorrowedAt.Location())
	assert.Equal(t, 123456000, borrow.BorrowedAt.Nanosecond())
	assert.False(t, borrow.IsActive())
	assert.True(t, borrow.ReturnedAt.Equal(returnedAt.Truncate(time.Microsecond)))
}

func Test_NotFoundOr(t *testing.T) {
	err := shell.NotFoundOr(errors.Join(librarystore.ErrRecordNotFound), "Book not found")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.EqualError(t, err, "Book not found")

	other := errors.New("boom")
	assert.Equal(t, other, shell.NotFoundOr(other, "Book not found"))
}

func Test_ParseID(t *testing.T) {
	id, err := shell.ParseID("0198C3B2-7A4E-7D1C-9F00-5E2A1B3C4D5E", "borrow")
	assert.NoError(t, err)
	assert.Equal(t, "0198c3b2-7a4e-7d1c-9f00-5e2a1b3c4d5e", id)

	_, err = shell.ParseID("42", "borrow")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.EqualError(t, err, "Invalid borrow ID format")
}

func Test_NewID_IsParseable(t *testing.T) {
	id, err := shell.NewID()
	assert.NoError(t, err)

	parsed, err := shell.ParseID(id, "user")
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)
}
