package borrowbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

func Test_Decide_Success_TakesOneCopy(t *testing.T) {
	// arrange
	book := core.Book{ID: 1, TotalCopies: 2, AvailableCopies: 2, Available: true}
	command := borrowbook.BuildCommand("b-1", "u-1", 1, time.Now())

	// act
	result := borrowbook.Decide(book, false, command)

	// assert
	assert.True(t, result.HasStateToPersist())
	assert.Equal(t, int64(1), result.State.AvailableCopies)
	assert.Equal(t, int64(1), result.State.BorrowedCopies)
	assert.True(t, result.State.Available)
}

func Test_Decide_Success_LastCopyMakesBookUnavailable(t *testing.T) {
	book := core.Book{ID: 1, TotalCopies: 2, AvailableCopies: 1, BorrowedCopies: 1, Available: true}

	result := borrowbook.Decide(book, false, borrowbook.BuildCommand("b-1", "u-1", 1, time.Now()))

	assert.True(t, result.HasStateToPersist())
	assert.Zero(t, result.State.AvailableCopies)
	assert.False(t, result.State.Available)
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name            string
		book            core.Book
		hasActiveBorrow bool
		wantKind        error
		wantMsg         string
	}{
		{
			name:     "no copy on the shelf",
			book:     core.Book{ID: 1, TotalCopies: 1, BorrowedCopies: 1},
			wantKind: core.ErrFailedPrecondition,
			wantMsg:  "No copies of this book are currently available",
		},
		{
			name:            "no copy on the shelf wins over an active borrow",
			book:            core.Book{ID: 1, TotalCopies: 1, BorrowedCopies: 1},
			hasActiveBorrow: true,
			wantKind:        core.ErrFailedPrecondition,
			wantMsg:         "No copies of this book are currently available",
		},
		{
			name:            "already borrowed by the user",
			book:            core.Book{ID: 1, TotalCopies: 2, AvailableCopies: 1, BorrowedCopies: 1, Available: true},
			hasActiveBorrow: true,
			wantKind:        core.ErrConflict,
			wantMsg:         "You already have this book borrowed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := borrowbook.Decide(tc.book, tc.hasActiveBorrow, borrowbook.BuildCommand("b-1", "u-1", 1, time.Now()))

			assert.ErrorIs(t, result.HasError(), tc.wantKind)
			assert.EqualError(t, result.HasError(), tc.wantMsg)
		})
	}
}
