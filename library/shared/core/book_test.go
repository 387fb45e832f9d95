package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

func Test_NewBook_PutsAllCopiesOnTheShelf(t *testing.T) {
	// act
	book, err := core.NewBook(7, "  Dune ", "Frank Herbert", 3)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(7), book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, int64(3), book.TotalCopies)
	assert.Equal(t, int64(3), book.AvailableCopies)
	assert.Equal(t, int64(0), book.BorrowedCopies)
	assert.True(t, book.Available)
	assert.NoError(t, book.CheckInvariant())
}

func Test_NewBook_WithZeroCopies_IsNotAvailable(t *testing.T) {
	// act
	book, err := core.NewBook(1, "Dune", "Frank Herbert", 0)

	// assert
	require.NoError(t, err)
	assert.False(t, book.Available)
}

func Test_NewBook_RejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name   string
		title  string
		author string
		copies int64
	}{
		{name: "blank title", title: " ", author: "Frank Herbert", copies: 1},
		{name: "blank author", title: "Dune", author: "", copies: 1},
		{name: "negative copies", title: "Dune", author: "Frank Herbert", copies: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := core.NewBook(1, tc.title, tc.author, tc.copies)

			// assert
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}
}

func Test_MergeCopies_AddsToTotalAndAvailable_AndRevivesDiscontinuedBook(t *testing.T) {
	// arrange
	book := givenBook(t, 3)
	book, err := book.Discontinue()
	require.NoError(t, err)

	// act
	merged, err := book.MergeCopies(2)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(2), merged.TotalCopies)
	assert.Equal(t, int64(2), merged.AvailableCopies)
	assert.True(t, merged.Available)
	assert.False(t, merged.Discontinued)
}

func Test_AddCopies(t *testing.T) {
	// arrange
	book := givenBorrowedBook(t, 2, 2)

	// act
	changed, err := book.AddCopies(3)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(5), changed.TotalCopies)
	assert.Equal(t, int64(3), changed.AvailableCopies)
	assert.Equal(t, int64(2), changed.BorrowedCopies)
	assert.True(t, changed.Available)
}

func Test_AddCopies_RejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int64{0, -4} {
		// act
		_, err := givenBook(t, 1).AddCopies(n)

		// assert
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
		assert.EqualError(t, err, "Number of copies must be positive")
	}
}

func Test_RemoveCopies(t *testing.T) {
	// arrange
	book := givenBorrowedBook(t, 3, 1)

	// act
	changed, err := book.RemoveCopies(2)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed.TotalCopies)
	assert.Equal(t, int64(0), changed.AvailableCopies)
	assert.Equal(t, int64(1), changed.BorrowedCopies)
	assert.False(t, changed.Available)
}

func Test_RemoveCopies_MoreThanAvailable_FailsWithoutChange(t *testing.T) {
	// arrange
	book := givenBorrowedBook(t, 3, 2)

	// act
	_, err := book.RemoveCopies(2)

	// assert
	assert.ErrorIs(t, err, core.ErrFailedPrecondition)
	assert.EqualError(t, err, "Cannot remove 2 copies. Only 1 copies are available (not borrowed)")
	assert.Equal(t, int64(1), book.AvailableCopies)
	assert.Equal(t, int64(3), book.TotalCopies)
}

func Test_Discontinue(t *testing.T) {
	// act
	discontinued, err := givenBook(t, 4).Discontinue()

	// assert
	require.NoError(t, err)
	assert.True(t, discontinued.Discontinued)
	assert.False(t, discontinued.Available)
	assert.Equal(t, int64(0), discontinued.TotalCopies)
	assert.NoError(t, discontinued.CheckInvariant())
}

func Test_Discontinue_WithBorrowedCopies_Fails(t *testing.T) {
	// arrange
	book := givenBorrowedBook(t, 4, 2)

	// act
	_, err := book.Discontinue()

	// assert
	assert.ErrorIs(t, err, core.ErrFailedPrecondition)
	assert.EqualError(t, err, "Cannot discontinue book. 2 copies are currently borrowed")
	assert.ErrorIs(t, book.CheckCanBeRemoved(), core.ErrFailedPrecondition)
}

func Test_OverrideAvailability(t *testing.T) {
	// arrange
	book := givenBorrowedBook(t, 3, 1)

	// act
	allOut := book.OverrideAvailability(false)
	allIn := book.OverrideAvailability(true)

	// assert
	assert.Equal(t, int64(0), allOut.AvailableCopies)
	assert.Equal(t, int64(3), allOut.BorrowedCopies)
	assert.False(t, allOut.Available)

	assert.Equal(t, int64(3), allIn.AvailableCopies)
	assert.Equal(t, int64(0), allIn.BorrowedCopies)
	assert.True(t, allIn.Available)
}

func Test_BorrowCopy_LastCopy_MakesBookUnavailable(t *testing.T) {
	// act
	borrowed, err := givenBook(t, 1).BorrowCopy()

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(0), borrowed.AvailableCopies)
	assert.Equal(t, int64(1), borrowed.BorrowedCopies)
	assert.False(t, borrowed.Available)
}

func Test_BorrowCopy_WithoutAvailableCopies_Fails(t *testing.T) {
	// act
	_, err := givenBorrowedBook(t, 1, 1).BorrowCopy()

	// assert
	assert.ErrorIs(t, err, core.ErrFailedPrecondition)
	assert.EqualError(t, err, "No copies of this book are currently available")
}

func Test_ReturnCopy(t *testing.T) {
	// act
	returned := givenBorrowedBook(t, 1, 1).ReturnCopy()

	// assert
	assert.Equal(t, int64(1), returned.AvailableCopies)
	assert.Equal(t, int64(0), returned.BorrowedCopies)
	assert.True(t, returned.Available)
}

func Test_ReturnCopy_AfterForcedReturn_KeepsCountersBalanced(t *testing.T) {
	// arrange
	book := givenBorrowedBook(t, 2, 1).OverrideAvailability(true)

	// act
	returned := book.ReturnCopy()

	// assert
	assert.Equal(t, int64(2), returned.AvailableCopies)
	assert.Equal(t, int64(0), returned.BorrowedCopies)
	assert.True(t, returned.Available)
	assert.NoError(t, returned.CheckInvariant())
}

func Test_Reconcile(t *testing.T) {
	testCases := []struct {
		name              string
		book              core.Book
		activeBorrows     int64
		expectedTotal     int64
		expectedAvailable int64
		expectedBorrowed  int64
	}{
		{
			name:              "override marked everything borrowed",
			book:              givenBook(t, 3).OverrideAvailability(false),
			activeBorrows:     1,
			expectedTotal:     3,
			expectedAvailable: 2,
			expectedBorrowed:  1,
		},
		{
			name:              "more active borrows than copies",
			book:              givenBook(t, 1),
			activeBorrows:     2,
			expectedTotal:     2,
			expectedAvailable: 0,
			expectedBorrowed:  2,
		},
		{
			name:              "already in sync",
			book:              givenBorrowedBook(t, 2, 1),
			activeBorrows:     1,
			expectedTotal:     2,
			expectedAvailable: 1,
			expectedBorrowed:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			reconciled := tc.book.Reconcile(tc.activeBorrows)

			// assert
			assert.Equal(t, tc.expectedTotal, reconciled.TotalCopies)
			assert.Equal(t, tc.expectedAvailable, reconciled.AvailableCopies)
			assert.Equal(t, tc.expectedBorrowed, reconciled.BorrowedCopies)
			assert.Equal(t, tc.expectedAvailable > 0, reconciled.Available)
			assert.NoError(t, reconciled.CheckInvariant())
		})
	}
}

func Test_Scenario_TwoCopies_BorrowedByTwoUsers_ThenOneReturned(t *testing.T) {
	// arrange
	book := givenBook(t, 2)

	// act
	book, err := book.BorrowCopy()
	require.NoError(t, err)
	book, err = book.BorrowCopy()
	require.NoError(t, err)

	// assert
	assert.Equal(t, int64(0), book.AvailableCopies)
	assert.False(t, book.Available)

	_, err = book.BorrowCopy()
	assert.ErrorIs(t, err, core.ErrFailedPrecondition)

	book = book.ReturnCopy()
	assert.Equal(t, int64(1), book.AvailableCopies)
	assert.True(t, book.Available)
}

func givenBook(t *testing.T, copies int64) core.Book {
	t.Helper()

	book, err := core.NewBook(1, "The Left Hand of Darkness", "Ursula K. Le Guin", copies)
	require.NoError(t, err)

	return book
}

func givenBorrowedBook(t *testing.T, copies int64, borrowed int64) core.Book {
	t.Helper()

	book := givenBook(t, copies)
	for i := int64(0); i < borrowed; i++ {
		var err error
		book, err = book.BorrowCopy()
		require.NoError(t, err)
	}

	return book
}
