package addbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

func Test_Decide_Success_CreatesNewBook(t *testing.T) {
	// act
	result := addbook.Decide(core.Book{}, false, addbook.BuildCommand("  Dune ", "Frank Herbert", 2))

	// assert
	assert.True(t, result.HasStateToPersist())
	assert.Equal(t, "Dune", result.State.Title)
	assert.Equal(t, int64(2), result.State.TotalCopies)
	assert.Equal(t, int64(2), result.State.AvailableCopies)
	assert.Zero(t, result.State.BorrowedCopies)
	assert.True(t, result.State.Available)
}

func Test_Decide_Success_NewBookWithoutCopiesIsNotAvailable(t *testing.T) {
	result := addbook.Decide(core.Book{}, false, addbook.BuildCommand("Dune", "Frank Herbert", 0))

	assert.True(t, result.HasStateToPersist())
	assert.False(t, result.State.Available)
}

func Test_Decide_Success_MergesIntoExistingBook(t *testing.T) {
	// arrange
	existing := core.Book{
		ID: 7, Title: "Dune", Author: "Frank Herbert",
		TotalCopies: 2, AvailableCopies: 0, BorrowedCopies: 2,
		Discontinued: true, Version: 4,
	}

	// act
	result := addbook.Decide(existing, true, addbook.BuildCommand("Dune", "Frank Herbert", 3))

	// assert
	assert.True(t, result.HasStateToPersist())
	assert.Equal(t, int64(7), result.State.ID)
	assert.Equal(t, int64(5), result.State.TotalCopies)
	assert.Equal(t, int64(3), result.State.AvailableCopies)
	assert.Equal(t, int64(2), result.State.BorrowedCopies)
	assert.True(t, result.State.Available)
	assert.False(t, result.State.Discontinued)
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name    string
		command addbook.Command
		exists  bool
		wantMsg string
	}{
		{name: "negative copies for a new book", command: addbook.BuildCommand("Dune", "Frank Herbert", -1), wantMsg: "Number of copies must not be negative"},
		{name: "negative copies for an existing book", command: addbook.BuildCommand("Dune", "Frank Herbert", -1), exists: true, wantMsg: "Number of copies must not be negative"},
		{name: "blank title", command: addbook.BuildCommand(" ", "Frank Herbert", 1), wantMsg: "Title must not be empty"},
		{name: "blank author", command: addbook.BuildCommand("Dune", "", 1), wantMsg: "Author must not be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := addbook.Decide(core.Book{ID: 1, Title: "Dune", Author: "Frank Herbert"}, tc.exists, tc.command)

			assert.ErrorIs(t, result.HasError(), core.ErrInvalidArgument)
			assert.EqualError(t, result.HasError(), tc.wantMsg)
		})
	}
}
