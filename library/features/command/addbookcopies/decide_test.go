package addbookcopies_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/addbookcopies"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

func Test_Decide_Success_AddsCopiesToTotalAndAvailable(t *testing.T) {
	// arrange
	book := core.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", TotalCopies: 2, AvailableCopies: 0, BorrowedCopies: 2}

	// act
	result := addbookcopies.Decide(book, addbookcopies.BuildCommand(1, 3))

	// assert
	assert.True(t, result.HasStateToPersist())
	assert.Equal(t, int64(5), result.State.TotalCopies)
	assert.Equal(t, int64(3), result.State.AvailableCopies)
	assert.Equal(t, int64(2), result.State.BorrowedCopies)
	assert.True(t, result.State.Available)
}

func Test_Decide_Error_WhenCopiesNotPositive(t *testing.T) {
	book := core.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", TotalCopies: 2, AvailableCopies: 2}

	for _, copies := range []int64{0, -1} {
		result := addbookcopies.Decide(book, addbookcopies.BuildCommand(1, copies))

		assert.ErrorIs(t, result.HasError(), core.ErrInvalidArgument)
		assert.EqualError(t, result.HasError(), "Number of copies must be positive")
	}
}
