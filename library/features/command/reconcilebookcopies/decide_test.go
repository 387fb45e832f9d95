package reconcilebookcopies_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/reconcilebookcopies"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

func Test_Decide(t *testing.T) {
	t.Run("counters agree with the ledger", func(t *testing.T) {
		book := core.Book{ID: 1, TotalCopies: 3, AvailableCopies: 2, BorrowedCopies: 1, Available: true}

		result := reconcilebookcopies.Decide(book, 1)

		assert.True(t, result.IsIdempotent())
	})

	t.Run("force-returned copies are counted as borrowed again", func(t *testing.T) {
		book := core.Book{ID: 1, TotalCopies: 3, AvailableCopies: 3, BorrowedCopies: 0, Available: true}

		result := reconcilebookcopies.Decide(book, 2)

		assert.True(t, result.HasStateToPersist())
		assert.Equal(t, int64(1), result.State.AvailableCopies)
		assert.Equal(t, int64(2), result.State.BorrowedCopies)
		assert.NoError(t, result.State.CheckInvariant())
	})

	t.Run("copies marked borrowed without a borrow record go back on the shelf", func(t *testing.T) {
		book := core.Book{ID: 1, TotalCopies: 2, AvailableCopies: 0, BorrowedCopies: 2, Available: false}

		result := reconcilebookcopies.Decide(book, 0)

		assert.True(t, result.HasStateToPersist())
		assert.Equal(t, int64(2), result.State.AvailableCopies)
		assert.Equal(t, int64(0), result.State.BorrowedCopies)
		assert.True(t, result.State.Available)
	})
}
