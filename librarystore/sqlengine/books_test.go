package sqlengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/testutil/librarystore/fixtures"
	"github.com/AntonStoeckl/library-backend-go/testutil/librarystore/storewrapper"
)

func Test_InsertBook_StoresVersionOneAndFindsByIDAndPair(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()

	// act
	err := store.InsertBook(ctx, librarystore.BookRecord{
		ID: 7, Title: "Dune", Author: "Frank Herbert", TotalCopies: 2, AvailableCopies: 2, Available: true,
		Version: 99,
	})

	// assert
	require.NoError(t, err)

	byID, err := store.FindBookByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, librarystore.BookRecord{
		ID: 7, Title: "Dune", Author: "Frank Herbert", TotalCopies: 2, AvailableCopies: 2, Available: true,
		Version: 1,
	}, byID)

	byPair, err := store.FindBookByTitleAndAuthor(ctx, "Dune", "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, byID, byPair)
}

func Test_FindBook_ReturnsRecordNotFound(t *testing.T) {
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()

	_, err := store.FindBookByID(context.Background(), 404)
	assert.ErrorIs(t, err, librarystore.ErrRecordNotFound)

	_, err = store.FindBookByTitleAndAuthor(context.Background(), "Nope", "Nobody")
	assert.ErrorIs(t, err, librarystore.ErrRecordNotFound)
}

func Test_InsertBook_RejectsDuplicatesAndUnbalancedCounters(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	existing := fixtures.GivenBookInStore(t, store, "Dune", "Frank Herbert", 1)

	testCases := []struct {
		description string
		book        librarystore.BookRecord
		expectedErr error
	}{
		{
			description: "same title and author",
			book:        librarystore.BookRecord{ID: existing.ID + 100, Title: "Dune", Author: "Frank Herbert"},
			expectedErr: librarystore.ErrDuplicateRecord,
		},
		{
			description: "same id",
			book:        librarystore.BookRecord{ID: existing.ID, Title: "Emma", Author: "Jane Austen"},
			expectedErr: librarystore.ErrDuplicateRecord,
		},
		{
			description: "counters out of balance",
			book:        librarystore.BookRecord{ID: 500, Title: "Emma", Author: "Jane Austen", TotalCopies: 2, AvailableCopies: 1},
			expectedErr: librarystore.ErrCopyCountersOutOfBalance,
		},
		{
			description: "negative counter",
			book:        librarystore.BookRecord{ID: 501, Title: "Emma", Author: "Jane Austen", TotalCopies: -1, BorrowedCopies: -1},
			expectedErr: librarystore.ErrNegativeCopyCounter,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			err := store.InsertBook(ctx, tc.book)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_UpdateBook_AppliesOnlyWithTheExpectedVersion(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()

	// arrange
	book := fixtures.GivenBookInStore(t, store, "Dune", "Frank Herbert", 2)
	borrowed := book
	borrowed.AvailableCopies, borrowed.BorrowedCopies = 1, 1

	// act
	firstErr := store.UpdateBook(ctx, borrowed, book.Version)
	staleErr := store.UpdateBook(ctx, book, book.Version)

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, staleErr, librarystore.ErrConcurrencyConflict)

	reloaded := fixtures.GivenBookReloaded(t, store, book.ID)
	assert.Equal(t, book.Version+1, reloaded.Version)
	assert.Equal(t, int64(1), reloaded.AvailableCopies)
	assert.Equal(t, int64(1), reloaded.BorrowedCopies)
}

func Test_UpdateBook_ReportsConflictForVanishedBook(t *testing.T) {
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()

	err := store.UpdateBook(context.Background(), librarystore.BookRecord{ID: 404, Title: "x", Author: "y"}, 1)

	assert.ErrorIs(t, err, librarystore.ErrConcurrencyConflict)
}

func Test_DeleteBook_RefusesBorrowedOrStaleBooks(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()

	// arrange
	user := fixtures.GivenUserInStore(t, store, "alice", "alice@example.com", "member")
	lent := fixtures.GivenBookInStore(t, store, "Dune", "Frank Herbert", 1)
	fixtures.GivenActiveBorrowInStore(t, store, user.ID, lent.ID, time.Now())
	lent = fixtures.GivenBookReloaded(t, store, lent.ID)

	shelved := fixtures.GivenBookInStore(t, store, "Emma", "Jane Austen", 3)

	// act
	lentErr := store.DeleteBook(ctx, lent.ID, lent.Version)
	staleErr := store.DeleteBook(ctx, shelved.ID, shelved.Version+1)
	deleteErr := store.DeleteBook(ctx, shelved.ID, shelved.Version)

	// assert
	assert.ErrorIs(t, lentErr, librarystore.ErrConcurrencyConflict)
	assert.ErrorIs(t, staleErr, librarystore.ErrConcurrencyConflict)
	require.NoError(t, deleteErr)

	_, err := store.FindBookByID(ctx, shelved.ID)
	assert.ErrorIs(t, err, librarystore.ErrRecordNotFound)

	_, err = store.FindBookByID(ctx, lent.ID)
	assert.NoError(t, err)
}

func Test_ApplyCopyDelta_ShiftsCountersAtomically(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	book := fixtures.GivenBookInStore(t, store, "Dune", "Frank Herbert", 1)

	// act
	borrowErr := store.ApplyCopyDelta(ctx, book.ID, librarystore.CopyDelta{Available: -1, Borrowed: 1})
	afterBorrow := fixtures.GivenBookReloaded(t, store, book.ID)

	returnErr := store.ApplyCopyDelta(ctx, book.ID, librarystore.CopyDelta{Available: 1, Borrowed: -1})
	afterReturn := fixtures.GivenBookReloaded(t, store, book.ID)

	// assert
	require.NoError(t, borrowErr)
	assert.Equal(t, int64(0), afterBorrow.AvailableCopies)
	assert.Equal(t, int64(1), afterBorrow.BorrowedCopies)
	assert.Equal(t, int64(1), afterBorrow.TotalCopies)
	assert.False(t, afterBorrow.Available)
	assert.Equal(t, book.Version+1, afterBorrow.Version)

	require.NoError(t, returnErr)
	assert.Equal(t, int64(1), afterReturn.AvailableCopies)
	assert.Equal(t, int64(0), afterReturn.BorrowedCopies)
	assert.True(t, afterReturn.Available)
	assert.Equal(t, book.Version+2, afterReturn.Version)
}

func Test_ApplyCopyDelta_RejectsNegativeCountersAndMissingBooks(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	book := fixtures.GivenBookInStore(t, store, "Dune", "Frank Herbert", 1)

	// act
	negativeErr := store.ApplyCopyDelta(ctx, book.ID, librarystore.CopyDelta{Available: 1, Borrowed: -1})
	missingErr := store.ApplyCopyDelta(ctx, 404, librarystore.CopyDelta{Available: 1, Borrowed: -1})

	// assert
	assert.ErrorIs(t, negativeErr, librarystore.ErrCopyCountersOutOfBalance)
	assert.ErrorIs(t, missingErr, librarystore.ErrConcurrencyConflict)

	unchanged := fixtures.GivenBookReloaded(t, store, book.ID)
	assert.Equal(t, book, unchanged)
}

func Test_ListBooks_OrdersByID(t *testing.T) {
	// setup
	ctx := librarystore.WithEventualConsistency(context.Background())
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()

	// arrange
	first := fixtures.GivenBookInStore(t, store, "Dune", "Frank Herbert", 1)
	second := fixtures.GivenBookInStore(t, store, "Emma", "Jane Austen", 0)

	// act
	books, err := store.ListBooks(ctx)

	// assert
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, first.ID, books[0].ID)
	assert.Equal(t, second.ID, books[1].ID)
	assert.False(t, books[1].Available)
}

func Test_CountActiveBorrowsByBook_IgnoresReturnedRecords(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()

	// arrange
	alice := fixtures.GivenUserInStore(t, store, "alice", "alice@example.com", "member")
	bob := fixtures.GivenUserInStore(t, store, "bob", "bob@example.com", "member")
	dune := fixtures.GivenBookInStore(t, store, "Dune", "Frank Herbert", 3)
	emma := fixtures.GivenBookInStore(t, store, "Emma", "Jane Austen", 1)
	fixtures.GivenBookInStore(t, store, "Ulysses", "James Joyce", 1)

	fixtures.GivenActiveBorrowInStore(t, store, alice.ID, dune.ID, time.Now())
	fixtures.GivenActiveBorrowInStore(t, store, bob.ID, dune.ID, time.Now())
	returned := fixtures.GivenActiveBorrowInStore(t, store, alice.ID, emma.ID, time.Now())
	require.NoError(t, store.MarkBorrowReturned(ctx, returned.ID, time.Now()))

	// act
	counts, err := store.CountActiveBorrowsByBook(ctx)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []librarystore.ActiveBorrowCount{{BookID: dune.ID, Count: 2}}, counts)
}
