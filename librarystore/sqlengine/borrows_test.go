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

func Test_InsertBorrow_RoundTripsTheRecord(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	borrowedAt := time.Date(2025, 3, 1, 12, 30, 15, 123456000, time.UTC)

	borrow := librarystore.BorrowRecord{
		ID:         fixtures.GivenUniqueID(t),
		UserID:     fixtures.GivenUniqueID(t),
		BookID:     3,
		BorrowedAt: borrowedAt,
	}

	// act
	insertErr := store.InsertBorrow(ctx, borrow)
	found, findErr := store.FindBorrowByID(ctx, borrow.ID)
	active, activeErr := store.FindActiveBorrow(ctx, borrow.UserID, 3)

	// assert
	require.NoError(t, insertErr)
	require.NoError(t, findErr)
	require.NoError(t, activeErr)
	assert.Equal(t, borrow.ID, found.ID)
	assert.True(t, borrowedAt.Equal(found.BorrowedAt), "expected %s, got %s", borrowedAt, found.BorrowedAt)
	assert.Nil(t, found.ReturnedAt)
	assert.True(t, found.IsActive())
	assert.Equal(t, borrow.ID, active.ID)
}

func Test_InsertBorrow_AllowsOnlyOneActiveBorrowPerUserAndBook(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	userID := fixtures.GivenUniqueID(t)

	first := librarystore.BorrowRecord{ID: fixtures.GivenUniqueID(t), UserID: userID, BookID: 1, BorrowedAt: time.Now()}
	second := librarystore.BorrowRecord{ID: fixtures.GivenUniqueID(t), UserID: userID, BookID: 1, BorrowedAt: time.Now()}
	third := librarystore.BorrowRecord{ID: fixtures.GivenUniqueID(t), UserID: userID, BookID: 1, BorrowedAt: time.Now()}

	// act
	require.NoError(t, store.InsertBorrow(ctx, first))
	duplicateErr := store.InsertBorrow(ctx, second)

	require.NoError(t, store.MarkBorrowReturned(ctx, first.ID, time.Now()))
	reborrowErr := store.InsertBorrow(ctx, third)

	// assert
	assert.ErrorIs(t, duplicateErr, librarystore.ErrDuplicateRecord)
	assert.NoError(t, reborrowErr, "a returned borrow must not block a new one")
}

func Test_MarkBorrowReturned_AppliesOnlyOnce(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	borrow := librarystore.BorrowRecord{ID: fixtures.GivenUniqueID(t), UserID: "u", BookID: 1, BorrowedAt: time.Now()}
	require.NoError(t, store.InsertBorrow(ctx, borrow))
	returnedAt := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)

	// act
	firstErr := store.MarkBorrowReturned(ctx, borrow.ID, returnedAt)
	secondErr := store.MarkBorrowReturned(ctx, borrow.ID, returnedAt.Add(time.Hour))
	missingErr := store.MarkBorrowReturned(ctx, fixtures.GivenUniqueID(t), returnedAt)

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, librarystore.ErrConcurrencyConflict)
	assert.ErrorIs(t, missingErr, librarystore.ErrConcurrencyConflict)

	reloaded, err := store.FindBorrowByID(ctx, borrow.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.ReturnedAt)
	assert.True(t, returnedAt.Equal(*reloaded.ReturnedAt))

	_, err = store.FindActiveBorrow(ctx, "u", 1)
	assert.ErrorIs(t, err, librarystore.ErrRecordNotFound)
}

func Test_ListBorrows_FiltersAndOrdersMostRecentFirst(t *testing.T) {
	// setup
	ctx := librarystore.WithEventualConsistency(context.Background())
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// arrange
	aliceOld := librarystore.BorrowRecord{ID: fixtures.GivenUniqueID(t), UserID: "alice", BookID: 1, BorrowedAt: base}
	aliceNew := librarystore.BorrowRecord{ID: fixtures.GivenUniqueID(t), UserID: "alice", BookID: 2, BorrowedAt: base.Add(time.Hour)}
	bob := librarystore.BorrowRecord{ID: fixtures.GivenUniqueID(t), UserID: "bob", BookID: 1, BorrowedAt: base.Add(30 * time.Minute)}

	for _, borrow := range []librarystore.BorrowRecord{aliceOld, aliceNew, bob} {
		require.NoError(t, store.InsertBorrow(ctx, borrow))
	}

	require.NoError(t, store.MarkBorrowReturned(ctx, aliceOld.ID, base.Add(2*time.Hour)))

	testCases := []struct {
		description string
		filter      librarystore.BorrowFilter
		expectedIDs []string
	}{
		{description: "all", filter: librarystore.AllBorrows(), expectedIDs: []string{aliceNew.ID, bob.ID, aliceOld.ID}},
		{description: "of user", filter: librarystore.BorrowsOfUser("alice"), expectedIDs: []string{aliceNew.ID, aliceOld.ID}},
		{description: "active of user", filter: librarystore.ActiveBorrowsOfUser("alice"), expectedIDs: []string{aliceNew.ID}},
		{description: "unknown user", filter: librarystore.BorrowsOfUser("carol"), expectedIDs: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			borrows, err := store.ListBorrows(ctx, tc.filter)

			// assert
			require.NoError(t, err)

			ids := make([]string, 0, len(borrows))
			for _, borrow := range borrows {
				ids = append(ids, borrow.ID)
			}

			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func Test_ListOverdueBorrows_JoinsBookAndUserWhereTheyStillExist(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.CreateWrapperWithTestConfig(t).GetStore()
	now := time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-14 * 24 * time.Hour)

	// arrange
	alice := fixtures.GivenUserInStore(t, store, "alice", "alice@example.com", "member")
	dune := fixtures.GivenBookInStore(t, store, "Dune", "Frank Herbert", 3)

	oldest := fixtures.GivenActiveBorrowInStore(t, store, alice.ID, dune.ID, now.Add(-20*24*time.Hour))

	orphan := librarystore.BorrowRecord{
		ID:         fixtures.GivenUniqueID(t),
		UserID:     fixtures.GivenUniqueID(t),
		BookID:     9999,
		BorrowedAt: now.Add(-15 * 24 * time.Hour),
	}
	require.NoError(t, store.InsertBorrow(ctx, orphan))

	bob := fixtures.GivenUserInStore(t, store, "bob", "bob@example.com", "member")
	fixtures.GivenActiveBorrowInStore(t, store, bob.ID, dune.ID, now.Add(-13*24*time.Hour))

	emma := fixtures.GivenBookInStore(t, store, "Emma", "Jane Austen", 1)
	returned := fixtures.GivenActiveBorrowInStore(t, store, bob.ID, emma.ID, now.Add(-30*24*time.Hour))
	require.NoError(t, store.MarkBorrowReturned(ctx, returned.ID, now.Add(-29*24*time.Hour)))

	// act
	overdue, err := store.ListOverdueBorrows(ctx, cutoff)

	// assert
	require.NoError(t, err)
	require.Len(t, overdue, 2)

	assert.Equal(t, oldest.ID, overdue[0].ID)
	require.NotNil(t, overdue[0].BookTitle)
	require.NotNil(t, overdue[0].UserEmail)
	assert.Equal(t, "Dune", *overdue[0].BookTitle)
	assert.Equal(t, "Frank Herbert", *overdue[0].BookAuthor)
	assert.Equal(t, "alice", *overdue[0].UserName)
	assert.Equal(t, "alice@example.com", *overdue[0].UserEmail)

	assert.Equal(t, orphan.ID, overdue[1].ID)
	assert.Nil(t, overdue[1].BookTitle)
	assert.Nil(t, overdue[1].BookAuthor)
	assert.Nil(t, overdue[1].UserName)
	assert.Nil(t, overdue[1].UserEmail)
}
