package overdueborrows_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-backend-go/library/features/query/overdueborrows"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/fixtures"    //nolint:revive
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/storewrapper" //nolint:revive
)

const day = 24 * time.Hour

func Test_QueryHandler_Handle_ListsOverdueBorrowsWithDetails(t *testing.T) {
	// setup
	ctx := context.Background()
	store := CreateWrapperWithTestConfig(t).GetStore()
	now := time.Now().UTC().Truncate(time.Second)
	handler, err := overdueborrows.NewQueryHandler(store, overdueborrows.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	// arrange
	ada := GivenUserInStore(t, store, "Ada", "ada@example.com", "member")
	dune := GivenBookInStore(t, store, "Dune", "Frank Herbert", 3)
	overdue := GivenActiveBorrowInStore(t, store, ada.ID, dune.ID, now.Add(-20*day-time.Hour))
	GivenBookInStore(t, store, "Emma", "Jane Austen", 1)

	recent := GivenUserInStore(t, store, "Bob", "bob@example.com", "member")
	GivenActiveBorrowInStore(t, store, recent.ID, dune.ID, now.Add(-13*day))

	returned := GivenUserInStore(t, store, "Cy", "cy@example.com", "member")
	old := GivenActiveBorrowInStore(t, store, returned.ID, dune.ID, now.Add(-30*day))
	require.NoError(t, store.MarkBorrowReturned(ctx, old.ID, now.Add(-29*day)))

	// act
	result, err := handler.Handle(ctx, overdueborrows.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)

	row := result.Borrows[0]
	assert.Equal(t, overdue.ID, row.BorrowID)
	assert.Equal(t, ada.ID, row.UserID)
	assert.Equal(t, "Ada", row.UserName)
	assert.Equal(t, "ada@example.com", row.UserEmail)
	assert.Equal(t, dune.ID, row.BookID)
	assert.Equal(t, "Dune", row.BookTitle)
	assert.Equal(t, "Frank Herbert", row.BookAuthor)
	assert.Equal(t, int64(20), row.DaysOverdue)
	assert.True(t, overdue.BorrowedAt.Equal(row.BorrowedAt))
}

func Test_QueryHandler_Handle_UnknownPlaceholders(t *testing.T) {
	// setup
	ctx := context.Background()
	store := CreateWrapperWithTestConfig(t).GetStore()
	now := time.Now().UTC()
	handler, err := overdueborrows.NewQueryHandler(store)
	require.NoError(t, err)

	// arrange
	orphan := librarystore.BorrowRecord{
		ID:         GivenUniqueID(t),
		UserID:     GivenUniqueID(t),
		BookID:     9999,
		BorrowedAt: now.Add(-15 * day).Truncate(time.Microsecond),
	}
	require.NoError(t, store.InsertBorrow(ctx, orphan))

	// act
	result, err := handler.Handle(ctx, overdueborrows.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Unknown", result.Borrows[0].UserName)
	assert.Equal(t, "Unknown", result.Borrows[0].UserEmail)
	assert.Equal(t, "Unknown", result.Borrows[0].BookTitle)
	assert.Equal(t, "Unknown", result.Borrows[0].BookAuthor)
	assert.Equal(t, int64(15), result.Borrows[0].DaysOverdue)
}

func Test_QueryHandler_Handle_CustomThreshold(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler, err := overdueborrows.NewQueryHandler(store, overdueborrows.WithThreshold(2*day))
	require.NoError(t, err)

	// arrange
	ada := GivenUserInStore(t, store, "Ada", "ada@example.com", "member")
	dune := GivenBookInStore(t, store, "Dune", "Frank Herbert", 1)
	GivenActiveBorrowInStore(t, store, ada.ID, dune.ID, time.Now().Add(-3*day))

	// act
	result, err := handler.Handle(context.Background(), overdueborrows.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, int64(3), result.Borrows[0].DaysOverdue)
}

func Test_NewQueryHandler_RejectsNonPositiveThreshold(t *testing.T) {
	_, err := overdueborrows.NewQueryHandler(nil, overdueborrows.WithThreshold(0))

	assert.ErrorIs(t, err, overdueborrows.ErrNonPositiveThreshold)
}
