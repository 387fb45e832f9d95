package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
)

// FixturePassword is the password of every user arranged with GivenUserInStore.
const FixturePassword = "secret1"

// GivenUniqueID generates a unique UUID string for testing.
func GivenUniqueID(t testing.TB) string {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id.String()
}

// GivenBookInStore stores a book with all copies on the shelf and returns it as read back.
func GivenBookInStore(t testing.TB, store sqlengine.LibraryStore, title, author string, copies int64) librarystore.BookRecord {
	t.Helper()

	ctx := context.Background()

	bookID, err := store.NextSequenceValue(ctx, sqlengine.SequenceBookID)
	require.NoError(t, err, "error in arranging test data")

	err = store.InsertBook(ctx, librarystore.BookRecord{
		ID:              bookID,
		Title:           title,
		Author:          author,
		TotalCopies:     copies,
		AvailableCopies: copies,
		Available:       copies > 0,
	})
	require.NoError(t, err, "error in arranging test data")

	return GivenBookReloaded(t, store, bookID)
}

// GivenBookReloaded reads the current state of a book.
func GivenBookReloaded(t testing.TB, store sqlengine.LibraryStore, bookID int64) librarystore.BookRecord {
	t.Helper()

	book, err := store.FindBookByID(librarystore.WithStrongConsistency(context.Background()), bookID)
	require.NoError(t, err, "error in arranging test data")

	return book
}

// GivenUserInStore stores a user whose password is FixturePassword.
func GivenUserInStore(t testing.TB, store sqlengine.LibraryStore, name, email, role string) librarystore.UserRecord {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	require.NoError(t, err, "error in arranging test data")

	user := librarystore.UserRecord{
		ID:           GivenUniqueID(t),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	require.NoError(t, store.InsertUser(context.Background(), user), "error in arranging test data")

	return user
}

// GivenActiveBorrowInStore lends one copy of the book to the user, keeping the book counters in step.
func GivenActiveBorrowInStore(
	t testing.TB,
	store sqlengine.LibraryStore,
	userID string,
	bookID int64,
	borrowedAt time.Time,
) librarystore.BorrowRecord {
	t.Helper()

	ctx := context.Background()

	require.NoError(
		t,
		store.ApplyCopyDelta(ctx, bookID, librarystore.CopyDelta{Available: -1, Borrowed: 1}),
		"error in arranging test data",
	)

	borrow := librarystore.BorrowRecord{
		ID:         GivenUniqueID(t),
		UserID:     userID,
		BookID:     bookID,
		BorrowedAt: borrowedAt.UTC().Truncate(time.Microsecond),
	}

	require.NoError(t, store.InsertBorrow(ctx, borrow), "error in arranging test data")

	return borrow
}
