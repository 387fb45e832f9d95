package discontinuebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/discontinuebook"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/fixtures"    //nolint:revive
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := discontinuebook.NewCommandHandler(store)

	// arrange
	book := GivenBookInStore(t, store, "Dune", "Frank Herbert", 3)

	// act
	discontinued, result, err := handler.Handle(ctx, discontinuebook.BuildCommand(book.ID))

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, "Dune", discontinued.Title)

	reloaded := GivenBookReloaded(t, store, book.ID)
	assert.True(t, reloaded.Discontinued)
	assert.Zero(t, reloaded.TotalCopies)
	assert.False(t, reloaded.Available)
}

func Test_CommandHandler_Handle_Idempotent_WhenAlreadyDiscontinued(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := discontinuebook.NewCommandHandler(store)

	// arrange
	book := GivenBookInStore(t, store, "Dune", "Frank Herbert", 3)
	_, _, err := handler.Handle(ctx, discontinuebook.BuildCommand(book.ID))
	assert.NoError(t, err)
	book = GivenBookReloaded(t, store, book.ID)

	// act
	_, result, err := handler.Handle(ctx, discontinuebook.BuildCommand(book.ID))

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, book.Version, GivenBookReloaded(t, store, book.ID).Version)
}

func Test_CommandHandler_Handle_Error_CopiesBorrowed_ChangesNothing(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := discontinuebook.NewCommandHandler(store)

	// arrange
	book := GivenBookInStore(t, store, "Dune", "Frank Herbert", 3)
	user := GivenUserInStore(t, store, "Ada", "ada@example.com", "member")
	GivenActiveBorrowInStore(t, store, user.ID, book.ID, time.Now())
	book = GivenBookReloaded(t, store, book.ID)

	// act
	_, _, err := handler.Handle(ctx, discontinuebook.BuildCommand(book.ID))

	// assert
	assert.ErrorIs(t, err, core.ErrFailedPrecondition)
	assert.Equal(t, book, GivenBookReloaded(t, store, book.ID))
}

func Test_CommandHandler_Handle_Error_BookNotFound(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := discontinuebook.NewCommandHandler(store)

	// act
	_, _, err := handler.Handle(ctx, discontinuebook.BuildCommand(12))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func setupTestEnvironment(t *testing.T) (context.Context, sqlengine.LibraryStore) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctx, CreateWrapperWithTestConfig(t).GetStore()
}
