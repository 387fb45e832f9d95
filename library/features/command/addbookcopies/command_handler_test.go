package addbookcopies_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/addbookcopies"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/fixtures"    //nolint:revive
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := addbookcopies.NewCommandHandler(store)

	// arrange
	book := GivenBookInStore(t, store, "Dune", "Frank Herbert", 2)

	// act
	changed, result, err := handler.Handle(ctx, addbookcopies.BuildCommand(book.ID, 3))

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, result.RetryAttempts)
	assert.Equal(t, int64(5), changed.TotalCopies)
	assert.Equal(t, book.Version+1, changed.Version)

	reloaded := GivenBookReloaded(t, store, book.ID)
	assert.Equal(t, int64(5), reloaded.TotalCopies)
	assert.Equal(t, int64(5), reloaded.AvailableCopies)
	assert.Equal(t, changed.Version, reloaded.Version)
}

func Test_CommandHandler_Handle_Error_BookNotFound(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := addbookcopies.NewCommandHandler(store)

	// act
	_, _, err := handler.Handle(ctx, addbookcopies.BuildCommand(4711, 1))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.EqualError(t, err, "Book not found")
}

func Test_CommandHandler_Handle_Error_NonPositiveCopies_ChangesNothing(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := addbookcopies.NewCommandHandler(store)

	// arrange
	book := GivenBookInStore(t, store, "Dune", "Frank Herbert", 2)

	// act
	_, _, err := handler.Handle(ctx, addbookcopies.BuildCommand(book.ID, 0))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.Equal(t, book, GivenBookReloaded(t, store, book.ID))
}

func setupTestEnvironment(t *testing.T) (context.Context, sqlengine.LibraryStore) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctx, CreateWrapperWithTestConfig(t).GetStore()
}
