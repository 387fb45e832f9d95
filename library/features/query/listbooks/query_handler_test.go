package listbooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-backend-go/library/features/query/listbooks"
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/fixtures"    //nolint:revive
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/storewrapper" //nolint:revive
)

func Test_QueryHandler_Handle_ListsCatalogInIDOrder(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := listbooks.NewQueryHandler(store)

	// arrange
	dune := GivenBookInStore(t, store, "Dune", "Frank Herbert", 2)
	emma := GivenBookInStore(t, store, "Emma", "Jane Austen", 0)

	// act
	result, err := handler.Handle(ctx, listbooks.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Books, 2)
	assert.Equal(t, dune.ID, result.Books[0].ID)
	assert.Equal(t, int64(2), result.Books[0].AvailableCopies)
	assert.Equal(t, emma.ID, result.Books[1].ID)
	assert.False(t, result.Books[1].Available)
}

func Test_QueryHandler_Handle_EmptyCatalog(t *testing.T) {
	// setup
	store := CreateWrapperWithTestConfig(t).GetStore()
	handler := listbooks.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), listbooks.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Books)
}
