package listborrows_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-backend-go/library/features/query/listborrows"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/fixtures"    //nolint:revive
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/storewrapper" //nolint:revive
)

type borrowFixture struct {
	store    sqlengine.LibraryStore
	admin    core.Principal
	ada      core.Principal
	bob      core.Principal
	returned librarystore.BorrowRecord
	active   librarystore.BorrowRecord
	bobs     librarystore.BorrowRecord
}

func givenBorrowFixture(t *testing.T) borrowFixture {
	t.Helper()

	store := CreateWrapperWithTestConfig(t).GetStore()
	admin := GivenUserInStore(t, store, "Root", "root@example.com", "admin")
	ada := GivenUserInStore(t, store, "Ada", "ada@example.com", "member")
	bob := GivenUserInStore(t, store, "Bob", "bob@example.com", "member")
	dune := GivenBookInStore(t, store, "Dune", "Frank Herbert", 2)
	emma := GivenBookInStore(t, store, "Emma", "Jane Austen", 1)

	now := time.Now()
	returned := GivenActiveBorrowInStore(t, store, ada.ID, emma.ID, now.Add(-3*time.Hour))
	require.NoError(t, store.MarkBorrowReturned(context.Background(), returned.ID, now.Add(-2*time.Hour)))
	active := GivenActiveBorrowInStore(t, store, ada.ID, dune.ID, now.Add(-time.Hour))
	bobs := GivenActiveBorrowInStore(t, store, bob.ID, dune.ID, now)

	return borrowFixture{
		store:    store,
		admin:    core.Principal{UserID: admin.ID, Role: core.RoleAdmin},
		ada:      core.Principal{UserID: ada.ID, Role: core.RoleMember},
		bob:      core.Principal{UserID: bob.ID, Role: core.RoleMember},
		returned: returned,
		active:   active,
		bobs:     bobs,
	}
}

func Test_QueryHandler_Handle_Scopes(t *testing.T) {
	// setup
	fixture := givenBorrowFixture(t)
	handler := listborrows.NewQueryHandler(fixture.store)

	testCases := []struct {
		name    string
		query   listborrows.Query
		wantIDs []string
	}{
		{
			name:    "own records, most recent first",
			query:   listborrows.BuildQuery(listborrows.ScopeOwn, fixture.ada, ""),
			wantIDs: []string{fixture.active.ID, fixture.returned.ID},
		},
		{
			name:    "all records",
			query:   listborrows.BuildQuery(listborrows.ScopeAll, fixture.admin, ""),
			wantIDs: []string{fixture.bobs.ID, fixture.active.ID, fixture.returned.ID},
		},
		{
			name:    "records of a user",
			query:   listborrows.BuildQuery(listborrows.ScopeUser, fixture.admin, fixture.ada.UserID),
			wantIDs: []string{fixture.active.ID, fixture.returned.ID},
		},
		{
			name:    "active records of a user",
			query:   listborrows.BuildQuery(listborrows.ScopeUserActive, fixture.admin, fixture.ada.UserID),
			wantIDs: []string{fixture.active.ID},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := handler.Handle(context.Background(), tc.query)

			// assert
			require.NoError(t, err)
			assert.Equal(t, len(tc.wantIDs), result.Count)

			ids := make([]string, 0, len(result.Borrows))
			for _, borrow := range result.Borrows {
				ids = append(ids, borrow.ID)
			}

			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func Test_QueryHandler_Handle_Errors(t *testing.T) {
	// setup
	fixture := givenBorrowFixture(t)
	handler := listborrows.NewQueryHandler(fixture.store)

	testCases := []struct {
		name     string
		query    listborrows.Query
		wantKind error
		wantMsg  string
	}{
		{
			name:     "member lists all records",
			query:    listborrows.BuildQuery(listborrows.ScopeAll, fixture.bob, ""),
			wantKind: core.ErrPermissionDenied,
			wantMsg:  "Admin access required",
		},
		{
			name:     "malformed user id",
			query:    listborrows.BuildQuery(listborrows.ScopeUser, fixture.admin, "42"),
			wantKind: core.ErrInvalidArgument,
			wantMsg:  "Invalid user ID format",
		},
		{
			name:     "unknown user",
			query:    listborrows.BuildQuery(listborrows.ScopeUserActive, fixture.admin, GivenUniqueID(t)),
			wantKind: core.ErrNotFound,
			wantMsg:  "User not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := handler.Handle(context.Background(), tc.query)

			// assert
			assert.ErrorIs(t, err, tc.wantKind)
			assert.EqualError(t, err, tc.wantMsg)
		})
	}
}
