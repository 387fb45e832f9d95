package changeuserrole_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/changeuserrole"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/fixtures"    //nolint:revive
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := changeuserrole.NewCommandHandler(store)

	// arrange
	admin := GivenUserInStore(t, store, "Root", "root@example.com", "admin")
	user := GivenUserInStore(t, store, "Ada", "ada@example.com", "member")

	// act
	change, _, err := handler.Handle(ctx, changeuserrole.BuildCommand(user.ID, "admin", principalOf(admin)))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, core.RoleMember, change.OldRole)
	assert.Equal(t, core.RoleAdmin, change.User.Role)
	assert.Equal(t, "Ada", change.User.Name)

	reloaded, err := store.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", reloaded.Role)
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := changeuserrole.NewCommandHandler(store)

	// arrange
	admin := GivenUserInStore(t, store, "Root", "root@example.com", "admin")
	member := GivenUserInStore(t, store, "Ada", "ada@example.com", "member")

	testCases := []struct {
		name     string
		userID   string
		newRole  string
		wantKind error
		wantMsg  string
	}{
		{name: "malformed id", userID: "abc", newRole: "admin", wantKind: core.ErrInvalidArgument, wantMsg: "Invalid user ID format"},
		{name: "unknown user", userID: GivenUniqueID(t), newRole: "admin", wantKind: core.ErrNotFound, wantMsg: "User not found"},
		{name: "own role", userID: admin.ID, newRole: "member", wantKind: core.ErrInvalidArgument, wantMsg: "You cannot change your own role"},
		{name: "unchanged role", userID: member.ID, newRole: "member", wantKind: core.ErrConflict, wantMsg: "User already has role: member"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, _, err := handler.Handle(ctx, changeuserrole.BuildCommand(tc.userID, tc.newRole, principalOf(admin)))

			// assert
			assert.ErrorIs(t, err, tc.wantKind)
			assert.EqualError(t, err, tc.wantMsg)
		})
	}
}

func Test_CommandHandler_Handle_RacingChangeIsReportedAsUnchanged(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)

	// arrange
	admin := GivenUserInStore(t, store, "Root", "root@example.com", "admin")
	member := GivenUserInStore(t, store, "Ada", "ada@example.com", "member")
	racing := &promoteBeforeFirstUpdate{LibraryStore: store}
	handler := changeuserrole.NewCommandHandler(
		racing,
		changeuserrole.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)),
	)

	// act
	_, result, err := handler.Handle(ctx, changeuserrole.BuildCommand(member.ID, "admin", principalOf(admin)))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.EqualError(t, err, "User already has role: admin")
	assert.Equal(t, 2, result.RetryAttempts)
}

// promoteBeforeFirstUpdate simulates another admin promoting the same user between load and update.
type promoteBeforeFirstUpdate struct {
	sqlengine.LibraryStore
	raced bool
}

func (s *promoteBeforeFirstUpdate) UpdateUserRole(ctx context.Context, userID, expectedRole, newRole string) error {
	if !s.raced {
		s.raced = true
		if err := s.LibraryStore.UpdateUserRole(ctx, userID, expectedRole, newRole); err != nil {
			return err
		}
	}

	return s.LibraryStore.UpdateUserRole(ctx, userID, expectedRole, newRole)
}

func principalOf(user librarystore.UserRecord) core.Principal {
	return core.Principal{UserID: user.ID, Role: core.Role(user.Role)}
}

func setupTestEnvironment(t *testing.T) (context.Context, sqlengine.LibraryStore) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctx, CreateWrapperWithTestConfig(t).GetStore()
}
