package registeruser_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/credentials"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/fixtures"    //nolint:revive
	. "github.com/AntonStoeckl/library-backend-go/testutil/librarystore/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_StoresHashedPassword(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	service := givenCredentialService(t)
	handler := registeruser.NewCommandHandler(store, service)
	userID := GivenUniqueID(t)

	// act
	user, _, err := handler.Handle(ctx, registeruser.BuildCommand(userID, "Ada", "ada@example.com", "secret1", ""))

	// assert
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, core.RoleMember, user.Role)

	stored, err := store.FindUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", stored.Email)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, service.VerifyPassword(stored.PasswordHash, "secret1"))
}

func Test_CommandHandler_Handle_Error_EmailAlreadyRegistered(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := registeruser.NewCommandHandler(store, givenCredentialService(t))

	// arrange
	GivenUserInStore(t, store, "Ada", "ada@example.com", "member")

	// act
	_, _, err := handler.Handle(ctx, registeruser.BuildCommand(GivenUniqueID(t), "Ada Two", "ada@example.com", "secret1", ""))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.EqualError(t, err, "Email already registered")
}

func Test_CommandHandler_Handle_AdminSignup(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	forbidding := registeruser.NewCommandHandler(store, givenCredentialService(t))
	allowing := registeruser.NewCommandHandler(store, givenCredentialService(t), registeruser.WithAdminSignup(true))

	// act
	_, _, forbiddenErr := forbidding.Handle(ctx, registeruser.BuildCommand(GivenUniqueID(t), "Root", "root@example.com", "secret1", "admin"))
	admin, _, allowedErr := allowing.Handle(ctx, registeruser.BuildCommand(GivenUniqueID(t), "Root", "root@example.com", "secret1", "admin"))

	// assert
	assert.ErrorIs(t, forbiddenErr, core.ErrPermissionDenied)
	assert.NoError(t, allowedErr)
	assert.Equal(t, core.RoleAdmin, admin.Role)
}

func Test_CommandHandler_Handle_RetryOptionsAreApplied(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	conflicting := &alwaysConflictingInsert{LibraryStore: store}
	handler := registeruser.NewCommandHandler(
		conflicting,
		givenCredentialService(t),
		registeruser.WithRetryOptions(shell.WithMaxAttempts(2), shell.WithBaseDelay(time.Millisecond)),
	)

	// act
	_, result, err := handler.Handle(ctx, registeruser.BuildCommand(GivenUniqueID(t), "Ada", "ada@example.com", "secret1", ""))

	// assert
	assert.ErrorIs(t, err, librarystore.ErrConcurrencyConflict)
	assert.Equal(t, 2, result.RetryAttempts)
	assert.Equal(t, 2, conflicting.inserts)
}

// alwaysConflictingInsert rejects every insert as if the row had been written concurrently.
type alwaysConflictingInsert struct {
	sqlengine.LibraryStore
	inserts int
}

func (s *alwaysConflictingInsert) InsertUser(context.Context, librarystore.UserRecord) error {
	s.inserts++

	return librarystore.ErrConcurrencyConflict
}

func givenCredentialService(t *testing.T) credentials.Service {
	t.Helper()

	service, err := credentials.NewService("test-secret", time.Hour, credentials.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err, "error in arranging test data")

	return service
}

func setupTestEnvironment(t *testing.T) (context.Context, sqlengine.LibraryStore) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctx, CreateWrapperWithTestConfig(t).GetStore()
}
