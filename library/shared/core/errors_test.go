package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

func Test_Error_MatchesItsKind(t *testing.T) {
	testCases := []struct {
		err          error
		expectedKind error
		expectedName string
	}{
		{err: core.InvalidArgument("bad %s", "id"), expectedKind: core.ErrInvalidArgument, expectedName: "invalid_argument"},
		{err: core.NotFound("Book not found"), expectedKind: core.ErrNotFound, expectedName: "not_found"},
		{err: core.Conflict("Book already returned"), expectedKind: core.ErrConflict, expectedName: "conflict"},
		{err: core.FailedPrecondition("nope"), expectedKind: core.ErrFailedPrecondition, expectedName: "failed_precondition"},
		{err: core.Unauthenticated("Invalid credentials"), expectedKind: core.ErrUnauthenticated, expectedName: "unauthenticated"},
		{err: core.PermissionDenied("Admin access required"), expectedKind: core.ErrPermissionDenied, expectedName: "permission_denied"},
	}

	for _, tc := range testCases {
		t.Run(tc.expectedName, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tc.err)

			assert.ErrorIs(t, wrapped, tc.expectedKind)
			assert.True(t, core.IsBusinessError(wrapped))
			assert.Equal(t, tc.expectedName, core.KindOf(wrapped))
		})
	}
}

func Test_Error_FormatsMessage(t *testing.T) {
	err := core.InvalidArgument("bad %s", "id")

	assert.EqualError(t, err, "bad id")
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func Test_KindOf_PlainError_IsEmpty(t *testing.T) {
	err := errors.New("boom")

	assert.False(t, core.IsBusinessError(err))
	assert.Empty(t, core.KindOf(err))
}
