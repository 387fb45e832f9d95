package changeuserrole_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/changeuserrole"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

func Test_Decide(t *testing.T) {
	member := core.User{ID: "u-1", Name: "Ada", Role: core.RoleMember}
	admin := core.Principal{UserID: "u-9", Role: core.RoleAdmin}

	testCases := []struct {
		name     string
		newRole  string
		actor    core.Principal
		wantKind error
		wantMsg  string
	}{
		{name: "promotes a member", newRole: "admin", actor: admin},
		{name: "unknown role", newRole: "owner", actor: admin, wantKind: core.ErrInvalidArgument, wantMsg: "Invalid role. Must be one of: [member, admin]"},
		{
			name:     "own role",
			newRole:  "admin",
			actor:    core.Principal{UserID: "u-1", Role: core.RoleAdmin},
			wantKind: core.ErrInvalidArgument,
			wantMsg:  "You cannot change your own role",
		},
		{name: "unchanged role", newRole: "member", actor: admin, wantKind: core.ErrConflict, wantMsg: "User already has role: member"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := changeuserrole.Decide(member, changeuserrole.BuildCommand("u-1", tc.newRole, tc.actor))

			if tc.wantKind != nil {
				assert.ErrorIs(t, result.HasError(), tc.wantKind)
				assert.EqualError(t, result.HasError(), tc.wantMsg)
				return
			}

			assert.Equal(t, core.RoleMember, result.State.OldRole)
			assert.Equal(t, core.RoleAdmin, result.State.User.Role)
		})
	}
}
