// AngelaMos | 2026
// policy_test.go

package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

func identity(id, role string) *Identity {
	return &Identity{UserID: id, Username: "user-" + id, RoleName: role}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		id      *Identity
		allowed RoleSet
		wantErr error
	}{
		{"manager in manager set", identity("1", RoleCampaignManager), ManagerRoles, nil},
		{"admin in manager set", identity("1", RoleAppAdmin), ManagerRoles, nil},
		{"manager not in admin set", identity("1", RoleCampaignManager), AdminRoles, core.ErrForbidden},
		{"viewer not in manager set", identity("1", RoleViewer), ManagerRoles, core.ErrForbidden},
		{"no role always fails", identity("1", ""), ManagerRoles, core.ErrForbidden},
		{"nil identity", nil, ManagerRoles, core.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.id, tt.allowed)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckOwnership(t *testing.T) {
	assert.True(t, CheckOwnership(identity("a", RoleCampaignManager), "a"))
	assert.False(t, CheckOwnership(identity("a", RoleCampaignManager), "b"))
	assert.True(t, CheckOwnership(identity("a", RoleSystemAdmin), "b"))
	assert.True(t, CheckOwnership(identity("a", RoleAppAdmin), "b"))
	assert.False(t, CheckOwnership(identity("a", RoleCampaignManager), ""))
	assert.False(t, CheckOwnership(nil, "a"))
}

func TestEnforceCampaignOwnership(t *testing.T) {
	owner := identity("owner", RoleCampaignManager)
	other := identity("other", RoleCampaignManager)
	admin := identity("admin", RoleAppAdmin)

	require.NoError(t, DefaultPolicy.Enforce(owner, ResourceCampaign, OpUpdate, "owner"))
	require.NoError(t, DefaultPolicy.Enforce(admin, ResourceCampaign, OpDelete, "owner"))

	err := DefaultPolicy.Enforce(other, ResourceCampaign, OpUpdate, "owner")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = DefaultPolicy.Enforce(other, ResourceCampaign, OpDelete, "owner")
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestEnforceAdvertiserDeleteIsAdminOnly(t *testing.T) {
	owner := identity("owner", RoleCampaignManager)

	err := DefaultPolicy.Enforce(owner, ResourceAdvertiser, OpDelete, "owner")
	assert.ErrorIs(t, err, core.ErrForbidden)

	assert.NoError(t, DefaultPolicy.Enforce(identity("x", RoleSystemAdmin), ResourceAdvertiser, OpDelete, "owner"))
}

func TestEnforceUserSelfService(t *testing.T) {
	self := identity("me", RoleViewer)
	roleless := identity("me", "")

	assert.NoError(t, DefaultPolicy.Enforce(self, ResourceUser, OpRead, "me"))
	assert.NoError(t, DefaultPolicy.Enforce(roleless, ResourceUser, OpUpdate, "me"))
	assert.ErrorIs(t, DefaultPolicy.Enforce(self, ResourceUser, OpRead, "someone"), core.ErrForbidden)
	assert.ErrorIs(t, DefaultPolicy.Enforce(self, ResourceUser, OpDelete, "me"), core.ErrForbidden)
	assert.ErrorIs(t, DefaultPolicy.Gate(self, ResourceUser, OpList), core.ErrForbidden)
}

func TestGateReadsAreOpen(t *testing.T) {
	roleless := identity("r", "")

	for _, res := range []Resource{ResourceCampaign, ResourceAd, ResourceAdvertiser} {
		assert.NoError(t, DefaultPolicy.Gate(roleless, res, OpList))
		assert.NoError(t, DefaultPolicy.Gate(roleless, res, OpRead))
		assert.ErrorIs(t, DefaultPolicy.Gate(roleless, res, OpCreate), core.ErrForbidden)
	}
}

func TestGateUnknownRuleDenied(t *testing.T) {
	err := DefaultPolicy.Gate(identity("a", RoleSystemAdmin), ResourceRole, OpDelete)
	assert.True(t, errors.Is(err, core.ErrForbidden))
}

func TestDisplayName(t *testing.T) {
	id := &Identity{Username: "alice", FirstName: "Alice", LastName: "Liddell"}
	assert.Equal(t, "Alice Liddell", id.DisplayName())

	id = &Identity{Username: "alice", FirstName: "Alice"}
	assert.Equal(t, "Alice", id.DisplayName())

	id = &Identity{Username: "alice"}
	assert.Equal(t, "alice", id.DisplayName())
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), identity("a", RoleViewer))
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "a", got.UserID)
}
