// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/campaign-studio/internal/auth"
	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type memoryRepo struct {
	users map[string]User
}

func newMemoryRepo(users ...User) *memoryRepo {
	m := &memoryRepo{users: map[string]User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memoryRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return core.DuplicateError("username")
		}
		if existing.Email == u.Email {
			return core.DuplicateError("email")
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &u, nil
}

func (m *memoryRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return core.ErrNotFound
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

func (m *memoryRepo) TouchLastLogin(context.Context, string) error { return nil }

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryRepo) List(context.Context, ListUsersParams) ([]User, int, error) {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

const (
	adminID   = "0b8f3a7e-1111-4c1e-9a55-6f1b2c3d4e01"
	managerID = "0b8f3a7e-2222-4c1e-9a55-6f1b2c3d4e02"
	roleID    = "0b8f3a7e-3333-4c1e-9a55-6f1b2c3d4e03"
)

func strPtr(s string) *string { return &s }

func fixtures() *memoryRepo {
	return newMemoryRepo(
		User{ID: adminID, Username: "root", Email: "root@example.com", IsActive: true,
			RoleName: strPtr(authz.RoleSystemAdmin)},
		User{ID: managerID, Username: "mia", Email: "mia@example.com", IsActive: true,
			FirstName: strPtr("Mia"), RoleName: strPtr(authz.RoleCampaignManager)},
	)
}

func adminIdentity() *authz.Identity {
	return &authz.Identity{UserID: adminID, Username: "root", RoleName: authz.RoleSystemAdmin}
}

func managerIdentity() *authz.Identity {
	return &authz.Identity{UserID: managerID, Username: "mia", RoleName: authz.RoleCampaignManager}
}

func decodeUpdate(t *testing.T, body string) UpdateUserRequest {
	t.Helper()
	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestSelfUpdateStripsRoleAndActiveFlag(t *testing.T) {
	repo := fixtures()
	svc := NewService(repo, authz.DefaultPolicy)

	req := decodeUpdate(t, `{"first_name":"Mila","role_id":"`+roleID+`","is_active":false}`)

	before, after, err := svc.UpdateUser(context.Background(), managerIdentity(), managerID, req)
	require.NoError(t, err)

	assert.Equal(t, "Mia", *before.FirstName)
	assert.Equal(t, "Mila", *after.FirstName)
	assert.Nil(t, after.RoleID)
	assert.True(t, after.IsActive)
}

func TestAdminUpdateCanAssignRoleAndClearName(t *testing.T) {
	repo := fixtures()
	svc := NewService(repo, authz.DefaultPolicy)

	req := decodeUpdate(t, `{"role_id":"`+roleID+`","first_name":null}`)

	_, after, err := svc.UpdateUser(context.Background(), adminIdentity(), managerID, req)
	require.NoError(t, err)

	require.NotNil(t, after.RoleID)
	assert.Equal(t, roleID, *after.RoleID)
	assert.Nil(t, after.FirstName)
	assert.Equal(t, "mia", after.Username)
}

func TestUpdateNullOnRequiredFieldIsSchemaError(t *testing.T) {
	svc := NewService(fixtures(), authz.DefaultPolicy)

	_, _, err := svc.UpdateUser(context.Background(), adminIdentity(), managerID,
		decodeUpdate(t, `{"username":null}`))

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
}

func TestManagerCannotUpdateOrReadOthers(t *testing.T) {
	svc := NewService(fixtures(), authz.DefaultPolicy)

	_, err := svc.GetUser(context.Background(), managerIdentity(), adminID)
	assert.True(t, errors.Is(err, core.ErrForbidden))

	_, _, err = svc.UpdateUser(context.Background(), managerIdentity(), adminID,
		decodeUpdate(t, `{"first_name":"x"}`))
	assert.True(t, errors.Is(err, core.ErrForbidden))
}

func TestDeleteUser(t *testing.T) {
	repo := fixtures()
	svc := NewService(repo, authz.DefaultPolicy)
	ctx := context.Background()

	err := svc.DeleteUser(ctx, managerIdentity(), adminID)
	assert.True(t, errors.Is(err, core.ErrForbidden))

	err = svc.DeleteUser(ctx, adminIdentity(), adminID)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)

	require.NoError(t, svc.DeleteUser(ctx, adminIdentity(), managerID))
	assert.NotContains(t, repo.users, managerID)

	err = svc.DeleteUser(ctx, adminIdentity(), managerID)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestLoadIdentityRejectsInactive(t *testing.T) {
	repo := fixtures()
	u := repo.users[managerID]
	u.IsActive = false
	repo.users[managerID] = u

	svc := NewService(repo, authz.DefaultPolicy)

	_, err := svc.LoadIdentity(context.Background(), managerID)
	assert.Error(t, err)

	id, err := svc.LoadIdentity(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleSystemAdmin, id.RoleName)
}

func TestCreateAccountNormalizesEmail(t *testing.T) {
	repo := fixtures()
	svc := NewService(repo, authz.DefaultPolicy)

	info, err := svc.CreateAccount(context.Background(), auth.NewAccount{
		Username:     "newbie",
		Email:        " New@Example.COM ",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", info.Email)
	assert.True(t, info.IsActive)
	assert.Empty(t, info.RoleName)

	_, err = svc.CreateAccount(context.Background(), auth.NewAccount{
		Username: "newbie", Email: "other@example.com",
	})
	assert.True(t, errors.Is(err, core.ErrDuplicateKey))
}
