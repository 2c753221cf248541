// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/campaign-studio/internal/auth"
	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type Service struct {
	repo   Repository
	policy authz.Policy
}

func NewService(repo Repository, policy authz.Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

func (s *Service) GetByID(ctx context.Context, id string) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*auth.UserInfo, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) CreateAccount(ctx context.Context, account auth.NewAccount) (*auth.UserInfo, error) {
	user, err := s.create(ctx, account, nil)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// CreateWithRole provisions an account that already holds a role. Used to
// bootstrap the first administrator.
func (s *Service) CreateWithRole(
	ctx context.Context,
	account auth.NewAccount,
	roleID string,
) (*User, error) {
	return s.create(ctx, account, &roleID)
}

func (s *Service) create(
	ctx context.Context,
	account auth.NewAccount,
	roleID *string,
) (*User, error) {
	user := &User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(account.Username),
		Email:        strings.ToLower(strings.TrimSpace(account.Email)),
		PasswordHash: account.PasswordHash,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		RoleID:       roleID,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) TouchLastLogin(ctx context.Context, userID string) error {
	return s.repo.TouchLastLogin(ctx, userID)
}

func (s *Service) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// LoadIdentity resolves a token subject. Inactive users do not resolve.
func (s *Service) LoadIdentity(ctx context.Context, userID string) (*authz.Identity, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, fmt.Errorf("load identity: inactive user: %w", core.ErrUnauthorized)
	}

	return user.Identity(), nil
}

func (s *Service) GetUser(ctx context.Context, caller *authz.Identity, id string) (*User, error) {
	if err := s.policy.Enforce(caller, authz.ResourceUser, authz.OpRead, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateUser applies a partial update and returns the record before and
// after the change.
func (s *Service) UpdateUser(
	ctx context.Context,
	caller *authz.Identity,
	id string,
	req UpdateUserRequest,
) (*User, *User, error) {
	if err := s.policy.Enforce(caller, authz.ResourceUser, authz.OpUpdate, id); err != nil {
		return nil, nil, err
	}

	if !caller.IsAdmin() {
		req.RoleID = core.Optional[string]{}
		req.IsActive = core.Optional[bool]{}
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	before := *current

	updated := *current
	if !req.Username.Apply(&updated.Username) {
		return nil, nil, core.SchemaError("username may not be null")
	}
	if !req.Email.Apply(&updated.Email) {
		return nil, nil, core.SchemaError("email may not be null")
	}
	if !req.IsActive.Apply(&updated.IsActive) {
		return nil, nil, core.SchemaError("is_active may not be null")
	}
	req.FirstName.ApplyNullable(&updated.FirstName)
	req.LastName.ApplyNullable(&updated.LastName)
	req.RoleID.ApplyNullable(&updated.RoleID)

	updated.Username = strings.TrimSpace(updated.Username)
	updated.Email = strings.ToLower(strings.TrimSpace(updated.Email))
	if updated.Username == "" {
		return nil, nil, core.ValidationError("username may not be empty")
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, nil, err
	}

	after, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return &before, after, nil
}

func (s *Service) DeleteUser(ctx context.Context, caller *authz.Identity, id string) error {
	if err := s.policy.Enforce(caller, authz.ResourceUser, authz.OpDelete, id); err != nil {
		return err
	}

	if caller.UserID == id {
		return core.ValidationError("cannot delete your own account")
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	caller *authz.Identity,
	params ListUsersParams,
) ([]User, int, error) {
	if err := s.policy.Gate(caller, authz.ResourceUser, authz.OpList); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, params)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		RoleName:     u.Role(),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
