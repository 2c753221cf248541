// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

// UpdateUserRequest is a partial update. role_id and is_active are
// dropped for non-admin callers editing themselves.
type UpdateUserRequest struct {
	Username  core.Optional[string] `json:"username"`
	Email     core.Optional[string] `json:"email"`
	FirstName core.Optional[string] `json:"first_name"`
	LastName  core.Optional[string] `json:"last_name"`
	IsActive  core.Optional[bool]   `json:"is_active"`
	RoleID    core.Optional[string] `json:"role_id"`
}

// updateFields is the validator view of the non-null values present.
type updateFields struct {
	Username  *string `json:"username"   validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email"      validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name"  validate:"omitempty,max=100"`
	RoleID    *string `json:"role_id"    validate:"omitempty,uuid"`
}

func (r *UpdateUserRequest) fields() updateFields {
	var f updateFields
	if r.Username.HasValue() {
		f.Username = r.Username.Ptr()
	}
	if r.Email.HasValue() {
		f.Email = r.Email.Ptr()
	}
	if r.FirstName.HasValue() {
		f.FirstName = r.FirstName.Ptr()
	}
	if r.LastName.HasValue() {
		f.LastName = r.LastName.Ptr()
	}
	if r.RoleID.HasValue() {
		f.RoleID = r.RoleID.Ptr()
	}
	return f
}

type ListUsersParams struct {
	core.ListParams
	Search string
	Role   string
}

type UserListItem struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	RoleID    *string   `json:"role_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type UserDetail struct {
	UserID     string     `json:"user_id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	RoleID     *string    `json:"role_id"`
	RoleName   *string    `json:"role_name"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	LastLogin  *time.Time `json:"last_login"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func ToUserListItem(u *User) UserListItem {
	return UserListItem{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		RoleID:    u.RoleID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserListItems(users []User) []UserListItem {
	items := make([]UserListItem, 0, len(users))
	for i := range users {
		items = append(items, ToUserListItem(&users[i]))
	}
	return items
}

func ToUserDetail(u *User) UserDetail {
	return UserDetail{
		UserID:     u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		RoleID:     u.RoleID,
		RoleName:   u.RoleName,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
