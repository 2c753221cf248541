// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/campaign-studio/internal/authz"
)

type User struct {
	ID           string     `db:"user_id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    *string    `db:"first_name"`
	LastName     *string    `db:"last_name"`
	RoleID       *string    `db:"role_id"`
	RoleName     *string    `db:"role_name"`
	IsActive     bool       `db:"is_active"`
	IsVerified   bool       `db:"is_verified"`
	LastLogin    *time.Time `db:"last_login"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (u *User) Role() string {
	if u.RoleName == nil {
		return ""
	}
	return *u.RoleName
}

func (u *User) Identity() *authz.Identity {
	return &authz.Identity{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: deref(u.FirstName),
		LastName:  deref(u.LastName),
		RoleName:  u.Role(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
