// AngelaMos | 2026
// identity.go

package authz

import (
	"context"
	"strings"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, resolved from an access token and
// the active user record behind it.
type Identity struct {
	UserID    string
	Username  string
	Email     string
	FirstName string
	LastName  string
	RoleName  string
}

// DisplayName is the creator name snapshotted onto records at write time.
func (i *Identity) DisplayName() string {
	if name := strings.TrimSpace(i.FirstName + " " + i.LastName); name != "" {
		return name
	}
	return i.Username
}

func (i *Identity) HasRole() bool {
	return i.RoleName != ""
}

func (i *Identity) IsAdmin() bool {
	return AdminRoles.Contains(i.RoleName)
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}
