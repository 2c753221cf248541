// AngelaMos | 2026
// policy.go

package authz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

const (
	RoleSystemAdmin     = "system_admin"
	RoleAppAdmin        = "app_admin"
	RoleCampaignManager = "campaign_manager"
	RoleViewer          = "viewer"
)

type RoleSet map[string]struct{}

func NewRoleSet(roles ...string) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s RoleSet) Contains(role string) bool {
	if role == "" {
		return false
	}
	_, ok := s[role]
	return ok
}

func (s RoleSet) String() string {
	names := make([]string, 0, len(s))
	for r := range s {
		names = append(names, r)
	}
	slices.Sort(names)
	return strings.Join(names, ",")
}

var (
	AdminRoles   = NewRoleSet(RoleSystemAdmin, RoleAppAdmin)
	ManagerRoles = NewRoleSet(RoleCampaignManager, RoleAppAdmin, RoleSystemAdmin)
)

type Resource string

const (
	ResourceCampaign   Resource = "campaigns"
	ResourceAd         Resource = "ads"
	ResourceAdvertiser Resource = "advertisers"
	ResourceUser       Resource = "users"
	ResourceRole       Resource = "roles"
	ResourceAuditLog   Resource = "audit_logs"
	ResourceSystem     Resource = "system"
)

type Operation string

const (
	OpList   Operation = "list"
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Rule is one cell of the policy table.
//
// A nil Roles means any authenticated identity passes the role gate.
// Owned additionally requires CheckOwnership against the resource owner.
// Self lets the subject of the resource through regardless of role.
type Rule struct {
	Roles RoleSet
	Owned bool
	Self  bool
}

type Policy map[Resource]map[Operation]Rule

// DefaultPolicy is the access matrix for the admin API.
var DefaultPolicy = Policy{
	ResourceCampaign: {
		OpList:   {},
		OpRead:   {},
		OpCreate: {Roles: ManagerRoles},
		OpUpdate: {Roles: ManagerRoles, Owned: true},
		OpDelete: {Roles: ManagerRoles, Owned: true},
	},
	ResourceAd: {
		OpList:   {},
		OpRead:   {},
		OpCreate: {Roles: ManagerRoles, Owned: true},
		OpUpdate: {Roles: ManagerRoles, Owned: true},
		OpDelete: {Roles: ManagerRoles, Owned: true},
	},
	ResourceAdvertiser: {
		OpList:   {},
		OpRead:   {},
		OpCreate: {Roles: ManagerRoles},
		OpUpdate: {Roles: ManagerRoles, Owned: true},
		OpDelete: {Roles: AdminRoles},
	},
	ResourceUser: {
		OpList:   {Roles: AdminRoles},
		OpRead:   {Roles: AdminRoles, Self: true},
		OpUpdate: {Roles: AdminRoles, Self: true},
		OpDelete: {Roles: AdminRoles},
	},
	ResourceRole: {
		OpList: {},
	},
	ResourceAuditLog: {
		OpList: {Roles: AdminRoles},
	},
	ResourceSystem: {
		OpRead: {Roles: AdminRoles},
	},
}

func (p Policy) Rule(res Resource, op Operation) (Rule, bool) {
	ops, ok := p[res]
	if !ok {
		return Rule{}, false
	}
	rule, ok := ops[op]
	return rule, ok
}

// Gate applies only the role part of the rule. Unknown resource and
// operation pairs are denied.
func (p Policy) Gate(id *Identity, res Resource, op Operation) error {
	if id == nil {
		return fmt.Errorf("%s %s: %w", op, res, core.ErrUnauthorized)
	}

	rule, ok := p.Rule(res, op)
	if !ok {
		return fmt.Errorf("%s %s: no rule: %w", op, res, core.ErrForbidden)
	}

	if rule.Roles == nil {
		return nil
	}

	return RequireRole(id, rule.Roles)
}

// Enforce applies the full rule. ownerID is the creator of the resource
// for Owned rules and the target user for Self rules.
func (p Policy) Enforce(id *Identity, res Resource, op Operation, ownerID string) error {
	if id == nil {
		return fmt.Errorf("%s %s: %w", op, res, core.ErrUnauthorized)
	}

	rule, ok := p.Rule(res, op)
	if !ok {
		return fmt.Errorf("%s %s: no rule: %w", op, res, core.ErrForbidden)
	}

	if rule.Self && ownerID != "" && id.UserID == ownerID {
		return nil
	}

	if err := p.Gate(id, res, op); err != nil {
		return err
	}

	if rule.Owned && !CheckOwnership(id, ownerID) {
		return core.ForbiddenError("not enough permissions for this " + singular(res))
	}

	return nil
}

// RequireRole fails with ErrForbidden unless the identity holds one of
// the allowed roles. Identities without a role always fail.
func RequireRole(id *Identity, allowed RoleSet) error {
	if id == nil {
		return fmt.Errorf("require role: %w", core.ErrUnauthorized)
	}

	if !allowed.Contains(id.RoleName) {
		return core.ForbiddenError(
			fmt.Sprintf("role required: one of [%s]", allowed),
		)
	}

	return nil
}

// CheckOwnership reports whether the identity may mutate a resource
// created by ownerID.
func CheckOwnership(id *Identity, ownerID string) bool {
	if id == nil {
		return false
	}
	if id.IsAdmin() {
		return true
	}
	return ownerID != "" && id.UserID == ownerID
}

func singular(res Resource) string {
	return strings.TrimSuffix(string(res), "s")
}
