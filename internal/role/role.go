// AngelaMos | 2026
// role.go

package role

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type Role struct {
	ID          string    `db:"role_id"`
	Name        string    `db:"role_name"`
	DisplayName string    `db:"role_display_name"`
	Description *string   `db:"role_description"`
	Permissions string    `db:"permissions"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

type Response struct {
	RoleID      string          `json:"role_id"`
	RoleName    string          `json:"role_name"`
	DisplayName string          `json:"role_display_name"`
	Description *string         `json:"role_description"`
	Permissions json.RawMessage `json:"permissions"`
	IsActive    bool            `json:"is_active"`
}

func ToResponse(r *Role) Response {
	perms := json.RawMessage(r.Permissions)
	if !json.Valid(perms) {
		perms = json.RawMessage(`{}`)
	}
	return Response{
		RoleID:      r.ID,
		RoleName:    r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Permissions: perms,
		IsActive:    r.IsActive,
	}
}

type Repository interface {
	List(ctx context.Context) ([]Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectRole = `
	SELECT role_id, role_name, role_display_name, role_description,
	       permissions::text AS permissions, is_active, created_at
	FROM roles`

func (r *repository) List(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := r.db.SelectContext(ctx, &roles, selectRole+` ORDER BY role_name`); err != nil {
		return nil, core.WrapDBError("list roles", err)
	}
	return roles, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	if err := r.db.GetContext(ctx, &role, selectRole+` WHERE role_name = $1`, name); err != nil {
		return nil, core.WrapDBError("get role", err)
	}
	return &role, nil
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Get("/roles", h.List)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.repo.List(r.Context())
	if err != nil {
		core.HandleError(w, err, "role")
		return
	}

	items := make([]Response, 0, len(roles))
	for i := range roles {
		items = append(items, ToResponse(&roles[i]))
	}

	core.OK(w, items)
}
