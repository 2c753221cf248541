// AngelaMos | 2026
// handler.go

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/campaign-studio/internal/audit"
	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts /users. Role and self checks are made by the
// service once the target id is known.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListUsers)
		r.Get("/{userID}", h.GetUser)
		r.Put("/{userID}", h.UpdateUser)
		r.Delete("/{userID}", h.DeleteUser)
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, _ := authz.FromContext(r.Context())

	params := ListUsersParams{
		ListParams: core.ListParamsFromRequest(r),
		Search:     r.URL.Query().Get("search"),
		Role:       r.URL.Query().Get("role"),
	}

	users, total, err := h.service.ListUsers(r.Context(), caller, params)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.Paginated(w, ToUserListItems(users), params.Page, params.PageSize, total)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := authz.FromContext(r.Context())

	id, err := core.ParseID(chi.URLParam(r, "userID"), "user_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	user, err := h.service.GetUser(r.Context(), caller, id)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, ToUserDetail(user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := authz.FromContext(r.Context())

	id, err := core.ParseID(chi.URLParam(r, "userID"), "user_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateUserRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.ValidateStruct(h.validator, req.fields()); err != nil {
		core.JSONError(w, err)
		return
	}

	before, after, err := h.service.UpdateUser(r.Context(), caller, id, req)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	audit.Annotate(r.Context(), id, ToUserDetail(before), ToUserDetail(after))

	core.OK(w, ToUserDetail(after))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := authz.FromContext(r.Context())

	id, err := core.ParseID(chi.URLParam(r, "userID"), "user_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.service.DeleteUser(r.Context(), caller, id); err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.NoContent(w)
}
