// AngelaMos | 2026
// handler.go

package advertiser

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	gate func(authz.Resource, authz.Operation) func(http.Handler) http.Handler,
) {
	r.Route("/advertisers", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.With(gate(authz.ResourceAdvertiser, authz.OpCreate)).Post("/", h.Create)

		r.Route("/{advertiserID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.With(gate(authz.ResourceAdvertiser, authz.OpUpdate)).Put("/", h.Update)
			r.With(gate(authz.ResourceAdvertiser, authz.OpDelete)).Delete("/", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListParams{
		ListParams: core.ListParamsFromRequest(r),
		Type:       q.Get("advertiser_type"),
		Search:     q.Get("search"),
	}
	if params.Type == "" {
		params.Type = q.Get("type")
	}

	advertisers, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.HandleError(w, err, "advertiser")
		return
	}

	core.Paginated(w, ToAdvertiserListItems(advertisers), params.Page, params.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, _ := authz.FromContext(r.Context())

	var req CreateAdvertiserRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.JSONError(w, err)
		return
	}

	agg, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		core.HandleError(w, err, "advertiser")
		return
	}

	resp := ToAdvertiserResponse(agg)
	audit.Annotate(r.Context(), resp.AdvertiserID, nil, resp)

	core.Created(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "advertiserID"), "advertiser_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	agg, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "advertiser")
		return
	}

	core.OK(w, ToAdvertiserResponse(agg))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, _ := authz.FromContext(r.Context())

	id, err := core.ParseID(chi.URLParam(r, "advertiserID"), "advertiser_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateAdvertiserRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := core.ValidateStruct(h.validator, req.ValidationView()); err != nil {
		core.JSONError(w, err)
		return
	}

	before, after, err := h.service.Update(r.Context(), caller, id, req)
	if err != nil {
		core.HandleError(w, err, "advertiser")
		return
	}

	resp := ToAdvertiserResponse(after)
	audit.Annotate(r.Context(), id, ToAdvertiserResponse(before), resp)

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := authz.FromContext(r.Context())

	id, err := core.ParseID(chi.URLParam(r, "advertiserID"), "advertiser_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	before, err := h.service.Delete(r.Context(), caller, id)
	if err != nil {
		core.HandleError(w, err, "advertiser")
		return
	}

	audit.Annotate(r.Context(), id, ToAdvertiserResponse(before), nil)

	core.NoContent(w)
}
