// AngelaMos | 2026
// handler.go

package ad

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
	r.Route("/ads", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.With(gate(authz.ResourceAd, authz.OpCreate)).Post("/", h.Create)

		r.Route("/{adID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.With(gate(authz.ResourceAd, authz.OpUpdate)).Put("/", h.Update)
			r.With(gate(authz.ResourceAd, authz.OpDelete)).Delete("/", h.Delete)
		})
	})
}

// CampaignRoutes returns the hook that mounts /ads beneath a campaign
// router already carrying {campaignID} and authentication.
func (h *Handler) CampaignRoutes(
	gate func(authz.Resource, authz.Operation) func(http.Handler) http.Handler,
) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/ads", h.ListForCampaign)
		r.With(gate(authz.ResourceAd, authz.OpCreate)).Post("/ads", h.CreateForCampaign)
	}
}

func listParams(r *http.Request) ListParams {
	q := r.URL.Query()
	return ListParams{
		ListParams: core.ListParamsFromRequest(r),
		CampaignID: q.Get("campaign_id"),
		Status:     q.Get("status"),
		AdType:     q.Get("ad_type"),
		Search:     q.Get("search"),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	if params.CampaignID != "" {
		id, err := core.ParseID(params.CampaignID, "campaign_id")
		if err != nil {
			core.JSONError(w, err)
			return
		}
		params.CampaignID = id
	}

	h.list(w, r, params)
}

func (h *Handler) ListForCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "campaignID"), "campaign_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	params := listParams(r)
	params.CampaignID = id

	h.list(w, r, params)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, params ListParams) {
	ads, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.HandleError(w, err, "ad")
		return
	}

	core.Paginated(w, ToAdListItems(ads), params.Page, params.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAdRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	h.create(w, r, req)
}

func (h *Handler) CreateForCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "campaignID"), "campaign_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req CreateAdRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}
	req.CampaignID = id

	h.create(w, r, req)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req CreateAdRequest) {
	caller, _ := authz.FromContext(r.Context())

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.JSONError(w, err)
		return
	}

	agg, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		core.HandleError(w, err, "ad")
		return
	}

	resp := ToAdResponse(agg)
	audit.Annotate(r.Context(), resp.AdID, nil, resp)

	core.Created(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "adID"), "ad_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	agg, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "ad")
		return
	}

	core.OK(w, ToAdResponse(agg))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, _ := authz.FromContext(r.Context())

	id, err := core.ParseID(chi.URLParam(r, "adID"), "ad_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateAdRequest
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
		core.HandleError(w, err, "ad")
		return
	}

	resp := ToAdResponse(after)
	audit.Annotate(r.Context(), id, ToAdResponse(before), resp)

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := authz.FromContext(r.Context())

	id, err := core.ParseID(chi.URLParam(r, "adID"), "ad_id")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	before, err := h.service.Delete(r.Context(), caller, id)
	if err != nil {
		core.HandleError(w, err, "ad")
		return
	}

	audit.Annotate(r.Context(), id, ToAdResponse(before), nil)

	core.NoContent(w)
}
