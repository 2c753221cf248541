// AngelaMos | 2026
// handler.go

package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts the audit log listing on an already gated admin
// router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/audit-logs", h.List)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListParams{
		Page:         core.ParseIntQuery(r, "page", 1),
		PageSize:     core.ParseIntQuery(r, "page_size", 50),
		ResourceType: q.Get("resource_type"),
		UserID:       q.Get("user_id"),
		Action:       q.Get("action"),
	}
	params.Normalize()

	entries, total, err := h.repo.List(r.Context(), params)
	if err != nil {
		core.HandleError(w, err, "audit log")
		return
	}

	items := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, ToEntryResponse(&entries[i]))
	}

	core.Paginated(w, items, params.Page, params.PageSize, total)
}
