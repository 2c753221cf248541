// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/campaign-studio/internal/authz"
)

type fixedCounts struct {
	counts *EntityCounts
	err    error
}

func (f fixedCounts) Counts(context.Context) (*EntityCounts, error) {
	return f.counts, f.err
}

type auditCounters struct{ dropped, failed int64 }

func (a auditCounters) Dropped() int64 { return a.dropped }
func (a auditCounters) Failed() int64  { return a.failed }

func passthrough(next http.Handler) http.Handler { return next }

// denyGate refuses everything except the listed resource.
func denyGate(allowed authz.Resource) func(authz.Resource, authz.Operation) func(http.Handler) http.Handler {
	return func(res authz.Resource, _ authz.Operation) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if res != allowed {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
			})
		}
	}
}

func newRouter(h *Handler, allowed authz.Resource) chi.Router {
	r := chi.NewRouter()
	h.RegisterRoutes(r, passthrough, denyGate(allowed), func(r chi.Router) {
		r.Get("/audit-logs", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
	})
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSystemStats(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Counts: fixedCounts{counts: &EntityCounts{
			Users:     3,
			Campaigns: 2,
			CampaignStatuses: []StatusCount{
				{Status: "active", Count: 1},
				{Status: "draft", Count: 1},
			},
			Advertisers: 1,
		}},
		DBStats:   func() sql.DBStats { return sql.DBStats{OpenConnections: 4, InUse: 1} },
		DBPing:    func(context.Context) error { return nil },
		RedisPing: func(context.Context) error { return errors.New("down") },
		Audit:     auditCounters{dropped: 2, failed: 1},
	})

	rec := get(newRouter(h, authz.ResourceSystem), "/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats SystemStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))

	require.NotNil(t, stats.Entities)
	assert.Equal(t, 3, stats.Entities.Users)
	assert.Equal(t, 2, stats.Entities.Campaigns)
	assert.Len(t, stats.Entities.CampaignStatuses, 2)
	assert.True(t, stats.Database.Healthy)
	require.NotNil(t, stats.Database.Stats)
	assert.Equal(t, 4, stats.Database.Stats.OpenConnections)
	assert.False(t, stats.Redis.Healthy)
	assert.Nil(t, stats.Redis.Stats)
	require.NotNil(t, stats.Audit)
	assert.Equal(t, int64(2), stats.Audit.Dropped)
	assert.Equal(t, int64(1), stats.Audit.Failed)
	assert.NotEmpty(t, stats.Runtime.GoVersion)
}

func TestSystemStatsCountFailure(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Counts: fixedCounts{err: errors.New("relation does not exist")},
	})

	rec := get(newRouter(h, authz.ResourceSystem), "/admin/stats")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation does not exist")
}

func TestAdminRoutesAreGatedSeparately(t *testing.T) {
	h := NewHandler(HandlerConfig{})

	systemOnly := newRouter(h, authz.ResourceSystem)
	assert.Equal(t, http.StatusOK, get(systemOnly, "/admin/stats/runtime").Code)
	assert.Equal(t, http.StatusForbidden, get(systemOnly, "/admin/audit-logs").Code)

	auditOnly := newRouter(h, authz.ResourceAuditLog)
	assert.Equal(t, http.StatusForbidden, get(auditOnly, "/admin/stats").Code)
	assert.Equal(t, http.StatusTeapot, get(auditOnly, "/admin/audit-logs").Code)
}
