// AngelaMos | 2026
// middleware.go

package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type contextKey string

const recordKey contextKey = "audit_record"

// Sink receives finished entries. *Recorder is the production sink.
type Sink interface {
	Record(e *Entry)
}

// record collects what downstream handlers learn about the request.
type record struct {
	mu           sync.Mutex
	actorID      string
	resourceType string
	resourceID   string
	oldValues    any
	newValues    any
	skip         bool
}

// SetActor attributes the request to a user. Called by the authenticator
// once the identity is known.
func SetActor(ctx context.Context, userID string) {
	if rec, ok := ctx.Value(recordKey).(*record); ok {
		rec.mu.Lock()
		rec.actorID = userID
		rec.mu.Unlock()
	}
}

// Annotate attaches the affected resource id and optional before/after
// snapshots. Any argument may be empty.
func Annotate(ctx context.Context, resourceID string, oldValues, newValues any) {
	rec, ok := ctx.Value(recordKey).(*record)
	if !ok {
		return
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if resourceID != "" {
		rec.resourceID = resourceID
	}
	if oldValues != nil {
		rec.oldValues = oldValues
	}
	if newValues != nil {
		rec.newValues = newValues
	}
}

// Skip suppresses the entry for this request.
func Skip(ctx context.Context) {
	if rec, ok := ctx.Value(recordKey).(*record); ok {
		rec.mu.Lock()
		rec.skip = true
		rec.mu.Unlock()
	}
}

type MiddlewareConfig struct {
	// Prefix is stripped before the resource type is read from the path.
	Prefix string
	// ExcludePaths are never recorded.
	ExcludePaths []string
	Logger       *slog.Logger
}

// Middleware records successful mutating requests. It never alters the
// response: the entry is built after the handler returns and handed to
// the sink without waiting.
func Middleware(sink Sink, cfg MiddlewareConfig) func(http.Handler) http.Handler {
	excluded := make(map[string]struct{}, len(cfg.ExcludePaths))
	for _, p := range cfg.ExcludePaths {
		excluded[p] = struct{}{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action, mutating := ActionFor(r.Method)
			if !mutating {
				next.ServeHTTP(w, r)
				return
			}

			if _, skip := excluded[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			rec := &record{}
			rec.resourceType, rec.resourceID = ParseResource(cfg.Prefix, r.URL.Path)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), recordKey, rec)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status < 200 || status >= 300 {
				return
			}

			entry := rec.entry(action, r, logger)
			if entry == nil {
				return
			}

			core.AddSpanEvent(r.Context(), "audit.recorded")
			sink.Record(entry)
		})
	}
}

func (rec *record) entry(action string, r *http.Request, logger *slog.Logger) *Entry {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.skip {
		return nil
	}

	e := &Entry{
		Action:       action,
		ResourceType: rec.resourceType,
		UserID:       optionalString(rec.actorID),
		ResourceID:   optionalString(rec.resourceID),
		IPAddress:    optionalString(core.ClientIP(r)),
		UserAgent:    optionalString(r.UserAgent()),
	}

	e.OldValues = marshalSnapshot(rec.oldValues, logger)
	e.NewValues = marshalSnapshot(rec.newValues, logger)

	return e
}

// ActionFor maps an HTTP verb to an audit action.
func ActionFor(method string) (string, bool) {
	switch method {
	case http.MethodPost:
		return ActionCreate, true
	case http.MethodPut, http.MethodPatch:
		return ActionUpdate, true
	case http.MethodDelete:
		return ActionDelete, true
	default:
		return "", false
	}
}

// ParseResource reads the innermost collection and, when present, the
// UUID that follows it. /campaigns/{id}/ads yields ("ads", "") and
// /ads/{id} yields ("ads", id).
func ParseResource(prefix, path string) (string, string) {
	path = strings.TrimPrefix(path, prefix)
	parts := strings.Split(strings.Trim(path, "/"), "/")

	resourceType := "unknown"
	resourceID := ""

	for i := 0; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		if _, err := uuid.Parse(parts[i]); err == nil {
			resourceID = parts[i]
			continue
		}
		resourceType = parts[i]
		resourceID = ""
	}

	return resourceType, resourceID
}

func marshalSnapshot(v any, logger *slog.Logger) *string {
	if v == nil {
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		logger.Warn("audit snapshot not serializable", "error", err)
		return nil
	}

	s := string(b)
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
