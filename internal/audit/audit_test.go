// AngelaMos | 2026
// audit_test.go

package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/campaign-studio/internal/config"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Insert(ctx context.Context, e *Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type captureSink struct {
	mu      sync.Mutex
	entries []*Entry
}

func (s *captureSink) Record(e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *captureSink) all() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Entry(nil), s.entries...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const campaignID = "5f0c6b8e-8d7a-4a57-9d3b-2f1a9c0e7b11"

func TestParseResource(t *testing.T) {
	tests := []struct {
		path     string
		wantType string
		wantID   string
	}{
		{"/api/campaigns", "campaigns", ""},
		{"/api/campaigns/" + campaignID, "campaigns", campaignID},
		{"/api/campaigns/" + campaignID + "/ads", "ads", ""},
		{"/api/auth/register", "register", ""},
		{"/api", "unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			gotType, gotID := ParseResource("/api", tt.path)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantID, gotID)
		})
	}
}

func TestActionFor(t *testing.T) {
	for method, want := range map[string]string{
		http.MethodPost:   ActionCreate,
		http.MethodPut:    ActionUpdate,
		http.MethodPatch:  ActionUpdate,
		http.MethodDelete: ActionDelete,
	} {
		got, ok := ActionFor(method)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := ActionFor(http.MethodGet)
	assert.False(t, ok)
}

func newAuditedHandler(sink Sink, status int, fn func(r *http.Request)) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fn != nil {
			fn(r)
		}
		w.WriteHeader(status)
	})

	return Middleware(sink, MiddlewareConfig{
		Prefix:       "/api",
		ExcludePaths: []string{"/api/auth/login"},
		Logger:       discardLogger(),
	})(inner)
}

func TestMiddlewareRecordsSuccessfulWrite(t *testing.T) {
	sink := &captureSink{}
	h := newAuditedHandler(sink, http.StatusCreated, func(r *http.Request) {
		SetActor(r.Context(), "user-1")
		Annotate(r.Context(), campaignID, nil, map[string]string{"campaign_name": "Spring Sale"})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/campaigns", nil)
	req.Header.Set("User-Agent", "studio-test")
	req.RemoteAddr = "10.1.2.3:5555"
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	entries := sink.all()
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, ActionCreate, e.Action)
	assert.Equal(t, "campaigns", e.ResourceType)
	require.NotNil(t, e.ResourceID)
	assert.Equal(t, campaignID, *e.ResourceID)
	require.NotNil(t, e.UserID)
	assert.Equal(t, "user-1", *e.UserID)
	require.NotNil(t, e.IPAddress)
	assert.Equal(t, "10.1.2.3", *e.IPAddress)
	require.NotNil(t, e.NewValues)
	assert.JSONEq(t, `{"campaign_name":"Spring Sale"}`, *e.NewValues)
	assert.Nil(t, e.OldValues)
}

func TestMiddlewareIgnoresReadsFailuresAndExclusions(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"read", http.MethodGet, "/api/campaigns", http.StatusOK},
		{"client error", http.MethodPost, "/api/campaigns", http.StatusBadRequest},
		{"forbidden", http.MethodDelete, "/api/campaigns/" + campaignID, http.StatusForbidden},
		{"server error", http.MethodPut, "/api/campaigns/" + campaignID, http.StatusInternalServerError},
		{"excluded path", http.MethodPost, "/api/auth/login", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captureSink{}
			h := newAuditedHandler(sink, tt.status, nil)

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))

			assert.Empty(t, sink.all())
		})
	}
}

func TestMiddlewareSkip(t *testing.T) {
	sink := &captureSink{}
	h := newAuditedHandler(sink, http.StatusNoContent, func(r *http.Request) {
		Skip(r.Context())
	})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Empty(t, sink.all())
}

func TestRecorderWritesEntries(t *testing.T) {
	store := &mockStore{}
	written := make(chan *Entry, 1)
	store.On("Insert", mock.Anything, mock.AnythingOfType("*audit.Entry")).
		Run(func(args mock.Arguments) { written <- args.Get(1).(*Entry) }).
		Return(nil)

	r := NewRecorder(store, discardLogger(), config.AuditConfig{BufferSize: 4})
	r.Record(&Entry{Action: ActionDelete, ResourceType: "ads"})

	select {
	case e := <-written:
		assert.Equal(t, "ads", e.ResourceType)
	case <-time.After(2 * time.Second):
		t.Fatal("entry was not written")
	}

	require.NoError(t, r.Close(context.Background()))
	store.AssertExpectations(t)
}

func TestRecorderSwallowsStoreFailure(t *testing.T) {
	store := &mockStore{}
	store.On("Insert", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	r := NewRecorder(store, discardLogger(), config.AuditConfig{BufferSize: 4})
	r.Record(&Entry{Action: ActionCreate, ResourceType: "campaigns"})

	require.NoError(t, r.Close(context.Background()))
	assert.Equal(t, int64(1), r.Failed())
}

func TestRecorderDropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	store := &mockStore{}
	store.On("Insert", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(nil)

	r := NewRecorder(store, discardLogger(), config.AuditConfig{BufferSize: 1})

	for range 5 {
		r.Record(&Entry{Action: ActionCreate, ResourceType: "campaigns"})
	}

	assert.GreaterOrEqual(t, r.Dropped(), int64(3))

	close(release)
	require.NoError(t, r.Close(context.Background()))
}

func TestRecorderDropsAfterClose(t *testing.T) {
	store := &mockStore{}
	r := NewRecorder(store, discardLogger(), config.AuditConfig{})
	require.NoError(t, r.Close(context.Background()))

	r.Record(&Entry{Action: ActionCreate})

	assert.Equal(t, int64(1), r.Dropped())
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
