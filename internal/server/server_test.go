// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/campaign-studio/internal/config"
)

type shutdownFlag struct {
	set atomic.Bool
}

func (f *shutdownFlag) SetShutdown(v bool) { f.set.Store(v) }

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestRouterServesRegisteredRoutes(t *testing.T) {
	srv := New(Config{ServerConfig: testServerConfig()})
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestShutdownFlipsHealthFirst(t *testing.T) {
	flag := &shutdownFlag{}
	srv := New(Config{ServerConfig: testServerConfig(), HealthHandler: flag})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	require.NoError(t, srv.Shutdown(context.Background(), 10*time.Millisecond))
	assert.True(t, flag.set.Load())

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestShutdownHonorsContextDuringDrain(t *testing.T) {
	srv := New(Config{ServerConfig: testServerConfig()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.Shutdown(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}
