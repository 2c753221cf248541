// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis forces every limiter call onto the in-process fallback.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterFallsBackWhenRedisIsDown(t *testing.T) {
	rl := NewRateLimiter(unreachableRedis(t), RateLimitConfig{
		Limit: PerMinute(1, 2),
	})
	h := rl.Handler(okHandler())

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/campaigns", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitExceededResponse(t *testing.T) {
	rl := NewRateLimiter(unreachableRedis(t), RateLimitConfig{
		Limit: PerMinute(1, 1),
	})
	h := rl.Handler(okHandler())

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1;w=60", first.Header().Get("RateLimit-Policy"))

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}

func TestRateLimiterBypass(t *testing.T) {
	rl := NewRateLimiter(unreachableRedis(t), RateLimitConfig{
		Limit:      PerMinute(1, 1),
		BypassFunc: func(r *http.Request) bool { return r.URL.Path == "/healthz" },
	})
	h := rl.Handler(okHandler())

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestKeyByIPAndEndpointNormalizesIDs(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet, "/api/campaigns/6f1c1f9e-0a8e-4c55-9a57-5b0f4f3f2d11", nil)
	b := httptest.NewRequest(http.MethodGet, "/api/campaigns/0b7c6a55-3c3e-4f5e-8f0b-2a1d9e3c4b21", nil)

	assert.Equal(t, KeyByIPAndEndpoint(a), KeyByIPAndEndpoint(b))
	assert.Contains(t, KeyByIPAndEndpoint(a), "/api/campaigns/{id}")

	login := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	assert.NotEqual(t, KeyByIPAndEndpoint(a), KeyByIPAndEndpoint(login))
}

func TestPerWindowDefaultsToMinute(t *testing.T) {
	assert.Equal(t, time.Minute, PerWindow(10, 5, 0).Period)
	assert.Equal(t, 30*time.Second, PerWindow(10, 5, 30*time.Second).Period)
}

func TestLocalLimiterRefillsAndSweeps(t *testing.T) {
	l := newLocalLimiter(PerMinute(60, 1))
	start := time.Now()

	assert.Equal(t, 1, l.allow("a", start).Allowed)

	denied := l.allow("a", start)
	assert.Equal(t, 0, denied.Allowed)
	assert.Greater(t, denied.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, denied.RetryAfter, time.Second)

	assert.Equal(t, 1, l.allow("a", start.Add(time.Second)).Allowed)
	assert.Equal(t, 1, l.allow("b", start).Allowed)

	later := start.Add(bucketIdleTTL + sweepInterval + time.Second)
	l.allow("c", later)
	assert.NotContains(t, l.buckets, "a")
	assert.NotContains(t, l.buckets, "b")
	assert.Contains(t, l.buckets, "c")
}
