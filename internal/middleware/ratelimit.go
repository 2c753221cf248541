// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type RateLimitConfig struct {
	Limit      redis_rate.Limit
	KeyFunc    func(*http.Request) string
	FailOpen   bool
	BypassFunc func(*http.Request) bool
}

// RateLimiter enforces a GCRA budget shared through Redis. While Redis is
// unreachable each instance falls back to its own token buckets.
type RateLimiter struct {
	shared   *redis_rate.Limiter
	fallback *localLimiter
	config   RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}

	return &RateLimiter{
		shared:   redis_rate.NewLimiter(rdb),
		fallback: newLocalLimiter(cfg.Limit),
		config:   cfg,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.config.BypassFunc != nil && rl.config.BypassFunc(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := rl.config.KeyFunc(r)
		res, err := rl.allow(r.Context(), key)
		if err != nil {
			if rl.config.FailOpen {
				slog.Warn("rate limiter error, failing open", "error", err, "key", key)
				next.ServeHTTP(w, r)
				return
			}
			core.JSON(w, http.StatusServiceUnavailable, core.ErrorResponse{
				Detail: "rate limiter unavailable",
				Code:   "SERVICE_UNAVAILABLE",
			})
			return
		}

		writeLimitHeaders(w.Header(), rl.config.Limit, res)

		if res.Allowed == 0 {
			retryAfter := max(int(res.RetryAfter.Seconds()), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			core.JSON(w, http.StatusTooManyRequests, core.ErrorResponse{
				Detail: fmt.Sprintf("rate limit exceeded, retry after %d seconds", retryAfter),
				Code:   "RATE_LIMITED",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (*redis_rate.Result, error) {
	res, err := rl.shared.Allow(ctx, key, rl.config.Limit)
	if err == nil {
		return res, nil
	}

	slog.Debug("shared rate limit unavailable, using local bucket", "error", err)
	return rl.fallback.allow(key, time.Now()), nil
}

func KeyByIP(r *http.Request) string {
	return "ratelimit:ip:" + core.ClientIP(r)
}

// KeyByIPAndEndpoint scopes the budget to one route, so a burst of
// failed logins does not starve the rest of the API.
func KeyByIPAndEndpoint(r *http.Request) string {
	return KeyByIP(r) + ":endpoint:" + normalizeEndpoint(r.URL.Path)
}

// normalizeEndpoint folds UUID path segments so every campaign, ad or
// advertiser shares one bucket per route.
func normalizeEndpoint(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if uuid.Validate(seg) == nil {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func writeLimitHeaders(h http.Header, limit redis_rate.Limit, res *redis_rate.Result) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
	h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit", fmt.Sprintf("%d;t=%d", res.Remaining, int(res.ResetAfter.Seconds())))
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return PerWindow(rate, burst, time.Minute)
}

// PerWindow builds a limit of rate requests per window, as configured by
// rate_limit.requests and rate_limit.window.
func PerWindow(rate, burst int, window time.Duration) redis_rate.Limit {
	if window <= 0 {
		window = time.Minute
	}
	return redis_rate.Limit{
		Rate:   rate,
		Burst:  burst,
		Period: window,
	}
}

const (
	sweepInterval = 5 * time.Minute
	bucketIdleTTL = 10 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localLimiter is the per-process fallback. Idle buckets are swept on
// access rather than by a background goroutine.
type localLimiter struct {
	mu        sync.Mutex
	limit     redis_rate.Limit
	perSecond rate.Limit
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newLocalLimiter(limit redis_rate.Limit) *localLimiter {
	perSecond := rate.Inf
	if limit.Rate > 0 && limit.Period > 0 {
		perSecond = rate.Limit(float64(limit.Rate) / limit.Period.Seconds())
	}

	return &localLimiter{
		limit:     limit,
		perSecond: perSecond,
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

func (l *localLimiter) allow(key string, now time.Time) *redis_rate.Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.perSecond, l.limit.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	res := &redis_rate.Result{Limit: l.limit, RetryAfter: -1}

	reservation := b.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); !reservation.OK() || delay > 0 {
		reservation.CancelAt(now)
		res.RetryAfter = delay
		if !reservation.OK() {
			res.RetryAfter = l.limit.Period
		}
	} else {
		res.Allowed = 1
	}

	res.Remaining = max(int(b.limiter.TokensAt(now)), 0)
	if l.perSecond != rate.Inf && l.perSecond > 0 {
		res.ResetAfter = time.Duration(float64(time.Second) / float64(l.perSecond))
	}

	return res
}

func (l *localLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now

	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > bucketIdleTTL {
			delete(l.buckets, key)
		}
	}
}
