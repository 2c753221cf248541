// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/campaign-studio/internal/config"
)

const (
	redisConnectAttempts = 5
	redisPingTimeout     = 3 * time.Second
)

// Redis backs the token blacklist and the shared rate limit counters.
type Redis struct {
	Client *redis.Client
}

// NewRedis dials Redis, retrying the first ping with exponential backoff.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opts)
	r := &Redis{Client: client}

	backoff := 250 * time.Millisecond
	for attempt := 1; ; attempt++ {
		err = r.Ping(ctx)
		if err == nil {
			return r, nil
		}
		if attempt == redisConnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Close() //nolint:errcheck // cleanup on cancelled startup
			return nil, fmt.Errorf("connect redis: %w", ctx.Err())
		case <-time.After(jitteredDuration(backoff)):
		}
		backoff *= 2
	}

	_ = client.Close() //nolint:errcheck // cleanup on connection failure
	return nil, fmt.Errorf("connect redis after %d attempts: %w", redisConnectAttempts, err)
}

func (r *Redis) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := r.Client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}
