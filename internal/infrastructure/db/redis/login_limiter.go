package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sifrex/auth-api/internal/core/ports"
)

// LoginLimiter is the shared, Redis-backed login attempt counter.
// Key format: login_attempts:<identifier>, expiring with the window.
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, limit: limit, window: window}
}

// Check increments the counter for key and reports whether this attempt is
// allowed. The window TTL is set when the first attempt creates the key.
func (l *LoginLimiter) Check(ctx context.Context, key string) (ports.LimitResult, error) {
	rkey := l.key(key)

	n, err := l.client.Incr(ctx, rkey).Result()
	if err != nil {
		return ports.LimitResult{}, fmt.Errorf("limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, rkey, l.window).Err(); err != nil {
			return ports.LimitResult{}, fmt.Errorf("limiter expire: %w", err)
		}
	}

	if n > int64(l.limit) {
		ttl, err := l.client.TTL(ctx, rkey).Result()
		if err != nil || ttl < 0 {
			ttl = l.window
		}
		return ports.LimitResult{Remaining: 0, RetryAfter: ttl}, nil
	}

	remaining := l.limit - int(n)
	return ports.LimitResult{Allowed: true, Remaining: remaining}, nil
}

// Reset clears the counter for key.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(identifier string) string {
	return "login_attempts:" + identifier
}
