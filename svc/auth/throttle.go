package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter throttles keyed actions with a fixed window counter in
// Redis: INCR per attempt, expiry set on the first one. Keys are scoped by
// flow and email (e.g. "login:ann@x.com"), so one hammered address cannot
// lock out others.
type AttemptLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewAttemptLimiter allows up to limit attempts per key per window.
func NewAttemptLimiter(client *redis.Client, limit int64, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow records one attempt and returns ErrTooManyAttempts once the key
// exceeds its budget for the current window.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) error {
	rkey := "throttle:" + key

	count, err := l.client.Incr(ctx, rkey).Result()
	if err != nil {
		return fmt.Errorf("throttle check failed: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, rkey, l.window).Err(); err != nil {
			return fmt.Errorf("throttle check failed: %w", err)
		}
	}

	if count > l.limit {
		return errors.Join(ErrTooManyAttempts, fmt.Errorf("key %q: %d attempts", key, count))
	}
	return nil
}
