package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	defaultLockout     = 15 * time.Minute
)

// LoginLimiter counts failed logins per username in Redis.
// Key format: login_failures:<username>
//
// The counter expires lockout after the first failure of a window, so a
// username is blocked for at most lockout once it reaches maxFailures.
type LoginLimiter struct {
	client      *redis.Client
	maxFailures int64
	lockout     time.Duration
}

// NewLoginLimiter wraps client. Non-positive limits fall back to defaults.
func NewLoginLimiter(client *redis.Client, maxFailures int64, lockout time.Duration) *LoginLimiter {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if lockout <= 0 {
		lockout = defaultLockout
	}
	return &LoginLimiter{client: client, maxFailures: maxFailures, lockout: lockout}
}

// Allowed reports whether username may attempt another login.
func (l *LoginLimiter) Allowed(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter get: %w", err)
	}
	return n < l.maxFailures, nil
}

// RecordFailure increments the counter, starting the window on the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.lockout)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if err := l.client.Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(username string) string {
	return "login_failures:" + username
}
