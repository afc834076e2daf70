package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultLockoutTTL  = 15 * time.Minute
)

// LoginLimiter throttles repeated failed logins per identity, backed by Redis.
// Key format: loginfail:<email>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	lockoutTTL  time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, maxAttempts int, lockoutTTL time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if lockoutTTL <= 0 {
		lockoutTTL = defaultLockoutTTL
	}
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), lockoutTTL: lockoutTTL}
}

// TooMany reports whether the identity has exhausted its failure budget
// within the current lockout window.
func (l *LoginLimiter) TooMany(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter get: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure counts one failed attempt. The window restarts on each
// failure, so the lockout only lifts after a quiet period.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.lockoutTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	return nil
}

// Reset clears the failure count after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(email string) string {
	return "loginfail:" + email
}
