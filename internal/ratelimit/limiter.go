package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Fixed 15-minute window per IP and purpose on the credential endpoints.
	windowDuration = 15 * time.Minute
	maxRequests    = 10
)

// Limiter is a fixed-window IP rate limiter backed by Redis. Redis faults
// are returned to the caller, which fails open; an unavailable cache must
// never lock users out.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow reports whether the IP is still under the limit for a purpose
// within the current window.
func (l *Limiter) Allow(ctx context.Context, ip, purpose string) (bool, error) {
	key := windowKey(ip, purpose, time.Now())

	count, err := l.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("failed to read rate limit counter: %w", err)
	}

	return count < maxRequests, nil
}

// Record counts one request against the IP's current window. The key
// expires with the window, so old counters clean themselves up.
func (l *Limiter) Record(ctx context.Context, ip, purpose string) error {
	key := windowKey(ip, purpose, time.Now())

	pipe := l.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, windowDuration)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}

	return nil
}

// windowKey buckets requests into fixed windows. Truncating the timestamp
// makes concurrent writers agree on the key without coordination.
func windowKey(ip, purpose string, now time.Time) string {
	window := now.Truncate(windowDuration).Unix()
	return fmt.Sprintf("ratelimit:%s:%s:%d", purpose, ip, window)
}
