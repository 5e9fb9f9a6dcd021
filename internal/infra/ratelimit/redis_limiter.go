// Package ratelimit throttles repeated login and verification-resend attempts.
package ratelimit

import (
	"context"
	"time"

	"accounts/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// redisLimiter counts attempts in fixed windows shared by every instance.
type redisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedisLimiter counts attempts under "rl:<prefix>:<key>" with a fixed window.
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) service.RateLimiter {
	return &redisLimiter{
		client: client,
		prefix: "rl:" + prefix + ":",
		limit:  limit,
		window: window,
	}
}

// Allow increments the window counter and starts the window on the first hit.
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	cnt, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis incr")
	}
	if cnt == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, errors.Wrap(err, "redis expire")
		}
	}

	return cnt <= int64(l.limit), nil
}
