package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per client in fixed windows
type RateLimiter interface {
	// Allow records one request for key and reports whether it is within the
	// limit, and how many requests remain in the current window.
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
}

type rateLimitCache struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimitCache(client *redis.Client, limit int, window time.Duration) RateLimiter {
	return &rateLimitCache{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (c *rateLimitCache) Allow(ctx context.Context, key string) (bool, int, error) {
	windowStart := c.now().Truncate(c.window).Unix()
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, windowStart)

	// the TTL is set once, by whichever request opens the window
	pipe := c.client.TxPipeline()
	pipe.SetNX(ctx, redisKey, 0, c.window)
	incr := pipe.Incr(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	count := int(incr.Val())
	remaining := c.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= c.limit, remaining, nil
}
