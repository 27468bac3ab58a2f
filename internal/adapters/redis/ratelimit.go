package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/orders/internal/adapters/http/middleware"
)

// Fixed window counter. Returns the hit count and the window's remaining
// lifetime in milliseconds.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('PTTL', KEYS[1])}
`)

type RateLimiter struct {
	client *Client
}

func NewRateLimiter(client *Client) middleware.RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (middleware.RateLimitResult, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)
	values, err := rateLimitScript.Run(ctx, r.client.rdb, []string{redisKey}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return middleware.RateLimitResult{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	if len(values) != 2 {
		return middleware.RateLimitResult{}, fmt.Errorf("rate limit %s: unexpected script reply %v", key, values)
	}

	count, ttl := values[0], values[1]
	result := middleware.RateLimitResult{
		Allowed:   count <= int64(limit),
		Remaining: max(int64(limit)-count, 0),
	}
	if !result.Allowed && ttl > 0 {
		result.RetryAfter = time.Duration(ttl) * time.Millisecond
	}
	return result, nil
}
