package redis_test

import (
	"context"
	"testing"
	"time"

	adaptredis "github.com/rafaelleal24/orders/internal/adapters/redis"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := adaptredis.NewRateLimiter(testClient)
	ctx := context.Background()

	t.Run("allows requests under limit", func(t *testing.T) {
		key := "rate-test-under"
		for i := 0; i < 3; i++ {
			result, err := rl.Allow(ctx, key, 5, 1*time.Minute)
			if err != nil {
				t.Fatalf("request %d: expected no error, got %v", i, err)
			}
			if !result.Allowed {
				t.Fatalf("request %d: expected to be allowed", i)
			}
			if want := int64(5 - i - 1); result.Remaining != want {
				t.Fatalf("request %d: expected remaining %d, got %d", i, want, result.Remaining)
			}
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		key := "rate-test-over"
		limit := 2
		for i := 0; i < limit; i++ {
			_, _ = rl.Allow(ctx, key, limit, 1*time.Minute)
		}

		result, err := rl.Allow(ctx, key, limit, 1*time.Minute)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Allowed {
			t.Fatal("expected request to be blocked (over limit)")
		}
		if result.Remaining != 0 {
			t.Fatalf("expected no remaining requests, got %d", result.Remaining)
		}
		if result.RetryAfter <= 0 || result.RetryAfter > time.Minute {
			t.Fatalf("expected retry-after within the window, got %v", result.RetryAfter)
		}
	})

	t.Run("window expires and resets count", func(t *testing.T) {
		key := "rate-test-expire"
		limit := 1
		window := 500 * time.Millisecond

		result, _ := rl.Allow(ctx, key, limit, window)
		if !result.Allowed {
			t.Fatal("first request should be allowed")
		}

		result, _ = rl.Allow(ctx, key, limit, window)
		if result.Allowed {
			t.Fatal("second request should be blocked")
		}

		time.Sleep(time.Second)

		result, _ = rl.Allow(ctx, key, limit, window)
		if !result.Allowed {
			t.Fatal("request after window should be allowed again")
		}
	})
}
