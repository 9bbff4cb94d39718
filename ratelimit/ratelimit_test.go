package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucket(t *testing.T) {
	t.Run("NewTokenBucket creates limiter", func(t *testing.T) {
		limiter := NewTokenBucket(100, 10)

		if limiter.Limit() != 100 {
			t.Errorf("expected limit 100, got %f", limiter.Limit())
		}
		if limiter.Burst() != 10 {
			t.Errorf("expected burst 10, got %d", limiter.Burst())
		}
	})

	t.Run("Allow returns false when exhausted", func(t *testing.T) {
		limiter := NewTokenBucket(1, 2)
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			if !limiter.Allow(ctx) {
				t.Errorf("expected Allow to succeed at iteration %d", i)
			}
		}
		if limiter.Allow(ctx) {
			t.Error("expected Allow to fail once the burst is spent")
		}
	})

	t.Run("Wait respects context cancellation", func(t *testing.T) {
		limiter := NewTokenBucket(0.001, 1)
		ctx := context.Background()
		limiter.Allow(ctx)

		ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		if err := limiter.Wait(ctxWithTimeout); err == nil {
			t.Error("expected Wait to fail with context deadline")
		}
	})

	t.Run("SetLimit and SetBurst", func(t *testing.T) {
		limiter := NewTokenBucket(1, 1)
		limiter.SetLimit(50)
		limiter.SetBurst(5)

		if limiter.Limit() != 50 {
			t.Errorf("expected limit 50, got %f", limiter.Limit())
		}
		if limiter.Burst() != 5 {
			t.Errorf("expected burst 5, got %d", limiter.Burst())
		}
	})
}

func TestKeyed(t *testing.T) {
	ctx := context.Background()

	t.Run("keys are limited independently", func(t *testing.T) {
		k := NewKeyed(0.001, 1)

		if !k.Allow(ctx, "a/b") {
			t.Error("expected first Allow for a/b to succeed")
		}
		if k.Allow(ctx, "a/b") {
			t.Error("expected second Allow for a/b to fail")
		}
		if !k.Allow(ctx, "a/c") {
			t.Error("expected first Allow for a/c to succeed")
		}
		if k.Len() != 2 {
			t.Errorf("expected 2 buckets, got %d", k.Len())
		}
	})

	t.Run("For returns the same bucket", func(t *testing.T) {
		k := NewKeyed(1, 1)
		if k.For("x") != k.For("x") {
			t.Error("expected the same bucket for the same key")
		}
	})

	t.Run("Forget resets the bucket", func(t *testing.T) {
		k := NewKeyed(0.001, 1)
		k.Allow(ctx, "x")
		k.Forget("x")

		if !k.Allow(ctx, "x") {
			t.Error("expected a fresh bucket after Forget")
		}
	})
}
