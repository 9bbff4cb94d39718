package eventtree

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rbaliyan/eventtree/ratelimit"
)

// Middleware wraps a handler with additional behavior.
type Middleware[M, A any] func(Handler[M, A]) Handler[M, A]

// Chain applies middlewares to h. The first middleware is the outermost
// and runs first.
func Chain[M, A any](h Handler[M, A], mws ...Middleware[M, A]) Handler[M, A] {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recover turns a handler panic into an error wrapping ErrHandlerPanic.
// The Send that invoked the handler fails with that error instead of
// unwinding.
func Recover[M, A any]() Middleware[M, A] {
	return func(next Handler[M, A]) Handler[M, A] {
		return func(ctx context.Context, msg M, to, at []string) (ans A, err error) {
			defer func() {
				if r := recover(); r != nil {
					ContextLogger(ctx).Warn("recovered handler panic",
						"subscription_id", ContextSubscriptionID(ctx),
						"at", at,
						"panic", r)
					var zero A
					ans, err = zero, fmt.Errorf("%w: %v", ErrHandlerPanic, r)
				}
			}()
			return next(ctx, msg, to, at)
		}
	}
}

// RateLimit fails invocations with ErrRateLimited when l refuses them.
// One limiter is shared by every invocation of the wrapped handler.
func RateLimit[M, A any](l ratelimit.Limiter) Middleware[M, A] {
	return func(next Handler[M, A]) Handler[M, A] {
		return func(ctx context.Context, msg M, to, at []string) (A, error) {
			if !l.Allow(ctx) {
				var zero A
				return zero, ErrRateLimited
			}
			return next(ctx, msg, to, at)
		}
	}
}

// RateLimitPerTarget is RateLimit with one bucket per target path, so a
// burst of sends to one path does not starve sends to another.
func RateLimitPerTarget[M, A any](k *ratelimit.Keyed) Middleware[M, A] {
	return func(next Handler[M, A]) Handler[M, A] {
		return func(ctx context.Context, msg M, to, at []string) (A, error) {
			if !k.Allow(ctx, strings.Join(to, "/")) {
				var zero A
				return zero, fmt.Errorf("%w: target %q", ErrRateLimited, strings.Join(to, "/"))
			}
			return next(ctx, msg, to, at)
		}
	}
}

// Logging logs every invocation at level through the context logger,
// with its duration and error.
func Logging[M, A any](level slog.Level) Middleware[M, A] {
	return func(next Handler[M, A]) Handler[M, A] {
		return func(ctx context.Context, msg M, to, at []string) (A, error) {
			start := time.Now()
			ans, err := next(ctx, msg, to, at)
			attrs := []any{
				"subscription_id", ContextSubscriptionID(ctx),
				"to", to,
				"at", at,
				"duration", time.Since(start),
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			ContextLogger(ctx).Log(ctx, level, "handler invoked", attrs...)
			return ans, err
		}
	}
}
