// Package ratelimit provides the limiters behind the eventtree RateLimit
// middlewares.
//
//   - TokenBucket: one token bucket (golang.org/x/time/rate)
//   - Keyed: one token bucket per key, created on first use, for limiting
//     each target path independently
//
// Limiters are consulted synchronously from inside Send, so handlers are
// never delayed: a refused invocation fails instead of waiting. Wait is
// available for callers that pace their own sends.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter decides whether one more event may happen now.
//
// All implementations must be safe for concurrent use.
type Limiter interface {
	// Allow returns true if an event can happen right now.
	// This is a non-blocking check.
	Allow(ctx context.Context) bool

	// Wait blocks until an event is allowed or context is cancelled.
	Wait(ctx context.Context) error
}

// TokenBucket is a local token bucket: tokens are added at rps per second,
// at most burst of them accumulate, each event consumes one.
//
// Example:
//
//	// 100 sends per second with burst of 10
//	limiter := ratelimit.NewTokenBucket(100, 10)
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket creates a new token bucket rate limiter.
func NewTokenBucket(rps float64, burst int) *TokenBucket {
	return &TokenBucket{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Allow returns true if an event can happen right now.
// Consumes one token if available.
func (t *TokenBucket) Allow(ctx context.Context) bool {
	return t.limiter.Allow()
}

// Wait blocks until an event is allowed or context is cancelled.
func (t *TokenBucket) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// SetLimit updates the rate limit dynamically.
func (t *TokenBucket) SetLimit(rps float64) {
	t.limiter.SetLimit(rate.Limit(rps))
}

// SetBurst updates the burst size dynamically.
func (t *TokenBucket) SetBurst(burst int) {
	t.limiter.SetBurst(burst)
}

// Limit returns the current rate limit (events per second).
func (t *TokenBucket) Limit() float64 {
	return float64(t.limiter.Limit())
}

// Burst returns the current burst size.
func (t *TokenBucket) Burst() int {
	return t.limiter.Burst()
}

var _ Limiter = (*TokenBucket)(nil)

// Keyed holds one TokenBucket per key, all with the same rate and burst.
type Keyed struct {
	mu      sync.Mutex
	rps     float64
	burst   int
	buckets map[string]*TokenBucket
}

// NewKeyed creates an empty set of per-key token buckets.
func NewKeyed(rps float64, burst int) *Keyed {
	return &Keyed{
		rps:     rps,
		burst:   burst,
		buckets: make(map[string]*TokenBucket),
	}
}

// For returns the bucket for key, creating it on first use.
func (k *Keyed) For(key string) *TokenBucket {
	k.mu.Lock()
	defer k.mu.Unlock()
	b, ok := k.buckets[key]
	if !ok {
		b = NewTokenBucket(k.rps, k.burst)
		k.buckets[key] = b
	}
	return b
}

// Allow consumes a token from key's bucket if one is available.
func (k *Keyed) Allow(ctx context.Context, key string) bool {
	return k.For(key).Allow(ctx)
}

// Forget drops key's bucket; the next use starts with a full burst.
func (k *Keyed) Forget(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.buckets, key)
}

// Len returns the number of buckets currently held.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}
