package eventtree

import (
	"context"
	"log/slog"
)

type contextKey int

const (
	loggerKey contextKey = iota
	subscriptionIDKey
)

// ContextLogger returns the tree logger carried by a handler's context,
// or slog.Default() outside a Send.
func ContextLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// ContextWithLogger returns a context carrying l
func ContextWithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// ContextSubscriptionID returns the ID of the subscription whose handler
// is running, or "" outside a handler.
func ContextSubscriptionID(ctx context.Context) string {
	if id, ok := ctx.Value(subscriptionIDKey).(string); ok {
		return id
	}
	return ""
}

func contextWithSubscription(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, subscriptionIDKey, id)
}
