package eventtree

import "log/slog"

// DefaultName is used for the tracer, the meter and the log component
// when WithName is not given.
var DefaultName = "eventtree"

// options holds configuration for a tree (unexported)
type options struct {
	name            string
	logger          *slog.Logger
	tracingEnabled  bool
	metricsEnabled  bool
	recoveryEnabled bool
}

// Option configures a Tree or a PathTree
type Option func(*options)

// WithName sets the tree name used for spans, metrics and logs
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets a custom logger for the tree
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTracing enables/disables an OpenTelemetry span per Send. Default is true.
func WithTracing(enabled bool) Option {
	return func(o *options) {
		o.tracingEnabled = enabled
	}
}

// WithMetrics enables/disables OpenTelemetry counters. Default is true.
func WithMetrics(enabled bool) Option {
	return func(o *options) {
		o.metricsEnabled = enabled
	}
}

// WithRecovery wraps every handler subscribed after tree creation with the
// Recover middleware, turning panics into ErrHandlerPanic errors.
// Default is false: a panicking handler unwinds through Send.
func WithRecovery(enabled bool) Option {
	return func(o *options) {
		o.recoveryEnabled = enabled
	}
}

// newOptions creates options with defaults and applies provided options
func newOptions(opts ...Option) *options {
	o := &options{
		name:           DefaultName,
		logger:         slog.Default(),
		tracingEnabled: true,
		metricsEnabled: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SubscribeOption configures a single subscription
type SubscribeOption[M, A any] func(*subscribeOptions[M, A])

type subscribeOptions[M, A any] struct {
	key         any
	middlewares []Middleware[M, A]
}

// WithKey gives the subscription an explicit identity. Registering a second
// handler with an equal key at the same path does not add a new entry, and
// unsubscribing any of the registrations sharing the key removes the entry.
// The key must be comparable; pointers are the usual choice.
func WithKey[M, A any](key any) SubscribeOption[M, A] {
	return func(o *subscribeOptions[M, A]) {
		o.key = key
	}
}

// WithMiddleware wraps this subscription's handler. Middlewares run in the
// given order, outermost first, inside any tree-wide middleware.
func WithMiddleware[M, A any](mw ...Middleware[M, A]) SubscribeOption[M, A] {
	return func(o *subscribeOptions[M, A]) {
		o.middlewares = append(o.middlewares, mw...)
	}
}
