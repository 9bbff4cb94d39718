package eventtree

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Handler receives a message sent to path to. at is the path of the node
// the handler is registered at: a prefix of to during linecast, an
// extension of to during broadcast, equal to to at the target itself.
// A non-nil error aborts the Send that invoked the handler.
type Handler[M, A any] func(ctx context.Context, msg M, to, at []string) (A, error)

// Unsubscribe removes a handler registered with Subscribe. It is safe to
// call more than once.
type Unsubscribe func()

// Tree is a path-addressed publish/subscribe router. Paths are segment
// lists; the empty path is the root.
//
// A Tree is owned by one goroutine at a time: it does no locking. Handlers
// run synchronously inside Send and may call back into the same tree.
type Tree[M, A any] struct {
	name            string
	root            *Node[M, A]
	logger          *slog.Logger
	tracingEnabled  bool
	recoveryEnabled bool
	metrics         *treeMetrics
	middlewares     []Middleware[M, A]
}

// New creates an empty tree holding only the root node.
func New[M, A any](opts ...Option) *Tree[M, A] {
	o := newOptions(opts...)
	return &Tree[M, A]{
		name:            o.name,
		root:            newNode[M, A](nil, ""),
		logger:          o.logger.With("component", o.name),
		tracingEnabled:  o.tracingEnabled,
		recoveryEnabled: o.recoveryEnabled,
		metrics:         newTreeMetrics(o.name, o.metricsEnabled),
	}
}

// Name returns the tree name.
func (t *Tree[M, A]) Name() string {
	return t.name
}

// Use appends tree-wide middleware. It applies to handlers subscribed
// after the call; existing subscriptions keep their handler chain.
func (t *Tree[M, A]) Use(mw ...Middleware[M, A]) {
	t.middlewares = append(t.middlewares, mw...)
}

// Inspect returns the live root node.
func (t *Tree[M, A]) Inspect() *Node[M, A] {
	return t.root
}

// Subscribe registers h at path and returns the function removing it.
func (t *Tree[M, A]) Subscribe(path []string, h Handler[M, A], opts ...SubscribeOption[M, A]) Unsubscribe {
	return t.Register(path, h, opts...).Unsubscribe
}

// Register is Subscribe returning the full Subscription.
func (t *Tree[M, A]) Register(path []string, h Handler[M, A], opts ...SubscribeOption[M, A]) *Subscription[M, A] {
	o := &subscribeOptions[M, A]{}
	for _, opt := range opts {
		opt(o)
	}

	node := t.root
	for _, step := range path {
		var created bool
		if node, created = node.child(step); created {
			t.logger.Debug("created node", "path", node.Path())
		}
	}

	sub := &Subscription[M, A]{
		id:   uuid.NewString(),
		tree: t,
		node: node,
		path: clonePath(path),
	}
	sub.key = o.key
	if sub.key == nil {
		sub.key = sub
	}
	sub.handler = t.wrap(h, o.middlewares)

	// an equal key keeps its original entry and position
	if _, present := node.handlers.Get(sub.key); !present {
		node.handlers.Set(sub.key, sub)
	}

	t.metrics.subscribed(context.Background(), len(path))
	t.logger.Debug("subscribed", "subscription_id", sub.id, "path", sub.path)
	return sub
}

// wrap builds the handler chain: recovery outermost, then tree-wide
// middleware, then the subscription's own.
func (t *Tree[M, A]) wrap(h Handler[M, A], own []Middleware[M, A]) Handler[M, A] {
	chain := make([]Middleware[M, A], 0, len(t.middlewares)+len(own)+1)
	if t.recoveryEnabled {
		chain = append(chain, Recover[M, A]())
	}
	chain = append(chain, t.middlewares...)
	chain = append(chain, own...)
	return Chain(h, chain...)
}

// Subscription is a handler registered at one node.
type Subscription[M, A any] struct {
	id      string
	tree    *Tree[M, A]
	node    *Node[M, A]
	path    []string
	key     any
	handler Handler[M, A]
}

// ID returns the unique subscription ID.
func (s *Subscription[M, A]) ID() string {
	return s.id
}

// Path returns the path the handler was registered at.
func (s *Subscription[M, A]) Path() []string {
	return clonePath(s.path)
}

// Active reports whether the subscription's key is still registered on a
// node reachable from the root.
func (s *Subscription[M, A]) Active() bool {
	if _, ok := s.node.handlers.Get(s.key); !ok {
		return false
	}
	for n := s.node; n.parent != nil; n = n.parent {
		if !n.Attached() {
			return false
		}
	}
	return true
}

// Unsubscribe removes the handler from the node it was registered at and
// prunes the now-empty chain of nodes up to the first ancestor that still
// has handlers or children. The root is never pruned.
//
// Pruning removes a node from its parent only while the parent still maps
// the node's name to that same node, so a token outliving its node cannot
// remove a node created later under the same path.
func (s *Subscription[M, A]) Unsubscribe() {
	t := s.tree
	ctx := context.Background()

	n := s.node
	if _, removed := n.handlers.Delete(s.key); removed {
		t.metrics.unsubscribed(ctx, len(s.path))
		t.logger.Debug("unsubscribed", "subscription_id", s.id, "path", s.path)
	}

	for n.parent != nil && n.empty() {
		if !n.Attached() {
			break
		}
		n.parent.children.Delete(n.name)
		t.metrics.pruned(ctx)
		t.logger.Debug("pruned node", "path", n.Path())
		n = n.parent
	}
}
