package eventtree

import (
	"context"
	"iter"
	"strings"
)

// DefaultSeparator is used by NewPathTree when given an empty separator.
const DefaultSeparator = "/"

// PathHandler is a Handler receiving paths joined with the tree separator.
type PathHandler[M, A any] func(ctx context.Context, msg M, to, at string) (A, error)

// PathTree addresses a Tree with separator-delimited strings. Empty
// segments are dropped, so "/a//b/" is the same path as "a/b" and "" is
// the root.
type PathTree[M, A any] struct {
	tree *Tree[M, A]
	sep  string
}

// NewPathTree creates an empty string-addressed tree.
func NewPathTree[M, A any](sep string, opts ...Option) *PathTree[M, A] {
	if sep == "" {
		sep = DefaultSeparator
	}
	return &PathTree[M, A]{
		tree: New[M, A](opts...),
		sep:  sep,
	}
}

// Separator returns the path separator.
func (p *PathTree[M, A]) Separator() string {
	return p.sep
}

// TakePath splits s into segments, dropping empty ones.
func (p *PathTree[M, A]) TakePath(s string) []string {
	segments := []string{}
	for _, seg := range strings.Split(s, p.sep) {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// MakePath joins segments with the separator.
func (p *PathTree[M, A]) MakePath(segments []string) string {
	return strings.Join(segments, p.sep)
}

// Tree returns the underlying segment-addressed tree.
func (p *PathTree[M, A]) Tree() *Tree[M, A] {
	return p.tree
}

// Use appends tree-wide middleware, see Tree.Use.
func (p *PathTree[M, A]) Use(mw ...Middleware[M, A]) {
	p.tree.Use(mw...)
}

// Inspect returns the live root node.
func (p *PathTree[M, A]) Inspect() *Node[M, A] {
	return p.tree.Inspect()
}

// Subscribe registers h at path and returns the function removing it.
func (p *PathTree[M, A]) Subscribe(path string, h PathHandler[M, A], opts ...SubscribeOption[M, A]) Unsubscribe {
	return p.Register(path, h, opts...).Unsubscribe
}

// Register is Subscribe returning the full Subscription.
func (p *PathTree[M, A]) Register(path string, h PathHandler[M, A], opts ...SubscribeOption[M, A]) *Subscription[M, A] {
	return p.tree.Register(p.TakePath(path), p.adapt(h), opts...)
}

func (p *PathTree[M, A]) adapt(h PathHandler[M, A]) Handler[M, A] {
	return func(ctx context.Context, msg M, to, at []string) (A, error) {
		return h(ctx, msg, p.MakePath(to), p.MakePath(at))
	}
}

// Send delivers msg to path, see Tree.Send.
func (p *PathTree[M, A]) Send(ctx context.Context, path string, msg M) (*Responses[A], error) {
	return p.tree.Send(ctx, p.TakePath(path), msg)
}

// IterResponses iterates over the answers in r with joined paths.
func (p *PathTree[M, A]) IterResponses(r *Responses[A]) iter.Seq2[string, A] {
	return func(yield func(string, A) bool) {
		for path, a := range r.All() {
			if !yield(p.MakePath(path), a) {
				return
			}
		}
	}
}
