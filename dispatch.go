package eventtree

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys
const (
	spanKeyTree    = "eventtree.tree"
	spanKeyPath    = "eventtree.path"
	spanKeyDepth   = "eventtree.depth"
	spanKeyAnswers = "eventtree.answers"
)

// Send delivers msg to every handler on the way from the root to path
// (linecast) and to every handler at path and below it (broadcast), and
// returns their answers arranged as a Responses tree.
//
// If path leaves the subscribed part of the tree, Send returns the answers
// collected up to the last existing node. A handler error stops the walk;
// Send then returns nil and a *HandlerError wrapping it.
//
// ctx is handed to the handlers together with the tree logger; Send does
// not check it for cancellation.
func (t *Tree[M, A]) Send(ctx context.Context, path []string, msg M) (*Responses[A], error) {
	to := clonePath(path)
	ctx = ContextWithLogger(ctx, t.logger)

	var span trace.Span
	if t.tracingEnabled {
		ctx, span = otel.Tracer(t.name).Start(ctx, t.name+".send",
			trace.WithAttributes(
				attribute.String(spanKeyTree, t.name),
				attribute.String(spanKeyPath, strings.Join(to, "/")),
				attribute.Int(spanKeyDepth, len(to))),
			trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()
	}
	t.metrics.sent(ctx, len(to))

	res, err := t.dispatch(ctx, to, msg)
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		t.logger.Debug("send failed", "path", to, "error", err)
		return nil, err
	}
	if span != nil {
		span.SetAttributes(attribute.Int(spanKeyAnswers, res.Len()))
	}
	return res, nil
}

func (t *Tree[M, A]) dispatch(ctx context.Context, to []string, msg M) (*Responses[A], error) {
	// linecast: ancestors of the target, root first
	results := newResponses[A]()
	collect := results
	node := t.root
	for i, step := range to {
		answers, err := t.invoke(ctx, node, msg, to, to[:i])
		if err != nil {
			return nil, err
		}
		collect.answers = answers

		child, ok := node.children.Get(step)
		if !ok {
			// nothing subscribed further down
			return results, nil
		}
		node = child
		next := newResponses[A]()
		collect.children.Set(step, next)
		collect = next
	}

	// broadcast: the target and its subtree
	if err := t.broadcast(ctx, node, msg, to, to, collect); err != nil {
		return nil, err
	}
	return results, nil
}

// broadcast fills into with the answers of node and, recursively, of its
// descendants. The child list is captured after node's own handlers ran;
// children detached in the meantime are skipped.
func (t *Tree[M, A]) broadcast(ctx context.Context, node *Node[M, A], msg M, to, at []string, into *Responses[A]) error {
	answers, err := t.invoke(ctx, node, msg, to, at)
	if err != nil {
		return err
	}
	into.answers = answers

	for _, kid := range node.captureChildren() {
		if cur, ok := node.children.Get(kid.name); !ok || cur != kid.node {
			continue
		}
		sub := newResponses[A]()
		into.children.Set(kid.name, sub)
		kidAt := append(clonePath(at), kid.name)
		if err := t.broadcast(ctx, kid.node, msg, to, kidAt, sub); err != nil {
			return err
		}
	}
	return nil
}

// invoke runs the handlers registered at node, in registration order,
// as captured at call time.
func (t *Tree[M, A]) invoke(ctx context.Context, node *Node[M, A], msg M, to, at []string) ([]A, error) {
	subs := node.subscriptions()
	if len(subs) == 0 {
		return nil, nil
	}
	answers := make([]A, 0, len(subs))
	for _, sub := range subs {
		hctx := contextWithSubscription(ctx, sub.id)
		ans, err := sub.handler(hctx, msg, clonePath(to), clonePath(at))
		t.metrics.invoked(ctx, len(at))
		if err != nil {
			t.metrics.failed(ctx, len(at))
			return nil, &HandlerError{
				Path:   clonePath(at),
				Target: clonePath(to),
				Err:    err,
			}
		}
		answers = append(answers, ans)
	}
	return answers, nil
}
