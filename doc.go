// Package eventtree provides a hierarchical, path-addressed publish/subscribe
// router running entirely in process.
//
// Handlers subscribe at a path (a list of segments). A message sent to a
// path reaches three audiences:
//   - Linecast: the handlers of every ancestor of the path, root first
//   - Same path: the handlers registered at the path itself
//   - Broadcast: the handlers of every descendant of the path, depth-first,
//     children in the order they were first subscribed
//
// Handlers on sibling branches are not reached.
//
// Basic example:
//
//	tree := eventtree.New[string, int]()
//
//	unsubscribe := tree.Subscribe([]string{"orders", "eu"},
//	    func(ctx context.Context, msg string, to, at []string) (int, error) {
//	        return len(msg), nil
//	    })
//	defer unsubscribe()
//
//	res, err := tree.Send(ctx, []string{"orders"}, "created")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for path, answer := range res.All() {
//	    fmt.Println(path, answer) // [orders eu] 7
//	}
//
// String paths:
//
//	tree := eventtree.NewPathTree[string, int]("/")
//	tree.Subscribe("orders/eu", handler)
//	tree.Send(ctx, "orders", "created")
//
// Responses:
// Send returns a Responses tree shaped like the part of the subscription
// tree the message visited. All (or IterResponses) flattens it into
// (path, answer) pairs: a node's own answers first, then its children.
//
// Tree shape:
// Nodes are created on the first subscription through them. Unsubscribing
// the last handler of a node removes it, together with every ancestor left
// without handlers or children. The root is never removed. Inspect returns
// the live root for diagnostics; Snapshot and Export give stable copies.
//
// Handler identity:
// Every Subscribe is a separate registration unless WithKey gives several
// registrations at the same path the same key, in which case only the
// first is kept and any of their unsubscribe functions removes it.
//
// Errors:
// A handler error aborts the send; Send returns a *HandlerError naming the
// node whose handler failed. Missing paths are not errors. Panics unwind
// through Send unless the tree is built WithRecovery(true) or the handler
// is wrapped with Recover.
//
// Reentrancy:
// Handlers may subscribe, unsubscribe and send on the tree that invoked
// them. The handlers of a node are captured when the send reaches it, its
// children after those handlers ran. A captured child detached before the
// send reaches it is skipped; nodes attached after the capture are not
// visited by that send.
//
// Concurrency:
// A Tree does no locking and must be used from one goroutine at a time.
//
// Tree Options:
//   - WithName: name used for spans, metrics and logs. Default "eventtree".
//   - WithLogger: set the slog logger.
//   - WithTracing: enable/disable a span per send. Default is true.
//   - WithMetrics: enable/disable OpenTelemetry counters. Default is true.
//   - WithRecovery: convert handler panics to ErrHandlerPanic. Default is false.
//
// Subscribe Options:
//   - WithKey: explicit handler identity.
//   - WithMiddleware: wrap the handler (Recover, RateLimit, Logging, ...).
package eventtree
