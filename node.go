package eventtree

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is one path position in the subscription tree.
//
// Nodes are created on the first Subscribe through their segment and
// detached from their parent when the last handler below them is
// unsubscribed. The root has no parent and is never detached.
//
// A *Node returned by Inspect is the live tree: use only the accessors and
// do not hold on to it across Subscribe/unsubscribe calls if you need a
// stable view, take a Snapshot instead.
type Node[M, A any] struct {
	parent   *Node[M, A]
	name     string
	handlers *orderedmap.OrderedMap[any, *Subscription[M, A]]
	children *orderedmap.OrderedMap[string, *Node[M, A]]
}

func newNode[M, A any](parent *Node[M, A], name string) *Node[M, A] {
	return &Node[M, A]{
		parent:   parent,
		name:     name,
		handlers: orderedmap.New[any, *Subscription[M, A]](),
		children: orderedmap.New[string, *Node[M, A]](),
	}
}

// Name returns the segment this node occupies under its parent, "" for the root.
func (n *Node[M, A]) Name() string {
	return n.name
}

// Parent returns the parent node, nil for the root.
// A detached node keeps its former parent.
func (n *Node[M, A]) Parent() *Node[M, A] {
	return n.parent
}

// IsRoot reports whether n is a tree root.
func (n *Node[M, A]) IsRoot() bool {
	return n.parent == nil
}

// Len returns the number of handlers registered at exactly this node.
func (n *Node[M, A]) Len() int {
	return n.handlers.Len()
}

// Child returns the child node under segment name.
func (n *Node[M, A]) Child(name string) (*Node[M, A], bool) {
	return n.children.Get(name)
}

// Children returns the child segments in insertion order.
func (n *Node[M, A]) Children() []string {
	names := make([]string, 0, n.children.Len())
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Path returns the segments from the root down to n.
func (n *Node[M, A]) Path() []string {
	path := []string{}
	for cur := n; cur.parent != nil; cur = cur.parent {
		path = append(path, cur.name)
	}
	slices.Reverse(path)
	return path
}

// Attached reports whether n is still reachable from its parent.
// The root is always attached.
func (n *Node[M, A]) Attached() bool {
	if n.parent == nil {
		return true
	}
	cur, ok := n.parent.children.Get(n.name)
	return ok && cur == n
}

func (n *Node[M, A]) empty() bool {
	return n.handlers.Len() == 0 && n.children.Len() == 0
}

// child returns the child under name, creating it if absent.
func (n *Node[M, A]) child(name string) (*Node[M, A], bool) {
	if c, ok := n.children.Get(name); ok {
		return c, false
	}
	c := newNode(n, name)
	n.children.Set(name, c)
	return c, true
}

// subscriptions captures the handler list in registration order.
func (n *Node[M, A]) subscriptions() []*Subscription[M, A] {
	subs := make([]*Subscription[M, A], 0, n.handlers.Len())
	for pair := n.handlers.Oldest(); pair != nil; pair = pair.Next() {
		subs = append(subs, pair.Value)
	}
	return subs
}

// namedNode is a child captured together with the key it was reached by.
type namedNode[M, A any] struct {
	name string
	node *Node[M, A]
}

// captureChildren copies the child list in insertion order.
func (n *Node[M, A]) captureChildren() []namedNode[M, A] {
	kids := make([]namedNode[M, A], 0, n.children.Len())
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		kids = append(kids, namedNode[M, A]{name: pair.Key, node: pair.Value})
	}
	return kids
}

// clonePath copies p; the result is never nil.
func clonePath(p []string) []string {
	out := make([]string, len(p))
	copy(out, p)
	return out
}
