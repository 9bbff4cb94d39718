package eventtree

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Responses holds the answers collected by one Send, arranged like the
// part of the tree the message visited. It is read-only once returned.
type Responses[A any] struct {
	answers  []A
	children *orderedmap.OrderedMap[string, *Responses[A]]
}

func newResponses[A any]() *Responses[A] {
	return &Responses[A]{
		children: orderedmap.New[string, *Responses[A]](),
	}
}

// Answers returns the answers of the handlers at this node, in
// registration order.
func (r *Responses[A]) Answers() []A {
	out := make([]A, len(r.answers))
	copy(out, r.answers)
	return out
}

// Child returns the responses collected under segment name.
func (r *Responses[A]) Child(name string) (*Responses[A], bool) {
	return r.children.Get(name)
}

// Children returns the child segments in visiting order.
func (r *Responses[A]) Children() []string {
	names := make([]string, 0, r.children.Len())
	for pair := r.children.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the total number of answers in r and below it.
func (r *Responses[A]) Len() int {
	n := len(r.answers)
	for pair := r.children.Oldest(); pair != nil; pair = pair.Next() {
		n += pair.Value.Len()
	}
	return n
}

// All iterates over (path, answer) pairs depth-first: the answers of a node
// before those of its children, children in visiting order. Paths are
// relative to the root of the send.
func (r *Responses[A]) All() iter.Seq2[[]string, A] {
	return func(yield func([]string, A) bool) {
		r.walk([]string{}, yield)
	}
}

func (r *Responses[A]) walk(path []string, yield func([]string, A) bool) bool {
	for _, a := range r.answers {
		if !yield(clonePath(path), a) {
			return false
		}
	}
	for pair := r.children.Oldest(); pair != nil; pair = pair.Next() {
		if !pair.Value.walk(append(clonePath(path), pair.Key), yield) {
			return false
		}
	}
	return true
}

// Response is one flattened answer.
type Response[A any] struct {
	Path   []string `json:"path"`
	Answer A        `json:"answer"`
}

// Flatten collects All into a slice.
func (r *Responses[A]) Flatten() []Response[A] {
	out := make([]Response[A], 0, r.Len())
	for path, a := range r.All() {
		out = append(out, Response[A]{Path: path, Answer: a})
	}
	return out
}

// IterResponses iterates over the answers in r, see Responses.All.
func IterResponses[A any](r *Responses[A]) iter.Seq2[[]string, A] {
	return r.All()
}

// IterResponses iterates over the answers in r, see Responses.All.
func (t *Tree[M, A]) IterResponses(r *Responses[A]) iter.Seq2[[]string, A] {
	return r.All()
}
