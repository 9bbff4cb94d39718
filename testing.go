package eventtree

import (
	"context"
	"sync"
)

// Call is one handler invocation seen by a Recorder.
type Call[M any] struct {
	Msg M
	To  []string
	At  []string
}

// Recorder records the invocations of the handlers it hands out.
// Useful for testing what a send reached, and in which order.
//
// Example:
//
//	rec := &eventtree.Recorder[int, int]{}
//	tree.Subscribe([]string{"a"}, rec.Handler())
//	tree.Send(ctx, []string{"a"}, 1)
//	rec.Ats() // [[a]]
type Recorder[M, A any] struct {
	// Answer computes the handler answer; the zero A when nil.
	Answer func(msg M, at []string) A

	mu    sync.Mutex
	calls []Call[M]
}

// Handler returns a new handler recording into r.
func (r *Recorder[M, A]) Handler() Handler[M, A] {
	return func(_ context.Context, msg M, to, at []string) (A, error) {
		r.mu.Lock()
		r.calls = append(r.calls, Call[M]{Msg: msg, To: clonePath(to), At: clonePath(at)})
		r.mu.Unlock()
		if r.Answer == nil {
			var zero A
			return zero, nil
		}
		return r.Answer(msg, at), nil
	}
}

// Calls returns a copy of the recorded invocations.
func (r *Recorder[M, A]) Calls() []Call[M] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call[M], len(r.calls))
	copy(out, r.calls)
	return out
}

// Ats returns the node path of every recorded invocation.
func (r *Recorder[M, A]) Ats() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.At)
	}
	return out
}

// Msgs returns the message of every recorded invocation.
func (r *Recorder[M, A]) Msgs() []M {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]M, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Msg)
	}
	return out
}

// Reset forgets the recorded invocations.
func (r *Recorder[M, A]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
