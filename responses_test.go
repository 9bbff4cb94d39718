package eventtree

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildIterTree(t *testing.T) (*Tree[int, int], *Responses[int]) {
	t.Helper()
	tree := newTestTree[int, int]()
	echo := func(_ context.Context, n int, _, _ []string) (int, error) { return n, nil }

	tree.Subscribe([]string{}, echo)
	tree.Subscribe([]string{"a"}, echo)
	tree.Subscribe([]string{"a", "aa"}, echo)
	tree.Subscribe([]string{"a", "ab"}, echo)
	tree.Subscribe([]string{"a", "aa", "aaa"}, echo)
	tree.Subscribe([]string{"b"}, echo)

	res, err := tree.Send(context.Background(), []string{"a"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	return tree, res
}

func TestIterResponses(t *testing.T) {
	tree, res := buildIterTree(t)

	want := []Response[int]{
		{Path: []string{}, Answer: 1},
		{Path: []string{"a"}, Answer: 1},
		{Path: []string{"a", "aa"}, Answer: 1},
		{Path: []string{"a", "aa", "aaa"}, Answer: 1},
		{Path: []string{"a", "ab"}, Answer: 1},
	}

	var got []Response[int]
	for path, a := range tree.IterResponses(res) {
		got = append(got, Response[int]{Path: path, Answer: a})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("responses mismatch (-want +got):\n%s", diff)
	}

	// a fresh, identical sequence on every call
	if diff := cmp.Diff(want, res.Flatten()); diff != "" {
		t.Errorf("second pass mismatch (-want +got):\n%s", diff)
	}
	got = got[:0]
	for path, a := range IterResponses(res) {
		got = append(got, Response[int]{Path: path, Answer: a})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("package IterResponses mismatch (-want +got):\n%s", diff)
	}
}

func TestIterResponsesStopsEarly(t *testing.T) {
	_, res := buildIterTree(t)

	var paths [][]string
	for path := range res.All() {
		paths = append(paths, path)
		if len(paths) == 2 {
			break
		}
	}
	if diff := cmp.Diff([][]string{{}, {"a"}}, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestResponsesShape(t *testing.T) {
	_, res := buildIterTree(t)

	if diff := cmp.Diff([]int{1}, res.Answers()); diff != "" {
		t.Errorf("root answers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, res.Children()); diff != "" {
		t.Errorf("root children mismatch (-want +got):\n%s", diff)
	}
	if _, ok := res.Child("b"); ok {
		t.Error("sibling branch must not appear in the responses")
	}

	a, ok := res.Child("a")
	if !ok {
		t.Fatal("missing responses for a")
	}
	if diff := cmp.Diff([]string{"aa", "ab"}, a.Children()); diff != "" {
		t.Errorf("a children mismatch (-want +got):\n%s", diff)
	}
	if res.Len() != 5 || a.Len() != 4 {
		t.Errorf("expected 5 and 4 answers, got %d and %d", res.Len(), a.Len())
	}

	// Answers hands out copies
	a.Answers()[0] = 42
	if a.Answers()[0] != 1 {
		t.Error("responses must not be modifiable through Answers")
	}
}
