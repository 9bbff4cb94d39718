package eventtree

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rbaliyan/eventtree/payload"
)

var allCodecs = []payload.Codec{payload.JSON{}, payload.MsgPack{}, payload.Proto{}}

func TestSnapshotCount(t *testing.T) {
	tree := newTestTree[int, int]()
	noop := func(context.Context, int, []string, []string) (int, error) { return 0, nil }
	tree.Subscribe([]string{"a", "b"}, noop)
	tree.Subscribe([]string{"a", "c"}, noop)

	if n := tree.Inspect().Snapshot().Count(); n != 4 {
		t.Errorf("expected 4 nodes, got %d", n)
	}
}

func TestExportSnapshot(t *testing.T) {
	tree := newTestTree[int, int]()
	noop := func(context.Context, int, []string, []string) (int, error) { return 0, nil }
	tree.Subscribe(nil, noop)
	tree.Subscribe([]string{"a", "b"}, noop)
	tree.Subscribe([]string{"a", "b"}, noop)
	tree.Subscribe([]string{"c"}, noop)

	want := tree.Inspect().Snapshot()
	for _, codec := range allCodecs {
		t.Run(codec.ContentType(), func(t *testing.T) {
			data, err := tree.Inspect().Export(codec)
			if err != nil {
				t.Fatal(err)
			}
			got, err := ImportSnapshot(codec, data)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExportResponses(t *testing.T) {
	_, res := buildIterTree(t)

	want := res.Flatten()
	for _, codec := range allCodecs {
		t.Run(codec.ContentType(), func(t *testing.T) {
			data, err := res.Export(codec)
			if err != nil {
				t.Fatal(err)
			}
			got, err := ImportResponses[int](codec, data)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("responses mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
