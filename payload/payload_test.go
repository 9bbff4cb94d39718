package payload

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
)

type sample struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

func TestCodecs(t *testing.T) {
	in := sample{Name: "a/b", Count: 3, Tags: []string{"x", "y"}}

	for _, codec := range []Codec{JSON{}, JSON{Indent: "  "}, MsgPack{}, Proto{}} {
		t.Run(codec.ContentType(), func(t *testing.T) {
			data, err := codec.Encode(in)
			if err != nil {
				t.Fatal(err)
			}
			var out sample
			if err := codec.Decode(data, &out); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(in, out); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONIndent(t *testing.T) {
	data, err := JSON{Indent: "  "}.Encode(sample{Name: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  \"name\"") {
		t.Errorf("expected indented output, got %s", data)
	}
}

func TestProtoMessage(t *testing.T) {
	in, err := structpb.NewStruct(map[string]any{"path": "a/b", "answers": 2.0})
	if err != nil {
		t.Fatal(err)
	}

	data, err := Proto{}.Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	out := &structpb.Struct{}
	if err := (Proto{}).Decode(data, out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out, protocmp.Transform()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry(t *testing.T) {
	for _, ct := range []string{"application/json", "application/msgpack", "application/protobuf"} {
		c, err := Lookup(ct)
		if err != nil {
			t.Fatalf("lookup %s: %v", ct, err)
		}
		if c.ContentType() != ct {
			t.Errorf("expected %s, got %s", ct, c.ContentType())
		}
	}

	if _, err := Lookup("text/csv"); !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("expected ErrUnknownCodec, got %v", err)
	}

	Register(textCodec{})
	if _, err := Lookup("text/plain"); err != nil {
		t.Errorf("registered codec not found: %v", err)
	}
	want := []string{"application/json", "application/msgpack", "application/protobuf", "text/plain"}
	if diff := cmp.Diff(want, ContentTypes()); diff != "" {
		t.Errorf("content types mismatch (-want +got):\n%s", diff)
	}

	if Default().ContentType() != "application/json" {
		t.Error("expected JSON as default codec")
	}
}

type textCodec struct{}

func (textCodec) Encode(v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, errors.New("text codec encodes strings only")
	}
	return []byte(s), nil
}

func (textCodec) Decode(data []byte, v any) error {
	p, ok := v.(*string)
	if !ok {
		return errors.New("text codec decodes into *string only")
	}
	*p = string(data)
	return nil
}

func (textCodec) ContentType() string { return "text/plain" }
