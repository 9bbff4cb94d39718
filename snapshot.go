package eventtree

import (
	"github.com/rbaliyan/eventtree/payload"
)

// NodeSnapshot is a plain-data copy of a node and its subtree.
type NodeSnapshot struct {
	Name     string         `json:"name,omitempty"`
	Handlers int            `json:"handlers"`
	Children []NodeSnapshot `json:"children,omitempty"`
}

// Snapshot copies the subtree rooted at n.
func (n *Node[M, A]) Snapshot() NodeSnapshot {
	s := NodeSnapshot{
		Name:     n.name,
		Handlers: n.handlers.Len(),
	}
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		s.Children = append(s.Children, pair.Value.Snapshot())
	}
	return s
}

// Count returns the number of nodes in the snapshot, itself included.
func (s NodeSnapshot) Count() int {
	n := 1
	for _, c := range s.Children {
		n += c.Count()
	}
	return n
}

// Export encodes the snapshot of the subtree rooted at n with codec.
func (n *Node[M, A]) Export(codec payload.Codec) ([]byte, error) {
	return codec.Encode(n.Snapshot())
}

// Export encodes the flattened responses with codec.
func (r *Responses[A]) Export(codec payload.Codec) ([]byte, error) {
	return codec.Encode(r.Flatten())
}

// ImportSnapshot decodes a snapshot produced by Node.Export.
func ImportSnapshot(codec payload.Codec, data []byte) (NodeSnapshot, error) {
	var s NodeSnapshot
	if err := codec.Decode(data, &s); err != nil {
		return NodeSnapshot{}, err
	}
	return s, nil
}

// ImportResponses decodes flattened responses produced by Responses.Export.
func ImportResponses[A any](codec payload.Codec, data []byte) ([]Response[A], error) {
	var out []Response[A]
	if err := codec.Decode(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
