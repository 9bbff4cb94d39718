// Package payload encodes tree snapshots and flattened responses for
// export: dumping a tree for diagnostics, shipping the answers of a send
// to another component, golden files in tests.
//
// Usage:
//
//	data, err := tree.Inspect().Export(payload.JSON{})
//
//	// or pick the codec by content type
//	codec, err := payload.Lookup("application/msgpack")
//	data, err := responses.Export(codec)
package payload

// Codec encodes/decodes exported values.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode serializes v to bytes.
	Encode(v any) ([]byte, error)

	// Decode deserializes bytes into the value pointed to by v.
	Decode(data []byte, v any) error

	// ContentType returns the MIME type (e.g., "application/json").
	ContentType() string
}

// Default returns the default codec (JSON).
func Default() Codec {
	return JSON{}
}
