package payload

import "encoding/json"

// JSON implements Codec using encoding/json. This is the default codec.
type JSON struct {
	// Indent, when set, produces indented output.
	Indent string
}

// Encode serializes v to JSON bytes.
func (c JSON) Encode(v any) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

// Decode deserializes JSON bytes into v.
func (JSON) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the MIME type for JSON.
func (JSON) ContentType() string {
	return "application/json"
}

var _ Codec = JSON{}
