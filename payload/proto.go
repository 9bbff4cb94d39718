package payload

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Proto implements Codec using Protocol Buffers.
//
// proto.Message values are marshaled as they are. Any other value is first
// converted through its JSON form into a google.protobuf.Value, so plain Go
// structs such as tree snapshots can be exported without generated code.
type Proto struct{}

// Encode serializes v to Protocol Buffer bytes.
func (Proto) Encode(v any) ([]byte, error) {
	if msg, ok := v.(proto.Message); ok {
		return proto.Marshal(msg)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	value := &structpb.Value{}
	if err := protojson.Unmarshal(raw, value); err != nil {
		return nil, fmt.Errorf("payload: convert to protobuf value: %w", err)
	}
	return proto.Marshal(value)
}

// Decode deserializes Protocol Buffer bytes into v. Targets that are not
// proto.Message must have been encoded through the google.protobuf.Value path.
func (Proto) Decode(data []byte, v any) error {
	if msg, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, msg)
	}
	value := &structpb.Value{}
	if err := proto.Unmarshal(data, value); err != nil {
		return err
	}
	raw, err := protojson.Marshal(value)
	if err != nil {
		return fmt.Errorf("payload: convert from protobuf value: %w", err)
	}
	return json.Unmarshal(raw, v)
}

// ContentType returns the MIME type for Protocol Buffers.
func (Proto) ContentType() string {
	return "application/protobuf"
}

var _ Codec = Proto{}
