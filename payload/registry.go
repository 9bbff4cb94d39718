package payload

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownCodec is returned by Lookup for unregistered content types.
var ErrUnknownCodec = errors.New("unknown codec")

var (
	mu       sync.RWMutex
	registry = map[string]Codec{
		"application/json":     JSON{},
		"application/msgpack":  MsgPack{},
		"application/protobuf": Proto{},
	}
)

// Register adds a codec to the global registry under its ContentType().
// A codec registered later replaces an earlier one.
func Register(codec Codec) {
	mu.Lock()
	defer mu.Unlock()
	registry[codec.ContentType()] = codec
}

// Lookup retrieves a codec by content type.
func Lookup(contentType string) (Codec, error) {
	mu.RLock()
	defer mu.RUnlock()
	if c, ok := registry[contentType]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, contentType)
}

// ContentTypes lists the registered content types, sorted.
func ContentTypes() []string {
	mu.RLock()
	defer mu.RUnlock()
	types := make([]string, 0, len(registry))
	for ct := range registry {
		types = append(types, ct)
	}
	slices.Sort(types)
	return types
}
