package codec

import "errors"

// ErrSerialize reports a value that cannot cross an isolated-memory boundary.
var ErrSerialize = errors.New("codec: value cannot be serialized")

// Codec converts values to and from bytes when they cross an isolated-memory
// boundary. Implementations must be safe for concurrent use.
type Codec interface {
	// Marshal encodes v into a self-contained byte slice.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into the value pointed to by v.
	Unmarshal(data []byte, v any) error
}
