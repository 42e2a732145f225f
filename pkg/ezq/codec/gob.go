package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

func init() {
	// common composite payloads carried inside interface fields
	gob.Register([]int{})
	gob.Register([]int64{})
	gob.Register([]float64{})
	gob.Register([]string{})
	gob.Register([]any{})
	gob.Register(map[string]any{})
}

type gobCodec struct{}

// Gob returns the default codec. It preserves concrete Go types across the
// boundary; user types carried inside interface fields must be recorded with
// Register before the first Marshal.
func Gob() Codec {
	return gobCodec{}
}

// Register records a concrete type so the gob codec can carry it inside
// interface-typed fields. It is a thin wrapper over gob.Register.
func Register(v any) {
	gob.Register(v)
}

func (gobCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return nil
}
