package codec

import (
	"fmt"

	"github.com/bytedance/sonic"
)

type jsonCodec struct {
	api sonic.API
}

// JSON returns a sonic-backed codec. The round trip is lossy with respect to
// Go types: numbers decode as float64 and structs as map[string]any. Prefer
// Gob unless payloads need to stay language-neutral.
func JSON() Codec {
	return jsonCodec{api: sonic.ConfigStd}
}

func (c jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := c.api.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return data, nil
}

func (c jsonCodec) Unmarshal(data []byte, v any) error {
	if err := c.api.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return nil
}
