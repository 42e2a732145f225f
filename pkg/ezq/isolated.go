package ezq

import (
	"time"

	"github.com/google/uuid"

	"github.com/ib-77/ezq/pkg/ezq/codec"
)

// wireMsg is the encoded form of a Msg crossing an isolated-memory boundary.
type wireMsg struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Kind      string
	Data      any
	Order     int
	HasOrder  bool
}

// isolatedQ encodes every message at put and decodes at get, so readers
// receive their own copy of the payload. Put fails synchronously with
// ErrSerialize when the payload cannot be encoded.
type isolatedQ struct {
	buf *fifo[[]byte]
	c   codec.Codec
}

func newIsolatedQ(c codec.Codec) *isolatedQ {
	return &isolatedQ{buf: newFifo[[]byte](), c: c}
}

func (s *isolatedQ) put(m Msg) error {
	data, err := s.c.Marshal(wireMsg{
		ID:        m.id,
		CreatedAt: m.createdAt,
		Kind:      m.kind,
		Data:      m.data,
		Order:     m.order,
		HasOrder:  m.hasOrder,
	})
	if err != nil {
		return err
	}
	s.buf.put(data)
	return nil
}

func (s *isolatedQ) get(block bool, timeout time.Duration) (Msg, error) {
	data, err := s.buf.get(block, timeout)
	if err != nil {
		return Msg{}, err
	}
	var w wireMsg
	if err := s.c.Unmarshal(data, &w); err != nil {
		return Msg{}, err
	}
	return Msg{
		id:        w.ID,
		createdAt: w.CreatedAt,
		kind:      w.Kind,
		data:      w.Data,
		order:     w.Order,
		hasOrder:  w.HasOrder,
	}, nil
}

func (s *isolatedQ) size() int {
	return s.buf.size()
}
