package ezq

import (
	"time"

	"github.com/google/uuid"
)

const (
	// KindData is the default classification for application messages.
	KindData = "DATA"

	// KindEnd marks the end-of-stream sentinel. Sentinels are consumed by
	// the transport layer and never surface to application iteration; use
	// Msg.IsEnd instead of comparing kinds directly.
	KindEnd = "END"
)

// Msg is the unit of transport: an opaque payload, a classification kind and
// an optional position used by the order-restoring reader. A Msg is immutable
// once constructed.
type Msg struct {
	id        uuid.UUID
	createdAt time.Time
	kind      string
	data      any
	order     int
	hasOrder  bool
}

// NewMsg creates a message of the default kind with no order.
func NewMsg(data any) Msg {
	return Msg{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		kind:      KindData,
		data:      data,
	}
}

// NewKindMsg creates a message with an explicit classification.
func NewKindMsg(kind string, data any) Msg {
	m := NewMsg(data)
	m.kind = kind
	return m
}

// NewOrderedMsg creates a message of the default kind carrying a position.
func NewOrderedMsg(data any, order int) Msg {
	return NewMsg(data).WithOrder(order)
}

func newEndMsg() Msg {
	return Msg{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		kind:      KindEnd,
	}
}

// WithKind returns a copy of the message with the given classification.
func (m Msg) WithKind(kind string) Msg {
	m.kind = kind
	return m
}

// WithOrder returns a copy of the message carrying the given position.
func (m Msg) WithOrder(order int) Msg {
	m.order = order
	m.hasOrder = true
	return m
}

func (m Msg) ID() uuid.UUID {
	return m.id
}

// CreatedAt is the message construction time (UTC).
func (m Msg) CreatedAt() time.Time {
	return m.createdAt
}

func (m Msg) Kind() string {
	return m.kind
}

func (m Msg) Data() any {
	return m.data
}

// Order returns the message position and whether one was set. Messages
// without a position do not participate in reordering.
func (m Msg) Order() (int, bool) {
	return m.order, m.hasOrder
}

// IsEnd reports whether the message is the end-of-stream sentinel.
func (m Msg) IsEnd() bool {
	return m.kind == KindEnd
}
