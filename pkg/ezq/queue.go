package ezq

import (
	"time"

	"go.uber.org/multierr"

	"github.com/ib-77/ezq/pkg/ezq/codec"
)

// transport is the backend capability set shared by both queue variants.
type transport interface {
	put(m Msg) error
	get(block bool, timeout time.Duration) (Msg, error)
	size() int
}

// Q is an unbounded FIFO transport of messages. Messages enqueued by one
// producer dequeue in the order enqueued; interleaving across concurrent
// producers is unspecified beyond each producer's own sub-sequence.
type Q struct {
	t transport
}

// NewQ creates a shared-memory queue: messages pass by reference and a
// payload mutated by the reader is mutated for the writer too.
func NewQ() *Q {
	return &Q{t: newSharedQ()}
}

// NewIsolatedQ creates a queue that passes every message through c, so each
// reader receives its own copy of the payload. A nil codec selects the gob
// default.
func NewIsolatedQ(c codec.Codec) *Q {
	if c == nil {
		c = codec.Gob()
	}
	return &Q{t: newIsolatedQ(c)}
}

// Put appends a message of the default kind. It never blocks; on an
// isolated queue it fails with ErrSerialize when data cannot be encoded.
func (q *Q) Put(data any) error {
	return q.t.put(NewMsg(data))
}

// PutKind appends a message with an explicit classification.
func (q *Q) PutKind(kind string, data any) error {
	return q.t.put(NewKindMsg(kind, data))
}

// PutOrdered appends a message carrying a position for the order-restoring
// reader.
func (q *Q) PutOrdered(data any, order int) error {
	return q.t.put(NewOrderedMsg(data, order))
}

// PutMsg appends a pre-built message.
func (q *Q) PutMsg(m Msg) error {
	return q.t.put(m)
}

// Get removes and returns the oldest message, blocking until one arrives.
func (q *Q) Get() (Msg, error) {
	return q.t.get(true, 0)
}

// GetTimeout is Get with a bounded wait; it fails with ErrTimeout when the
// deadline elapses first. A non-positive timeout waits indefinitely.
func (q *Q) GetTimeout(timeout time.Duration) (Msg, error) {
	return q.t.get(true, timeout)
}

// TryGet removes and returns the oldest message, failing immediately with
// ErrEmpty when the queue holds nothing.
func (q *Q) TryGet() (Msg, error) {
	return q.t.get(false, 0)
}

// Size reports the number of buffered messages.
func (q *Q) Size() int {
	return q.t.size()
}

// Iter reads the queue until it consumes exactly one end-of-stream sentinel
// and delivers every non-sentinel message seen before it. The sequence is
// finite, lazy and non-restartable; the sentinel itself is never delivered.
// On an isolated queue a payload the codec cannot decode is dropped and
// iteration continues; it does not end the stream. A reader that abandons
// the channel before it closes leaves the reading goroutine parked, so
// drain it or close the stream with End/Stop first.
func (q *Q) Iter() <-chan Msg {
	out := make(chan Msg)
	go func() {
		defer close(out)
		for {
			m, err := q.Get()
			if err != nil {
				// the undecodable item is already off the queue
				continue
			}
			if m.IsEnd() {
				return
			}
			out <- m
		}
	}()
	return out
}

// Sorted is Iter routed through SortIter, restoring positional order.
func (q *Q) Sorted() <-chan Msg {
	return SortIter(q.Iter())
}

// End appends one end-of-stream sentinel and returns the queue for chaining.
// Ending an already ended queue appends an excess sentinel; excess sentinels
// are absorbed by the next reader and are harmless.
func (q *Q) End() *Q {
	// the sentinel carries no payload, so it encodes under any codec
	_ = q.t.put(newEndMsg())
	return q
}

// Stop appends one sentinel per worker and then waits for every worker to
// finish, under the protocol assumption that each worker consumes at most
// one sentinel before leaving its read loop. Failures of individual workers
// are aggregated; use Errors to unpack them. Stopping again later merely
// adds excess sentinels, which are harmless.
func (q *Q) Stop(workers ...*Worker) error {
	for range workers {
		q.End()
	}
	var err error
	for _, w := range workers {
		err = multierr.Append(err, w.Join())
	}
	return err
}

// Items ends the queue and drains it to a materialized slice. A queue that
// never received a put yields an empty slice, not an error.
func (q *Q) Items() []Msg {
	return Drain(q.End().Iter())
}

// SortedItems is Items routed through SortIter.
func (q *Q) SortedItems() []Msg {
	return Drain(q.End().Sorted())
}
