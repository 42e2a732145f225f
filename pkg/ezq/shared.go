package ezq

import "time"

// sharedQ passes messages by reference within one address space. A payload
// mutated by a reader is mutated for every holder of the same reference.
type sharedQ struct {
	buf *fifo[Msg]
}

func newSharedQ() *sharedQ {
	return &sharedQ{buf: newFifo[Msg]()}
}

func (s *sharedQ) put(m Msg) error {
	s.buf.put(m)
	return nil
}

func (s *sharedQ) get(block bool, timeout time.Duration) (Msg, error) {
	return s.buf.get(block, timeout)
}

func (s *sharedQ) size() int {
	return s.buf.size()
}
