package ezq

import (
	"sync"
	"time"
)

// fifo is an unbounded first-in-first-out buffer shared by both queue
// backends. Puts never block; removal supports blocking, timed and
// non-blocking modes. The single-token avail channel plus the re-signal in
// take guarantee no waiter sleeps while an item is available.
type fifo[T any] struct {
	mu    sync.Mutex
	items []T
	avail chan struct{}
}

func newFifo[T any]() *fifo[T] {
	return &fifo[T]{avail: make(chan struct{}, 1)}
}

func (f *fifo[T]) put(v T) {
	f.mu.Lock()
	f.items = append(f.items, v)
	f.mu.Unlock()
	f.signal()
}

func (f *fifo[T]) signal() {
	select {
	case f.avail <- struct{}{}:
	default:
	}
}

func (f *fifo[T]) take() (T, bool) {
	var zero T
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.items) == 0 {
		return zero, false
	}
	v := f.items[0]
	f.items[0] = zero
	f.items = f.items[1:]
	if len(f.items) > 0 {
		f.signal()
	}
	return v, true
}

func (f *fifo[T]) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// get removes the oldest item. With block false it fails immediately with
// ErrEmpty when nothing is buffered. With block true and timeout > 0 the
// wait is bounded and fails with ErrTimeout; a non-positive timeout waits
// indefinitely.
func (f *fifo[T]) get(block bool, timeout time.Duration) (T, error) {
	var zero T
	var deadline <-chan time.Time
	if block && timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		if v, ok := f.take(); ok {
			return v, nil
		}
		if !block {
			return zero, ErrEmpty
		}
		select {
		case <-f.avail:
		case <-deadline:
			return zero, ErrTimeout
		}
	}
}
