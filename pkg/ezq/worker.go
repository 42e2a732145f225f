package ezq

import (
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// WorkFn is the signature run by spawned workers. Results are queue-mediated:
// anything a worker produces must be written to an output queue passed in
// args, never returned.
type WorkFn func(args ...any)

// WorkerKind selects the execution backend for a spawned worker.
type WorkerKind string

const (
	// WorkerShared shares the caller's address space; args pass by
	// reference and offer no isolation.
	WorkerShared WorkerKind = "shared"

	// WorkerIsolated receives codec copies of its args, so mutations stay
	// local to the worker.
	WorkerIsolated WorkerKind = "isolated"
)

// Worker is a handle to one spawned execution unit. It carries identity
// sufficient to be passed to Q.Stop and exposes join semantics.
type Worker struct {
	id   uuid.UUID
	kind WorkerKind
	done chan struct{}
	err  error
}

func (w *Worker) ID() uuid.UUID {
	return w.id
}

func (w *Worker) Kind() WorkerKind {
	return w.kind
}

// Join blocks until the worker's function has returned. The function's
// return value is not forwarded; a panic inside the function surfaces here
// as a *WorkerFailure instead of hanging the caller.
func (w *Worker) Join() error {
	<-w.done
	return w.err
}

// Join waits for every worker, aggregating individual failures. Use Errors
// to unpack the aggregate.
func Join(workers ...*Worker) error {
	var err error
	for _, w := range workers {
		err = multierr.Append(err, w.Join())
	}
	return err
}
