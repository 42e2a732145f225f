package ezq

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/ib-77/ezq/pkg/ezq/codec"
)

var (
	// ErrEmpty reports a non-blocking read from an empty queue.
	ErrEmpty = errors.New("ezq: queue is empty")

	// ErrTimeout reports a blocking read that exceeded its deadline.
	ErrTimeout = errors.New("ezq: get timed out")

	// ErrNestedSpawn reports an isolated worker attempting to spawn a
	// further isolated worker. Isolated workers are restricted to one level
	// of nesting relative to the coordinating caller; they may still spawn
	// shared workers.
	ErrNestedSpawn = errors.New("ezq: isolated worker cannot spawn isolated workers")

	// ErrSerialize reports a value that could not cross an isolated-memory
	// boundary. It is raised synchronously by Put on an isolated queue and
	// by SpawnIsolated.
	ErrSerialize = codec.ErrSerialize
)

// WorkerFailure reports a worker whose function panicked. It surfaces from
// Join or Stop on that worker; the panic is reported, not retried, and does
// not terminate sibling workers.
type WorkerFailure struct {
	WorkerID uuid.UUID
	Value    any
	Stack    []byte
}

func (f *WorkerFailure) Error() string {
	return fmt.Sprintf("ezq: worker %s panicked: %v", f.WorkerID, f.Value)
}

// Errors splits an aggregated join error into individual failures. A nil
// error yields nil.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	return multierr.Errors(err)
}
