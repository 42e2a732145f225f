package ezq

import (
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ib-77/ezq/pkg/ezq/codec"
)

// System spawns workers and carries the immutable configuration, the logger
// and the codec used to copy arguments across the isolated boundary.
type System struct {
	cfg    Config
	log    *zap.Logger
	codec  codec.Codec
	nested bool
}

// NewSystem creates a system. Zero Config fields resolve to the host
// defaults, a nil logger is replaced with zap.NewNop and a nil codec with
// the gob default.
func NewSystem(cfg Config, log *zap.Logger, c codec.Codec) *System {
	cfg.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	if c == nil {
		c = codec.Gob()
	}
	return &System{cfg: cfg, log: log, codec: c}
}

// Default returns a system with environment-derived configuration, no
// logging and the gob codec.
func Default() *System {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = Config{}
	}
	return NewSystem(cfg, nil, nil)
}

func (s *System) Config() Config {
	return s.cfg
}

// SpawnShared starts fn in a new shared-memory worker and returns its handle
// immediately. Args pass by reference; any state they share with the caller
// beyond queues is the caller's responsibility to synchronize.
func (s *System) SpawnShared(fn WorkFn, args ...any) *Worker {
	return s.start(WorkerShared, fn, args)
}

// SpawnIsolated starts fn in a worker that receives its own copy of every
// argument, made through the system codec; an argument that cannot be
// encoded fails the spawn with ErrSerialize. Two argument types pass as
// handles instead of copies: *Q, because the queue itself is the isolation
// boundary, and *System, which arrives restricted so that the worker can
// spawn shared sub-workers but not further isolated ones (ErrNestedSpawn).
func (s *System) SpawnIsolated(fn WorkFn, args ...any) (*Worker, error) {
	if s.nested {
		return nil, ErrNestedSpawn
	}

	copied := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case *Q:
			copied[i] = v
		case *System:
			copied[i] = v.restricted()
		default:
			c, err := s.copyValue(arg)
			if err != nil {
				return nil, fmt.Errorf("ezq: spawn arg %d: %w", i, err)
			}
			copied[i] = c
		}
	}
	return s.start(WorkerIsolated, fn, copied), nil
}

func (s *System) restricted() *System {
	r := *s
	r.nested = true
	return &r
}

// box wraps values for the codec round trip: gob cannot decode a bare
// concrete value back into an interface, but it can decode an interface
// field.
type box struct {
	V any
}

func (s *System) copyValue(v any) (any, error) {
	data, err := s.codec.Marshal(box{V: v})
	if err != nil {
		return nil, err
	}
	var out box
	if err := s.codec.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out.V, nil
}

func (s *System) start(kind WorkerKind, fn WorkFn, args []any) *Worker {
	w := &Worker{
		id:   uuid.New(),
		kind: kind,
		done: make(chan struct{}),
	}
	s.log.Debug("ezq: worker started",
		zap.String("worker", w.id.String()),
		zap.String("kind", string(kind)))

	go func() {
		defer close(w.done)
		defer func() {
			if r := recover(); r != nil {
				w.err = &WorkerFailure{WorkerID: w.id, Value: r, Stack: debug.Stack()}
				s.log.Error("ezq: worker panicked",
					zap.String("worker", w.id.String()),
					zap.Any("panic", r))
				return
			}
			s.log.Debug("ezq: worker finished", zap.String("worker", w.id.String()))
		}()
		fn(args...)
	}()
	return w
}
