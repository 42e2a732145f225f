package ezq

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func testSystem() *System {
	return NewSystem(Config{IsolatedWorkers: 4, SharedWorkers: 4}, nil, nil)
}

func TestNewSystemResolvesZeroConfig(t *testing.T) {
	t.Parallel()
	sys := NewSystem(Config{}, nil, nil)
	if sys.Config().IsolatedWorkers < 1 {
		t.Fatalf("expected isolated fan-out resolved, got %d", sys.Config().IsolatedWorkers)
	}
	if sys.Config().SharedWorkers < 1 {
		t.Fatalf("expected shared fan-out resolved, got %d", sys.Config().SharedWorkers)
	}
}

func TestSpawnSharedArgsByReference(t *testing.T) {
	t.Parallel()
	sys := testSystem()
	data := []int{1, 2, 3}

	w := sys.SpawnShared(func(args ...any) {
		args[0].([]int)[0] = 99
	}, data)
	if err := w.Join(); err != nil {
		t.Fatalf("join: %v", err)
	}
	if data[0] != 99 {
		t.Fatalf("expected caller to observe mutation, got %v", data)
	}
	if w.Kind() != WorkerShared {
		t.Fatalf("expected shared kind, got %v", w.Kind())
	}
}

func TestSpawnIsolatedCopiesArgs(t *testing.T) {
	t.Parallel()
	sys := testSystem()
	data := []int{1, 2, 3}

	w, err := sys.SpawnIsolated(func(args ...any) {
		args[0].([]int)[0] = 99
	}, data)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := w.Join(); err != nil {
		t.Fatalf("join: %v", err)
	}
	if data[0] != 1 {
		t.Fatalf("caller memory mutated by isolated worker: %v", data)
	}
	if w.Kind() != WorkerIsolated {
		t.Fatalf("expected isolated kind, got %v", w.Kind())
	}
}

func TestSpawnIsolatedQueuePassesAsHandle(t *testing.T) {
	t.Parallel()
	sys := testSystem()
	out := NewQ()

	w, err := sys.SpawnIsolated(func(args ...any) {
		_ = args[0].(*Q).Put("from worker")
	}, out)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := w.Join(); err != nil {
		t.Fatalf("join: %v", err)
	}
	m, err := out.TryGet()
	if err != nil {
		t.Fatalf("expected a message on the handle, got %v", err)
	}
	if m.Data() != "from worker" {
		t.Fatalf("unexpected data: %v", m.Data())
	}
}

func TestSpawnIsolatedSerializationFailure(t *testing.T) {
	t.Parallel()
	sys := testSystem()
	_, err := sys.SpawnIsolated(func(args ...any) {}, make(chan int))
	if !errors.Is(err, ErrSerialize) {
		t.Fatalf("expected ErrSerialize, got %v", err)
	}
}

func TestNestedIsolatedSpawnRejected(t *testing.T) {
	t.Parallel()
	sys := testSystem()
	out := NewQ()

	w, err := sys.SpawnIsolated(func(args ...any) {
		inner, q := args[0].(*System), args[1].(*Q)

		if _, err := inner.SpawnIsolated(func(...any) {}); err != nil {
			_ = q.Put(err)
		}
		sub := inner.SpawnShared(func(args ...any) {
			_ = args[0].(*Q).Put("shared ok")
		}, q)
		_ = sub.Join()
	}, sys, out)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := w.Join(); err != nil {
		t.Fatalf("join: %v", err)
	}

	items := out.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(items))
	}
	nested, ok := items[0].Data().(error)
	if !ok || !errors.Is(nested, ErrNestedSpawn) {
		t.Fatalf("expected ErrNestedSpawn from the worker, got %v", items[0].Data())
	}
	if items[1].Data() != "shared ok" {
		t.Fatalf("expected the shared sub-worker to run, got %v", items[1].Data())
	}
}

func TestJoinReportsPanicAsWorkerFailure(t *testing.T) {
	t.Parallel()
	sys := testSystem()
	w := sys.SpawnShared(func(...any) {
		panic("boom")
	})

	err := w.Join()
	var failure *WorkerFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *WorkerFailure, got %v", err)
	}
	if failure.Value != "boom" {
		t.Fatalf("expected panic value boom, got %v", failure.Value)
	}
	if failure.WorkerID != w.ID() {
		t.Fatalf("failure names the wrong worker")
	}
	if len(failure.Stack) == 0 {
		t.Fatalf("expected a captured stack")
	}
}

func TestStopBlocksUntilAllWorkersDone(t *testing.T) {
	t.Parallel()
	sys := testSystem()
	q := NewQ()

	var finished atomic.Int32
	workers := make([]*Worker, 0, 4)
	for range 4 {
		workers = append(workers, sys.SpawnShared(func(args ...any) {
			for range args[0].(*Q).Iter() {
				time.Sleep(time.Millisecond)
			}
			finished.Add(1)
		}, q))
	}
	for i := range 40 {
		_ = q.Put(i)
	}

	if err := q.Stop(workers...); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if got := finished.Load(); got != 4 {
		t.Fatalf("stop returned before all workers finished: %d of 4", got)
	}
}

func TestStopSurfacesCrashedWorker(t *testing.T) {
	t.Parallel()
	sys := testSystem()
	q := NewQ()

	crashed := sys.SpawnShared(func(...any) {
		panic("before read loop")
	})
	healthy := sys.SpawnShared(func(args ...any) {
		for range args[0].(*Q).Iter() {
		}
	}, q)

	err := q.Stop(crashed, healthy)
	if err == nil {
		t.Fatalf("expected an aggregated failure")
	}
	failures := Errors(err)
	if len(failures) != 1 {
		t.Fatalf("expected exactly one failure, got %d: %v", len(failures), err)
	}
	var failure *WorkerFailure
	if !errors.As(failures[0], &failure) {
		t.Fatalf("expected *WorkerFailure, got %v", failures[0])
	}
}

func TestPackageJoinAggregates(t *testing.T) {
	t.Parallel()
	sys := testSystem()
	ok := sys.SpawnShared(func(...any) {})
	bad1 := sys.SpawnShared(func(...any) { panic("one") })
	bad2 := sys.SpawnShared(func(...any) { panic("two") })

	err := Join(ok, bad1, bad2)
	if got := len(Errors(err)); got != 2 {
		t.Fatalf("expected 2 failures, got %d: %v", got, err)
	}
}
