// Package ezq provides a minimal worker-coordination primitive: unbounded
// message queues connecting spawned workers to a coordinating caller, a
// sentinel-based termination protocol, and an order-restoring read mode.
//
// Common usage:
// - NewQ/NewIsolatedQ: create a queue (by-reference or codec-isolated)
// - System.SpawnShared/SpawnIsolated: start workers reading those queues
// - Q.Put/Q.Iter: write messages, read until the end-of-stream sentinel
// - Q.Stop: end a queue for a set of workers and wait for them to finish
// - SortIter/Q.Sorted: restore positional order on the way out
// - Map: distribute a function over inputs and collect results in order
//
// The transport is best effort by design: queues are unbounded and
// in-memory, there is no flow control, no persistence and no cancellation
// primitive. A worker stops only by observing the sentinel on the queue it
// reads. Shared state outside the queues is the caller's responsibility to
// synchronize.
package ezq
