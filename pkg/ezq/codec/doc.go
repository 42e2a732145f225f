// Package codec defines the serialization capability used whenever a value
// crosses an isolated-memory boundary: messages passing through an isolated
// queue and arguments handed to an isolated worker.
//
// Two implementations are provided:
// - Gob: the default; round-trips concrete Go types with full fidelity,
//   user types carried inside interface fields must be registered first
// - JSON: sonic-backed; useful when payloads should stay language-neutral,
//   numbers decode as float64 and structs as map[string]any
//
// Any failure to encode or decode wraps ErrSerialize, so callers can match
// with errors.Is regardless of the concrete codec.
package codec
