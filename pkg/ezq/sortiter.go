package ezq

import "slices"

// SortIter restores positional order on a message stream. Messages without
// an order pass through immediately in arrival order; ordered messages are
// buffered until the next expected order (starting at 0) arrives, then
// contiguous runs release at once. When the stream ends, the remainder is
// flushed in ascending order regardless of gaps: a gap means a message never
// arrived, which is a visible hole, not an error. The returned sequence is
// lazy, finite and non-restartable.
func SortIter(in <-chan Msg) <-chan Msg {
	return SortIterFrom(in, 0)
}

// SortIterFrom is SortIter with an explicit first expected order.
func SortIterFrom(in <-chan Msg, start int) <-chan Msg {
	out := make(chan Msg)
	go func() {
		defer close(out)
		next := start
		waiting := make(map[int]Msg)

		for m := range in {
			order, ok := m.Order()
			if !ok {
				out <- m
				continue
			}
			// duplicate orders overwrite: last write wins
			waiting[order] = m
			for {
				w, ok := waiting[next]
				if !ok {
					break
				}
				delete(waiting, next)
				out <- w
				next++
			}
		}

		flush(out, waiting)
	}()
	return out
}

func flush(out chan<- Msg, waiting map[int]Msg) {
	rest := make([]int, 0, len(waiting))
	for order := range waiting {
		rest = append(rest, order)
	}
	slices.Sort(rest)
	for _, order := range rest {
		out <- waiting[order]
	}
}

// SortKeyed is the generalized order restorer over arbitrary elements; key
// must produce the position of each element. Unlike SortIter every element
// participates in reordering.
func SortKeyed[T any](in <-chan T, start int, key func(T) int) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		next := start
		waiting := make(map[int]T)

		for v := range in {
			waiting[key(v)] = v
			for {
				w, ok := waiting[next]
				if !ok {
					break
				}
				delete(waiting, next)
				out <- w
				next++
			}
		}

		rest := make([]int, 0, len(waiting))
		for order := range waiting {
			rest = append(rest, order)
		}
		slices.Sort(rest)
		for _, order := range rest {
			out <- waiting[order]
		}
	}()
	return out
}
