package ezq

// Feed enqueues every value tagged with its positional order, so results can
// be read back through SortIter in input order. It stops at the first put
// failure.
func Feed[T any](q *Q, values []T) error {
	for i, v := range values {
		if err := q.PutOrdered(v, i); err != nil {
			return err
		}
	}
	return nil
}

// Drain collects a message stream into a slice. It returns an empty slice,
// never nil, for an empty stream.
func Drain(in <-chan Msg) []Msg {
	out := make([]Msg, 0)
	for m := range in {
		out = append(out, m)
	}
	return out
}
