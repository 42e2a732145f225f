package ezq

// Map distributes fn over inputs across one worker per processing unit
// (the isolated fan-out default) and returns a lazy sequence of results in
// input order, regardless of completion order. Each worker runs the
// read-compute-put loop, preserving the input position on the result
// message; the output is read back through SortIter.
//
// The workers themselves are shared-execution: goroutines already run in
// parallel across processing units, so isolation buys nothing for a pure
// function application.
func Map[In, Out any](s *System, fn func(In) Out, inputs []In) <-chan Out {
	in, out := NewQ(), NewQ()

	workers := make([]*Worker, 0, s.cfg.IsolatedWorkers)
	for range s.cfg.IsolatedWorkers {
		workers = append(workers, s.SpawnShared(func(args ...any) {
			src, dst := args[0].(*Q), args[1].(*Q)
			for m := range src.Iter() {
				order, _ := m.Order()
				_ = dst.PutOrdered(fn(m.Data().(In)), order)
			}
		}, in, out))
	}

	go func() {
		_ = Feed(in, inputs)
		_ = in.Stop(workers...)
		out.End()
	}()

	results := make(chan Out)
	go func() {
		defer close(results)
		for m := range out.Sorted() {
			results <- m.Data().(Out)
		}
	}()
	return results
}
