/*
Package reactive implements fine-grained dependency tracking with explicit dependency sets.

A Graph owns any number of Cells (writable leaves) and Computeds (memoized derivations).
Reading a Cell or a Computed through a Tracker links the tracker's owner as a dependent;
writing a Cell with a different value marks every dependent stale. Stale computations are
not recomputed eagerly: the next read re-runs the function once and recollects its
dependencies from scratch, since the read-set of a function can change between runs.

	g := reactive.NewGraph()
	count := g.NewCell(1)
	double := g.NewComputed(func(tr *reactive.Tracker) any {
		return count.Get(tr).(int) * 2
	})

	double.Get(nil) // 2
	_ = count.Set(4)
	double.Get(nil) // 8, recomputed on this read

Signal and Memo are typed wrappers over the same primitives.
*/
package reactive
