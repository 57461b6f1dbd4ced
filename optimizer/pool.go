package optimizer

import (
	"context"
	"sync"
	"sync/atomic"
)

// Progress is the pair of atomic counters an out-of-band status endpoint
// reads (spec §4.4, §5's "relaxed atomic read"/"relaxed atomic add"
// language — Go's atomic.Int64 gives exactly that without a heavier
// primitive).
type Progress struct {
	Done  atomic.Int64
	Total atomic.Int64
}

// runPool scores every candidate the enumerator yields using a bounded
// worker pool. Grounded on the Connerlevi-A-Swarm fitness evaluator's
// battleTask channel -> N goroutines -> sync.WaitGroup shape: here each
// worker appends to its own result slice instead of writing to a shared
// results channel, since spec §5 asks for "single-writer-per-worker", not a
// lock-free CAS structure, and a per-worker slice merged once at the end
// satisfies that with no contention at all.
func runPool(ctx context.Context, enum *Enumerator, workers int, cancelled *atomic.Bool, progress *Progress, score func(Candidate) Result) []Result {
	if workers <= 0 {
		workers = 1
	}

	tasks := make(chan Candidate, workers*2)

	go func() {
		defer close(tasks)
		for {
			if cancelled.Load() || ctx.Err() != nil {
				return
			}
			cand, ok := enum.Next()
			if !ok {
				return
			}
			progress.Total.Add(1)
			select {
			case tasks <- cand:
			case <-ctx.Done():
				return
			}
		}
	}()

	resultsByWorker := make([][]Result, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		w := w
		go func() {
			defer wg.Done()
			var local []Result
			for cand := range tasks {
				local = append(local, score(cand))
				progress.Done.Add(1)
			}
			resultsByWorker[w] = local
		}()
	}
	wg.Wait()

	var all []Result
	for _, r := range resultsByWorker {
		all = append(all, r...)
	}
	return all
}
