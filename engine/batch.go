package engine

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// RunBatch executes independent runs on a bounded worker pool. Each run
// owns its own strategy, feed, ledger and series instances and shares
// nothing mutable, so no cross-run synchronization exists; per-run output
// is as deterministic as a solo Run. Used by parameter sweeps and
// multi-symbol studies
func RunBatch(specs []RunSpec, workers int, log *zap.Logger) []BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(specs) {
		workers = len(specs)
	}
	results := make([]BatchResult, len(specs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = BatchResult{Index: i}
				bt, err := New(specs[i].Settings, specs[i].Strategy, specs[i].Feed, log)
				if err != nil {
					results[i].Err = err
					continue
				}
				results[i].Results, results[i].Err = bt.Run()
			}
		}()
	}
	for i := range specs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
