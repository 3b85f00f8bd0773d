package worker

import (
	"context"
	"sync"
)

// Run executes jobs over a fixed number of goroutines and returns one result
// per job, in job order. Queries through the pipeline are independent and
// share no mutable state, so the benchmark fans them out freely.
func Run[J, R any](ctx context.Context, workers int, jobs []J, fn func(context.Context, J) R) []R {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]R, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = fn(ctx, jobs[i])
			}
		}()
	}

	for i := range jobs {
		select {
		case <-ctx.Done():
			// Stop feeding; workers drain and exit.
			close(indexes)
			wg.Wait()
			return results
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	return results
}
