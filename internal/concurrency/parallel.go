package concurrency

import (
	"context"
	"sync"
)

type ParallelOptions struct {
	// MaxWorkers caps the goroutines in flight. Zero means DefaultOptions.
	MaxWorkers int
}

func DefaultOptions() ParallelOptions {
	return ParallelOptions{MaxWorkers: 10}
}

// ProcessParallel runs fn over items with a bounded pool. Results keep input order;
// errors come back in input order too. Items not started before ctx is done fail
// with ctx.Err().
func ProcessParallel[T any, R any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = DefaultOptions().MaxWorkers
	}
	workers = min(workers, len(items))

	results := make([]R, len(items))
	errs := make([]error, len(items))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				results[i], errs[i] = fn(ctx, i, items[i])
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return results, out
}
