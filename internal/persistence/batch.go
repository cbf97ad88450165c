package persistence

import (
	"context"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result pairs a checked number with its persistence.
type Result struct {
	Value       *big.Int
	Persistence int
}

// CheckAll computes the persistence of every number using a bounded worker
// pool. Each worker owns a Calculator built from opts, so caches are never
// shared. Results are returned in input order.
//
// workers: number of parallel workers. If 0 or negative, uses runtime.NumCPU().
func CheckAll(ctx context.Context, numbers []*big.Int, workers int, opts ...Option) ([]Result, error) {
	workerPoolSize := workers
	if workerPoolSize <= 0 {
		workerPoolSize = runtime.NumCPU()
	}
	if workerPoolSize > len(numbers) {
		workerPoolSize = len(numbers)
	}

	results := make([]Result, len(numbers))
	if len(numbers) == 0 {
		return results, nil
	}

	indices := make(chan int, len(numbers))
	for i := range numbers {
		indices <- i
	}
	close(indices)

	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workerPoolSize; w++ {
		eg.Go(func() error {
			calc, err := New(opts...)
			if err != nil {
				return err
			}
			for i := range indices {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = Result{Value: numbers[i], Persistence: calc.Persistence(numbers[i])}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
