// Package batch runs independent codec jobs on a bounded goroutine pool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/biggeezerdevelopment/jsonnum"
)

// Pool wraps an ants pool. Every job gets its own Reader or Writer, so jobs
// never share codec state.
type Pool struct {
	pool   *ants.Pool
	logger *zap.Logger
}

// New returns a pool of size workers, or GOMAXPROCS workers when size is
// not positive.
func New(size int, logger *zap.Logger) (*Pool, error) {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p, err := ants.NewPool(size, ants.WithPreAlloc(false))
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p, logger: logger}, nil
}

// Size is the number of workers.
func (p *Pool) Size() int { return p.pool.Cap() }

// Release stops the workers, waiting up to timeout for running jobs.
func (p *Pool) Release(timeout time.Duration) error {
	return p.pool.ReleaseTimeout(timeout)
}

// Run applies fn to every element of in and returns the results in input
// order. Failed elements leave a zero result; their errors are joined and
// tagged with the element index. Elements not yet started when ctx is done
// fail with the context error.
func Run[T, R any](ctx context.Context, p *Pool, in []T, fn func(T) (R, error)) ([]R, error) {
	out := make([]R, len(in))
	errs := make([]error, len(in))

	var wg sync.WaitGroup
	for i := range in {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			out[i], errs[i] = fn(in[i])
		}
		if err := p.pool.Submit(task); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	var joined []error
	for i, err := range errs {
		if err != nil {
			joined = append(joined, fmt.Errorf("batch: item %d: %w", i, err))
		}
	}
	if len(joined) > 0 {
		p.logger.Debug("batch finished with errors",
			zap.Int("items", len(in)),
			zap.Int("failed", len(joined)),
		)
	}
	return out, errors.Join(joined...)
}

// DecodeNumbers reads every document as an array of numbers.
func DecodeNumbers(ctx context.Context, p *Pool, docs [][]byte) ([][]jsonnum.Number, error) {
	return Run(ctx, p, docs, func(doc []byte) ([]jsonnum.Number, error) {
		var nums []jsonnum.Number
		err := jsonnum.Unmarshal(doc, &nums)
		return nums, err
	})
}

// EncodeInt64s encodes every slice as a JSON array.
func EncodeInt64s(ctx context.Context, p *Pool, values [][]int64) ([][]byte, error) {
	return Run(ctx, p, values, func(v []int64) ([]byte, error) {
		return jsonnum.Marshal(v)
	})
}

// EncodeFloat64s encodes every slice as a JSON array.
func EncodeFloat64s(ctx context.Context, p *Pool, values [][]float64) ([][]byte, error) {
	return Run(ctx, p, values, func(v []float64) ([]byte, error) {
		return jsonnum.Marshal(v)
	})
}
