// Package workerpool provides a generic WorkerPoolExecutor
// that runs a function concurrently over a slice of inputs and
// returns the outputs in input order.
package workerpool

import (
	"context"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

type PoolOptions struct {
	NumWorkers int
	Logger     *logrus.Entry
}

type PoolOptionFunc func(*PoolOptions)

func defaultOpts() PoolOptions {
	return PoolOptions{
		NumWorkers: runtime.NumCPU(),
		Logger:     logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithWorkers sets the number of concurrent workers. Values below one are ignored.
func WithWorkers(num int) PoolOptionFunc {
	return func(opts *PoolOptions) {
		if num > 0 {
			opts.NumWorkers = num
		}
	}
}

// WithLogger routes the pool's debug output to the given entry.
func WithLogger(entry *logrus.Entry) PoolOptionFunc {
	return func(opts *PoolOptions) {
		if entry != nil {
			opts.Logger = entry
		}
	}
}

// WorkerPoolExecutor manages a pool of goroutines to execute tasks.
// T is the input type, R is the output type.
type WorkerPoolExecutor[T any, R any] struct {
	PoolOptions
}

// New creates a new WorkerPoolExecutor with optional configuration.
func New[T any, R any](opts ...PoolOptionFunc) *WorkerPoolExecutor[T, R] {
	o := defaultOpts()
	for _, fn := range opts {
		fn(&o)
	}
	return &WorkerPoolExecutor[T, R]{PoolOptions: o}
}

// Run dispatches each input through fn using up to NumWorkers goroutines.
// Outputs are returned in the same order as inputs. All goroutines have
// exited by the time Run returns. If ctx is canceled before every output has
// been collected, Run returns nil and ctx.Err().
func (w *WorkerPoolExecutor[T, R]) Run(ctx context.Context, inputs []T, fn func(ctx context.Context, t T) R) ([]R, error) {
	if len(inputs) == 0 {
		return []R{}, ctx.Err()
	}

	type task struct {
		idx   int
		input T
	}
	type result struct {
		idx    int
		output R
	}

	workers := w.NumWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	// Buffered to hold every input, so the feeder never blocks.
	tasks := make(chan task, len(inputs))
	results := make(chan result, len(inputs))
	for i, input := range inputs {
		tasks <- task{idx: i, input: input}
	}
	close(tasks)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(worker int) {
			defer wg.Done()
			processed := 0
			for t := range tasks {
				if ctx.Err() != nil {
					return
				}
				results <- result{idx: t.idx, output: fn(ctx, t.input)}
				processed++
			}
			w.Logger.WithFields(logrus.Fields{
				"worker":    worker,
				"processed": processed,
			}).Debug("Worker drained task queue")
		}(i)
	}

	wg.Wait()
	close(results)

	outputs := make([]R, len(inputs))
	collected := 0
	for r := range results {
		outputs[r.idx] = r.output
		collected++
	}
	if collected < len(inputs) {
		// Workers only stop early on cancellation.
		return nil, ctx.Err()
	}
	return outputs, nil
}

// Reduce folds values left to right starting from zero.
func Reduce[R any](values []R, zero R, combine func(acc, v R) R) R {
	acc := zero
	for _, v := range values {
		acc = combine(acc, v)
	}
	return acc
}
