package integrate

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/qcserestipy/integrate/pkg/host"
	"github.com/qcserestipy/integrate/pkg/workerpool"
)

// DefaultTasksPerWorker is the number of contiguous ranges queued per worker
// by the pool and errgroup strategies.
const DefaultTasksPerWorker = 4

// MaxTasks caps the number of ranges queued by the pool and errgroup
// strategies, whatever the tasks-per-worker setting.
const MaxTasks = 1 << 16

type options struct {
	workers        int
	strategy       Strategy
	tasksPerWorker int
	logger         *logrus.Entry
}

// Option configures Parallel and ParallelContext.
type Option func(*options)

func defaultOptions() options {
	return options{
		workers:        host.Available(),
		strategy:       StrategyPool,
		tasksPerWorker: DefaultTasksPerWorker,
		logger:         logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithWorkers sets the number of concurrent workers. Values below one keep
// the default, one per available processor.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithStrategy selects the partition and reduction scheme.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithTasksPerWorker sets how many contiguous ranges each worker is given
// on average. Ignored by StrategyMutex and StrategyInterleaved.
func WithTasksPerWorker(k int) Option {
	return func(o *options) {
		if k > 0 {
			o.tasksPerWorker = k
		}
	}
}

// WithLogger sets the entry used for per-task debug logging.
func WithLogger(entry *logrus.Entry) Option {
	return func(o *options) {
		if entry != nil {
			o.logger = entry
		}
	}
}

// Parallel computes the same midpoint sum as Sequential, split across
// workers. Each index in [0, n) is sampled exactly once and every worker's
// partial sum is added to the total exactly once. The result may differ from
// Sequential in the last bits because the additions are reassociated.
func Parallel(n int, a, b float64, opts ...Option) float64 {
	// context.Background is never canceled, so err is always nil.
	sum, _ := ParallelContext(context.Background(), n, a, b, opts...)
	return sum
}

// ParallelContext is Parallel with cancellation. Every strategy checks ctx
// before a task starts summing its range; a task already running finishes
// its range. A canceled call returns ctx.Err().
func ParallelContext(ctx context.Context, n int, a, b float64, opts ...Option) (float64, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if n <= 0 {
		return 0.0, nil
	}

	w := width(n, a, b)
	workers := min(o.workers, n)
	log := o.logger.WithFields(logrus.Fields{
		"strategy": o.strategy.String(),
		"workers":  workers,
		"n":        n,
	})

	switch o.strategy {
	case StrategyErrgroup:
		return reduceErrgroup(ctx, w, a, Partition(n, taskCount(n, workers, o.tasksPerWorker)), workers, log)
	case StrategyMutex:
		return reduceMutex(ctx, w, a, Partition(n, workers), log)
	case StrategyInterleaved:
		return reduceInterleaved(ctx, w, a, n, workers, log)
	default:
		return reducePool(ctx, w, a, Partition(n, taskCount(n, workers, o.tasksPerWorker)), workers, log)
	}
}

// taskCount returns min(workers*perWorker, n, MaxTasks) without
// overflowing the product.
func taskCount(n, workers, perWorker int) int {
	limit := min(n, MaxTasks)
	if workers < 1 || perWorker < 1 {
		return 1
	}
	if perWorker > limit/workers {
		return limit
	}
	return workers * perWorker
}

func add(acc, v float64) float64 {
	return acc + v
}

func reducePool(ctx context.Context, w, a float64, ranges []Range, workers int, log *logrus.Entry) (float64, error) {
	log.WithField("tasks", len(ranges)).Debug("Work distribution prepared")

	pool := workerpool.New[Range, float64](
		workerpool.WithWorkers(workers),
		workerpool.WithLogger(log),
	)
	partials, err := pool.Run(ctx, ranges, func(_ context.Context, r Range) float64 {
		start := time.Now()
		sum := sumRange(w, a, r)
		log.WithFields(logrus.Fields{
			"start":    r.Start,
			"end":      r.End,
			"partial":  sum,
			"duration": time.Since(start),
		}).Debug("Range completed")
		return sum
	})
	if err != nil {
		return 0, err
	}
	return workerpool.Reduce(partials, 0.0, add), nil
}

func reduceErrgroup(ctx context.Context, w, a float64, ranges []Range, workers int, log *logrus.Entry) (float64, error) {
	log.WithField("tasks", len(ranges)).Debug("Work distribution prepared")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	partials := make([]float64, len(ranges))
	for i, r := range ranges {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			partials[i] = sumRange(w, a, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return workerpool.Reduce(partials, 0.0, add), nil
}

func reduceMutex(ctx context.Context, w, a float64, ranges []Range, log *logrus.Entry) (float64, error) {
	var (
		mu       sync.Mutex
		total    float64
		canceled error
		wg       sync.WaitGroup
	)
	wg.Add(len(ranges))
	for worker, r := range ranges {
		go func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				mu.Lock()
				canceled = err
				mu.Unlock()
				return
			}
			partial := sumRange(w, a, r)

			mu.Lock()
			total += partial
			mu.Unlock()

			log.WithFields(logrus.Fields{
				"worker":  worker,
				"samples": r.Len(),
				"partial": partial,
			}).Debug("Partial merged")
		}()
	}
	wg.Wait()
	if canceled != nil {
		return 0, canceled
	}
	return total, nil
}

func reduceInterleaved(ctx context.Context, w, a float64, n, workers int, log *logrus.Entry) (float64, error) {
	offsets := make([]int, workers)
	for i := range offsets {
		offsets[i] = i
	}

	pool := workerpool.New[int, float64](
		workerpool.WithWorkers(workers),
		workerpool.WithLogger(log),
	)
	partials, err := pool.Run(ctx, offsets, func(_ context.Context, offset int) float64 {
		return sumStride(w, a, offset, workers, n)
	})
	if err != nil {
		return 0, err
	}
	return workerpool.Reduce(partials, 0.0, add), nil
}
