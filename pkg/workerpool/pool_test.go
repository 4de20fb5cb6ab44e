package workerpool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPreservesInputOrder(t *testing.T) {
	pool := New[int, int](WithWorkers(4))
	inputs := make([]int, 100)
	for i := range inputs {
		inputs[i] = i
	}

	out, err := pool.Run(context.Background(), inputs, func(_ context.Context, v int) int {
		// Later inputs finish first.
		time.Sleep(time.Duration(100-v) * time.Microsecond)
		return v * v
	})
	require.NoError(t, err)
	require.Len(t, out, len(inputs))
	for i, v := range out {
		assert.Equal(t, i*i, v, "output %d", i)
	}
}

func TestRunCallsFnOncePerInput(t *testing.T) {
	var calls atomic.Int64
	pool := New[int, struct{}](WithWorkers(8))

	_, err := pool.Run(context.Background(), make([]int, 1000), func(context.Context, int) struct{} {
		calls.Add(1)
		return struct{}{}
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1000, calls.Load())
}

func TestRunEmptyInputs(t *testing.T) {
	pool := New[int, int]()
	out, err := pool.Run(context.Background(), nil, func(context.Context, int) int { return 1 })
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunMoreWorkersThanInputs(t *testing.T) {
	pool := New[int, int](WithWorkers(64))
	out, err := pool.Run(context.Background(), []int{1, 2, 3}, func(_ context.Context, v int) int { return v + 1 })
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, out)
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := New[int, int](WithWorkers(2))
	out, err := pool.Run(ctx, []int{1, 2, 3}, func(_ context.Context, v int) int { return v })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestRunCancelMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := New[int, int](WithWorkers(1))
	inputs := make([]int, 50)
	out, err := pool.Run(ctx, inputs, func(_ context.Context, v int) int {
		cancel()
		return v
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestWithWorkersIgnoresNonPositive(t *testing.T) {
	pool := New[int, int](WithWorkers(3), WithWorkers(0), WithWorkers(-2))
	assert.Equal(t, 3, pool.NumWorkers)
}

func TestReduce(t *testing.T) {
	sum := Reduce([]float64{0.5, 0.25, 0.25}, 0.0, func(acc, v float64) float64 { return acc + v })
	assert.Equal(t, 1.0, sum)

	assert.Equal(t, 7, Reduce(nil, 7, func(acc, v int) int { return acc + v }))
}
