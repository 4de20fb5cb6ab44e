// Package bench times the sequential and parallel integrators against each
// other and prints the comparison.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/qcserestipy/integrate/pkg/integrate"
)

// Measurement is one integral estimate and the wall-clock time it took.
type Measurement struct {
	Value   float64
	Elapsed time.Duration
}

// Milliseconds returns the elapsed time in fractional milliseconds.
func (m Measurement) Milliseconds() float64 {
	return float64(m.Elapsed) / float64(time.Millisecond)
}

// Time runs fn once and records how long it took.
func Time(fn func() float64) Measurement {
	start := time.Now()
	v := fn()
	return Measurement{Value: v, Elapsed: time.Since(start)}
}

// Comparison holds a sequential and a parallel run over the same request.
type Comparison struct {
	N   int
	Seq Measurement
	Par Measurement
}

// Speedup is the sequential time divided by the parallel time.
func (c Comparison) Speedup() float64 {
	return c.Seq.Milliseconds() / c.Par.Milliseconds()
}

// Compare runs the sequential integrator and then the parallel one on
// n samples over [a, b].
func Compare(n int, a, b float64, opts ...integrate.Option) Comparison {
	return Comparison{
		N:   n,
		Seq: Time(func() float64 { return integrate.Sequential(n, a, b) }),
		Par: Time(func() float64 { return integrate.Parallel(n, a, b, opts...) }),
	}
}

// Report writes c in the fixed five-line console format. Floats are printed
// with six significant digits.
func Report(w io.Writer, c Comparison) error {
	_, err := fmt.Fprintf(w,
		"n:         %d\n"+
			"Result:    %.6g(seq) %.6g (par)\n"+
			"Time:      %.6gms (seq) %.6g ms (par)\n"+
			"Speedup:   %.6g\n"+
			"\n",
		c.N,
		c.Seq.Value, c.Par.Value,
		c.Seq.Milliseconds(), c.Par.Milliseconds(),
		c.Speedup(),
	)
	return err
}
