package bench

import (
	"fmt"
	"io"

	"github.com/qcserestipy/integrate/pkg/integrate"
)

// SweepSizes returns 1, 10, 100, ... up to and including maxN.
func SweepSizes(maxN int) []int {
	var sizes []int
	for n := 1; n <= maxN; n *= 10 {
		sizes = append(sizes, n)
		if n > maxN/10 {
			break
		}
	}
	return sizes
}

// Sweep compares both integrators for every size in SweepSizes(maxN) and
// writes one block per size. It returns the comparisons in size order.
func Sweep(w io.Writer, maxN int, a, b float64, opts ...integrate.Option) ([]Comparison, error) {
	sizes := SweepSizes(maxN)
	results := make([]Comparison, 0, len(sizes))
	for _, n := range sizes {
		c := Compare(n, a, b, opts...)
		if _, err := fmt.Fprintf(w,
			"Width: %d\nSeq\t%.10f\t%s\nPar\t%.10f\t%s\nSpeedup: %.6g\n",
			n,
			c.Seq.Value, c.Seq.Elapsed,
			c.Par.Value, c.Par.Elapsed,
			c.Speedup(),
		); err != nil {
			return results, err
		}
		results = append(results, c)
	}
	return results, nil
}
