// Package integrate estimates the integral of 4/(1+x²) with the midpoint
// rule, either on the calling goroutine or split across a pool of workers.
//
// Over [0, 1] the exact value is π.
package integrate

// F is the integrand, 4/(1+x²).
func F(x float64) float64 {
	return 4.0 / (1.0 + x*x)
}

// Sequential sums w*F(a + w*(i+0.5)) for i = 0..n-1 in increasing order,
// with w = (b-a)/n. The summation order is fixed, so repeated calls return
// bit-identical results. n <= 0 yields 0.
func Sequential(n int, a, b float64) float64 {
	if n <= 0 {
		return 0.0
	}
	return sumRange(width(n, a, b), a, Range{Start: 0, End: n})
}

func width(n int, a, b float64) float64 {
	return (b - a) / float64(n)
}

// sumRange adds the weighted midpoint samples with index in r.
func sumRange(w, a float64, r Range) float64 {
	sum := 0.0
	for i := r.Start; i < r.End; i++ {
		sum += w * F(a+w*(float64(i)+0.5))
	}
	return sum
}

// sumStride adds the samples offset, offset+stride, ... below n.
func sumStride(w, a float64, offset, stride, n int) float64 {
	sum := 0.0
	for i := offset; i < n; i += stride {
		sum += w * F(a+w*(float64(i)+0.5))
	}
	return sum
}
