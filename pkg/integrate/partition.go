package integrate

// Range is the half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits [0, n) into contiguous ranges. The first n%parts ranges
// get one extra index. parts is clamped to [1, n]; n <= 0 returns nil.
func Partition(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	chunk := n / parts
	remainder := n % parts
	ranges := make([]Range, parts)
	for i := range ranges {
		start := i*chunk + min(i, remainder)
		count := chunk
		if i < remainder {
			count++
		}
		ranges[i] = Range{Start: start, End: start + count}
	}
	return ranges
}
