package report

// Bin counts the values v with Lo <= v <= Hi.
type Bin struct {
	Lo, Hi int
	Count  int
}

// Histogram bins integer values into at most nBins bins of equal integer
// width spanning [min(values), max(values)].
func Histogram(values []int, nBins int) []Bin {
	if len(values) == 0 || nBins < 1 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo + 1
	width := (span + nBins - 1) / nBins
	n := (span + width - 1) / width
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + i*width
		bins[i].Hi = bins[i].Lo + width - 1
	}
	bins[n-1].Hi = hi

	for _, v := range values {
		bins[(v-lo)/width].Count++
	}

	return bins
}
