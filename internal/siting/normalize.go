package siting

import (
	"math"
	"sort"
)

// Percentile bounds used by RobustMinMax.
const (
	robustLowerQuantile = 0.05
	robustUpperQuantile = 0.95
	degenerateRange     = 1e-12
	neutralScore        = 0.5
)

// RobustMinMax scales values to [0,1] between their 5th and 95th
// percentiles, clipping anything outside those bounds. NaN marks a missing
// value and maps to the neutral 0.5, as does every value of a constant
// series.
func RobustMinMax(values []float64) []float64 {
	out := make([]float64, len(values))
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		fill(out, neutralScore)
		return out
	}
	sort.Float64s(present)
	lo := quantile(present, robustLowerQuantile)
	hi := quantile(present, robustUpperQuantile)
	width := hi - lo
	if width <= degenerateRange {
		fill(out, neutralScore)
		return out
	}
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = neutralScore
			continue
		}
		out[i] = clamp((clamp(v, lo, hi)-lo)/width, 0, 1)
	}
	return out
}

// InvertScore flips a [0,1] score for metrics where lower raw values are
// preferable.
func InvertScore(score float64) float64 { return 1 - score }

// InvertScores applies InvertScore element-wise into a new slice.
func InvertScores(scores []float64) []float64 {
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = InvertScore(s)
	}
	return out
}

// quantile interpolates linearly between order statistics of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	i := int(math.Floor(pos))
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + (sorted[i+1]-sorted[i])*frac
}

func fill(xs []float64, v float64) {
	for i := range xs {
		xs[i] = v
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
