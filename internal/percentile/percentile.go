// Package percentile holds the cohort statistics used by team aggregation.
package percentile

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// NearestRank returns sorted[floor(n*pct/100)], clamped to the last index.
// sorted must be ascending. It returns 0 for an empty slice.
func NearestRank(sorted []float64, pct int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := n * pct / 100
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// Mean is the arithmetic mean of values, 0 when empty.
func Mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// Sorted returns an ascending copy of values.
func Sorted(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}

// Summary is the distribution of a cohort's per-user rates.
type Summary struct {
	Mean float64
	P25  float64
	P50  float64
	P75  float64
	P90  float64
}

// Summarize computes the mean and nearest-rank quartiles of values.
func Summarize(values []float64) Summary {
	sorted := Sorted(values)
	return Summary{
		Mean: Mean(sorted),
		P25:  NearestRank(sorted, 25),
		P50:  NearestRank(sorted, 50),
		P75:  NearestRank(sorted, 75),
		P90:  NearestRank(sorted, 90),
	}
}
