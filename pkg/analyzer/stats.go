package analyzer

import (
	"math"
	"sort"
)

// IntervalStats is the five-number summary plus moments of a delta
// array. For an empty array Count is 0 and every other field is NaN;
// for a single value Std alone is NaN.
type IntervalStats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Percentile computes the p-th percentile of arr using linear
// interpolation between closest ranks. Returns NaN on empty input.
func Percentile(arr []float64, p float64) float64 {
	if len(arr) == 0 {
		return math.NaN()
	}

	cp := append([]float64(nil), arr...)
	sort.Float64s(cp)

	if p <= 0 {
		return cp[0]
	}
	if p >= 100 {
		return cp[len(cp)-1]
	}

	pos := p / 100 * float64(len(cp)-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if frac == 0 {
		return cp[lo]
	}
	return cp[lo] + frac*(cp[lo+1]-cp[lo])
}

// Describe computes descriptive statistics over arr. Std uses the
// sample standard deviation (N-1 divisor), so it is NaN for fewer
// than two values.
func Describe(arr []float64) IntervalStats {
	nan := math.NaN()
	stats := IntervalStats{
		Count:  len(arr),
		Mean:   nan,
		Std:    nan,
		Min:    nan,
		Q25:    nan,
		Median: nan,
		Q75:    nan,
		Max:    nan,
	}
	if len(arr) == 0 {
		return stats
	}

	sum := 0.0
	stats.Min = arr[0]
	stats.Max = arr[0]
	for _, v := range arr {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(arr))

	if len(arr) > 1 {
		ss := 0.0
		for _, v := range arr {
			d := v - stats.Mean
			ss += d * d
		}
		stats.Std = math.Sqrt(ss / float64(len(arr)-1))
	}

	stats.Q25 = Percentile(arr, 25)
	stats.Median = Percentile(arr, 50)
	stats.Q75 = Percentile(arr, 75)

	return stats
}
