// Package analyzer derives sampling-interval statistics from parsed
// stat log sequences to verify that the collector sampled at its
// intended interval.
package analyzer

import (
	"github.com/radlog/radlog/pkg/parser"
)

// DefaultZ is the default IQR sensitivity multiplier for outlier
// rejection.
const DefaultZ = 1.5

// Option configures interval analysis.
type Option func(*settings)

type settings struct {
	removeOutliers bool
	z              float64
}

// WithOutlierFilter enables IQR outlier rejection on the delta array
// before statistics are computed. z is the sensitivity multiplier;
// pass DefaultZ for the conventional 1.5 rule.
func WithOutlierFilter(z float64) Option {
	return func(s *settings) {
		s.removeOutliers = true
		s.z = z
	}
}

// Analyze computes descriptive statistics over the consecutive
// read-interval deltas of a sequence, in milliseconds. Sequences with
// fewer than two samples yield a Count of 0 and NaN moments rather
// than an error.
func Analyze(seq *parser.SampleSequence, opts ...Option) IntervalStats {
	s := settings{z: DefaultZ}
	for _, opt := range opts {
		opt(&s)
	}

	deltas := ReadDeltas(seq)
	if s.removeOutliers && len(deltas) > 0 {
		deltas = RemoveOutliers(deltas, s.z)
	}
	return Describe(deltas)
}

// ReadDeltas extracts the read timestamps of a sequence in insertion
// order, converts them from nanoseconds to milliseconds, and returns
// the consecutive differences. The result has length N-1 for a
// sequence of length N; deltas are signed, so a non-monotonic log
// yields negative values.
func ReadDeltas(seq *parser.SampleSequence) []float64 {
	reads := seq.Reads()
	stamps := make([]float64, len(reads))
	for i, read := range reads {
		stamps[i] = float64(read) / 1e6
	}
	return deltas(stamps)
}

// deltas returns the differences between consecutive elements of a
// numeric series. The result has length len(arr)-1.
func deltas(arr []float64) []float64 {
	if len(arr) < 2 {
		return nil
	}
	out := make([]float64, len(arr)-1)
	for i := 1; i < len(arr); i++ {
		out[i-1] = arr[i] - arr[i-1]
	}
	return out
}

// RemoveOutliers drops values classified as outliers by the IQR rule:
// values outside [q25 - z*iqr, q75 + z*iqr] are excluded.
func RemoveOutliers(arr []float64, z float64) []float64 {
	if len(arr) == 0 {
		return nil
	}

	q25 := Percentile(arr, 25)
	q75 := Percentile(arr, 75)
	limit := z * (q75 - q25)

	kept := make([]float64, 0, len(arr))
	for _, v := range arr {
		if v >= q25-limit && v <= q75+limit {
			kept = append(kept, v)
		}
	}
	return kept
}
