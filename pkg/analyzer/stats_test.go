package analyzer

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	arr := []float64{1, 2, 3, 4}

	cases := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 1.75},
		{50, 2.5},
		{75, 3.25},
		{100, 4},
	}
	for _, tc := range cases {
		if got := Percentile(arr, tc.p); !almostEqual(got, tc.want) {
			t.Errorf("Percentile(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestPercentile_UnsortedInput(t *testing.T) {
	arr := []float64{4, 1, 3, 2}
	if got := Percentile(arr, 50); !almostEqual(got, 2.5) {
		t.Errorf("Percentile(50) = %v, want 2.5", got)
	}
	// The input must not be reordered.
	if arr[0] != 4 {
		t.Errorf("input mutated: %v", arr)
	}
}

func TestPercentile_Empty(t *testing.T) {
	if got := Percentile(nil, 50); !math.IsNaN(got) {
		t.Errorf("Percentile(empty) = %v, want NaN", got)
	}
}

func TestDescribe(t *testing.T) {
	arr := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	stats := Describe(arr)
	if stats.Count != 8 {
		t.Fatalf("Count = %d, want 8", stats.Count)
	}
	if !almostEqual(stats.Mean, 5) {
		t.Errorf("Mean = %v, want 5", stats.Mean)
	}
	// Sample standard deviation: sqrt(32/7).
	if !almostEqual(stats.Std, math.Sqrt(32.0/7.0)) {
		t.Errorf("Std = %v, want %v", stats.Std, math.Sqrt(32.0/7.0))
	}
	if stats.Min != 2 || stats.Max != 9 {
		t.Errorf("Min/Max = %v/%v, want 2/9", stats.Min, stats.Max)
	}
	if !almostEqual(stats.Q25, 4) {
		t.Errorf("Q25 = %v, want 4", stats.Q25)
	}
	if !almostEqual(stats.Median, 4.5) {
		t.Errorf("Median = %v, want 4.5", stats.Median)
	}
	if !almostEqual(stats.Q75, 5.5) {
		t.Errorf("Q75 = %v, want 5.5", stats.Q75)
	}
}

func TestDescribe_Empty(t *testing.T) {
	stats := Describe(nil)
	if stats.Count != 0 {
		t.Fatalf("Count = %d, want 0", stats.Count)
	}
	for name, v := range map[string]float64{
		"Mean": stats.Mean, "Std": stats.Std, "Min": stats.Min,
		"Q25": stats.Q25, "Median": stats.Median, "Q75": stats.Q75,
		"Max": stats.Max,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, want NaN", name, v)
		}
	}
}

func TestDescribe_SingleValue(t *testing.T) {
	stats := Describe([]float64{42})
	if stats.Count != 1 {
		t.Fatalf("Count = %d, want 1", stats.Count)
	}
	if stats.Mean != 42 || stats.Min != 42 || stats.Max != 42 || stats.Median != 42 {
		t.Errorf("stats = %+v, want 42 across the summary", stats)
	}
	if !math.IsNaN(stats.Std) {
		t.Errorf("Std = %v, want NaN for a single value", stats.Std)
	}
}

func TestDescribe_NegativeDeltas(t *testing.T) {
	// A non-monotonic log surfaces negative deltas in the statistics.
	stats := Describe([]float64{-2, 3})
	if stats.Min != -2 || stats.Max != 3 {
		t.Errorf("Min/Max = %v/%v, want -2/3", stats.Min, stats.Max)
	}
}
