package engine

import "math"

// Mean returns the arithmetic mean of the series, or 0 for an empty series.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// SampleStdDev returns the sample standard deviation (n-1 denominator).
// With fewer than two observations the deviation is undefined and ok is
// false; callers substitute their documented fallback, never zero.
func SampleStdDev(series []float64) (sd float64, ok bool) {
	n := len(series)
	if n < 2 {
		return 0, false
	}
	mean := Mean(series)
	var ss float64
	for _, v := range series {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1)), true
}

// CoefficientOfVariation returns stddev/mean as a percentage. It is
// undefined (ok=false) when the deviation itself is undefined or the mean
// is zero.
func CoefficientOfVariation(series []float64) (cv float64, ok bool) {
	sd, ok := SampleStdDev(series)
	if !ok {
		return 0, false
	}
	mean := Mean(series)
	if mean == 0 {
		return 0, false
	}
	return sd / mean * 100, true
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
