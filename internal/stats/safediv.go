// Package stats is the diary aggregation engine: classification, totals,
// percentage allocation, calendar charts, trends and historic blending.
// Every exported function is pure; callers own inputs and outputs.
package stats

import "math"

// SafeDivide returns x/y, or 0 when y is 0. Aggregated outputs are serialized
// as-is, so NaN and Inf must never leak out of the engine.
func SafeDivide(x, y float64) float64 {
	if y == 0 {
		return 0
	}
	r := x / y
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// floorTo1 floors to one decimal. The epsilon absorbs float representation
// error, e.g. 0.3*10 == 3.0000000000000004 but 0.7*10 == 7.000000000000001.
func floorTo1(x float64) float64 {
	return math.Floor(x*10+1e-9) / 10
}

// roundHalf rounds to the nearest 0.5.
func roundHalf(x float64) float64 {
	return math.Round(x*2) / 2
}

func clampNonNegative(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	return x
}
