package profile

import "math"

// Precision is the number of decimal places every coordinate is rounded to.
const Precision = 2

// Unit is the smallest distinguishable distance at [Precision].
const Unit = 0.01

const scale = 100.0

// Round rounds x to [Precision] decimals, halves away from zero.
func Round(x float64) float64 {
	return math.Round(x*scale) / scale
}

// RoundAll returns a rounded copy of xs.
func RoundAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Round(x)
	}
	return out
}

// Key maps x to an integer count of [Unit]s. Two coordinates with equal keys
// are the same point at the configured precision.
func Key(x float64) int64 {
	return int64(math.Round(x * scale))
}

// Equal reports whether a and b coincide at [Precision].
func Equal(a, b float64) bool {
	return Key(a) == Key(b)
}

// FloorUnit returns the largest multiple of [Unit] not above x.
func FloorUnit(x float64) float64 {
	return math.Floor(x*scale+1e-9) / scale
}

// CeilUnit returns the smallest multiple of [Unit] not below x.
func CeilUnit(x float64) float64 {
	return math.Ceil(x*scale-1e-9) / scale
}
