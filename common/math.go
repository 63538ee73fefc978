package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

// FloorDiv divides a pixel coordinate by a cell size, rounding toward negative infinity.
func FloorDiv(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}
