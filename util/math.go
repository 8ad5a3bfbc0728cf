package util

import "math"

func MinFloat64(val0 float64, vals ...float64) float64 {
	min := val0
	for _, v := range vals {
		if v < min {
			min = v
		}
	}
	return min
}

// RoundToDecimals rounds val to the given number of decimal places.
// NaN rounds to NaN.
func RoundToDecimals(val float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(val*shift) / shift
}
