package utils

import "math"

// Round rounds f to the given number of fraction digits.
func Round(f float64, places int) float64 {
	if f == 0 {
		return 0
	}

	scale := math.Pow(10, float64(places))
	return math.Round(f*scale) / scale
}
