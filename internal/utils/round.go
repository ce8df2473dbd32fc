package utils

import "math"

// roundingSlack absorbs binary representation error so that values such as
// 2.675 (stored as 2.67499999...) still round up at the second decimal.
const roundingSlack = 1e-9

// RoundHalfUp rounds v to the given number of decimal places, ties toward +Inf.
func RoundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5+roundingSlack) / p
}
