package confetti

import "math"

// roundTo rounds half up to the given number of decimals. The epsilon nudge
// keeps values like 1.005 from rounding down due to binary representation.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor((v+epsilon)*p+0.5) / p
}

// epsilon is the gap between 1 and the next float64.
const epsilon = 2.220446049250313e-16

// mapRange maps value linearly from [inMin, inMax] to [outMin, outMax].
func mapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	return (value-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// rotateDegree adds amount to degree, wrapping once past 360.
func rotateDegree(degree, amount float64) float64 {
	result := degree + amount
	if result > 360 {
		return result - 360
	}
	return result
}
