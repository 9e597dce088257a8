package geom

import "math"

// TAU is a full turn in radians.
const TAU = 2 * math.Pi

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return (b-a)*t + a
}

// Modulo returns num mod div in [0, div) for positive div, unlike math.Mod
// which keeps the sign of num.
func Modulo(num, div float64) float64 {
	return math.Mod(math.Mod(num, div)+div, div)
}

// EaseInOut maps a linear alpha in [0, 1] onto a symmetric ease curve.
// power selects the steepness (2 to 5); other values fall back to 2, and a
// power of 1 returns alpha unchanged. alpha is clamped to [0, 1].
func EaseInOut(alpha float64, power int) float64 {
	if power == 1 {
		return alpha
	}
	alpha = math.Max(0, math.Min(1, alpha))
	firstHalf := alpha < 0.5
	slope := alpha
	if !firstHalf {
		slope = 1 - alpha
	}
	slope /= 0.5
	if power < 2 || power > 5 {
		power = 2
	}
	curve := math.Pow(slope, float64(power)) / 2
	if firstHalf {
		return curve
	}
	return 1 - curve
}
