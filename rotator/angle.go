package rotator

import "math"

// Elevation limits accepted by the rotator.
const (
	MinElevation = 5.0
	MaxElevation = 70.0
)

// Normalize maps an azimuth into [0, 360].
//
// Values in (0, 1) snap to 360, as the controller expects. Negative values
// are wrapped before the snap, so (-360, -359) lands on 360 as well.
func Normalize(angle float64) float64 {
	if angle > 360 {
		angle = math.Mod(angle, 360)
	}
	if angle < 0 {
		angle = math.Mod(angle, 360) + 360
	}
	if angle > 0 && angle < 1 {
		angle = 360
	}
	return angle
}

// Clamp limits v to [lo, hi] and reports whether it had to.
func Clamp(v, lo, hi float64) (float64, bool) {
	switch {
	case v < lo:
		return lo, true
	case v > hi:
		return hi, true
	}
	return v, false
}

// ClampElevation limits an elevation to [MinElevation, MaxElevation].
func ClampElevation(el float64) (float64, bool) {
	return Clamp(el, MinElevation, MaxElevation)
}
