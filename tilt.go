package parallax

import "math"

// tiltDivisor scales orientation angles in degrees down to pixels.
const tiltDivisor = 6

// TiltTracker holds the perspective offsets derived from device orientation.
// The zero value is ready to use and reports no tilt.
type TiltTracker struct {
	beta  int
	gamma int
}

// Update stores round(beta/6) and round(gamma/6). beta is the front-back
// tilt and gamma the left-right tilt, in degrees.
func (t *TiltTracker) Update(beta, gamma float64) {
	t.beta = roundHalfUp(beta / tiltDivisor)
	t.gamma = roundHalfUp(gamma / tiltDivisor)
}

// Offsets returns the stored, unclamped offsets.
func (t *TiltTracker) Offsets() (beta, gamma int) {
	return t.beta, t.gamma
}

// Clamped returns the stored offsets, each capped at max from above.
// There is no lower bound: a strongly negative tilt passes through
// unchanged.
func (t *TiltTracker) Clamped(max int) (beta, gamma int) {
	beta, gamma = t.beta, t.gamma
	if beta > max {
		beta = max
	}
	if gamma > max {
		gamma = max
	}
	return beta, gamma
}

// roundHalfUp rounds to the nearest integer, ties toward +Inf.
// NaN and infinities map to 0.
func roundHalfUp(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Floor(v + 0.5))
}
