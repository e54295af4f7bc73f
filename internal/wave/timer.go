package wave

import "math"

// Timer is a repeating countdown measured in seconds.
type Timer struct {
	period  float32
	elapsed float32
}

// NewTimer creates a timer that fires every period seconds.
func NewTimer(period float32) *Timer {
	return &Timer{period: period}
}

// Tick advances the timer by dt seconds and reports whether it fired.
// It fires at most once per call and keeps the overshoot for the next period.
func (t *Timer) Tick(dt float32) bool {
	if t.period <= 0 || dt <= 0 {
		return false
	}

	t.elapsed += dt
	if t.elapsed < t.period {
		return false
	}

	// Long stalls fire once and keep only the partial period.
	t.elapsed = float32(math.Mod(float64(t.elapsed), float64(t.period)))
	return true
}

// SetPeriod replaces the period and restarts the countdown.
func (t *Timer) SetPeriod(period float32) {
	t.period = period
	t.elapsed = 0
}

// Period returns the current period in seconds.
func (t *Timer) Period() float32 {
	return t.period
}

// Remaining returns the seconds left until the next fire.
func (t *Timer) Remaining() float32 {
	if t.period <= 0 {
		return 0
	}
	return t.period - t.elapsed
}
