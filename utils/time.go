package utils

import "math"

// nanosThreshold separates nanosecond from second timestamps. Unix seconds stay below it until the
// year 5138 while any nanosecond stamp later than about two minutes after the epoch exceeds it.
const nanosThreshold = 1e11

// subNanoFraction is the resolution of a seconds stamp. A nonzero fraction finer than this
// cannot come from a seconds clock and marks a nanosecond count divided down somewhere upstream.
const subNanoFraction = 1e-9

const nanosPerSecond = 1000000000

// IsTimeInNanos guesses whether a raw timestamp is in nanoseconds rather than seconds.
func IsTimeInNanos(t float64) bool {
	if t >= nanosThreshold {
		return true
	}
	frac := t - math.Floor(t)
	return frac > 0 && frac < subNanoFraction
}

// NanoIntToSecDouble converts integer nanoseconds to seconds. The whole seconds and the
// remainder are converted separately so large stamps keep their sub-microsecond digits.
func NanoIntToSecDouble(nanos int64) float64 {
	secs := nanos / nanosPerSecond
	return float64(secs) + float64(nanos-secs*nanosPerSecond)*1e-9
}
