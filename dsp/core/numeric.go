// Package core holds numeric helpers shared by the filter and analysis
// packages.
package core

import "math"

// Clamp limits v to [lo, hi]. Swapped bounds are reordered.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(v, lo), hi)
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FirstNonFinite returns the index of the first NaN or infinite element of
// data, or -1 when all elements are finite.
func FirstNonFinite(data []float64) int {
	for i, v := range data {
		if !IsFinite(v) {
			return i
		}
	}
	return -1
}

// Nyquist returns half the sample rate.
func Nyquist(sampleRate float64) float64 { return sampleRate / 2 }

// LinearToDB converts an amplitude ratio to dB (20 log10). Zero maps to
// -Inf, negative input to NaN.
func LinearToDB(ratio float64) float64 {
	switch {
	case ratio < 0:
		return math.NaN()
	case ratio == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(ratio)
}
