// Package testutil provides deterministic signals and tolerance assertions
// for filter tests.
package testutil

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// DeterministicSine returns amplitude*sin(2 pi freqHz n / sampleRate) for
// n in [0, length).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}
	return out
}

// MultiTone sums one phase-zero sine of the given amplitude per frequency.
// No frequencies gives silence.
func MultiTone(sampleRate, amplitude float64, length int, freqsHz ...float64) []float64 {
	mix := make([]float64, length)
	for _, f := range freqsHz {
		floats.Add(mix, DeterministicSine(f, sampleRate, amplitude, length))
	}
	return mix
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude] drawn
// from seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// Impulse returns a unit impulse at pos, or silence if pos is out of range.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ones returns a unit step of length n.
func Ones(n int) []float64 {
	out := make([]float64, n)
	floats.AddConst(1, out)
	return out
}
