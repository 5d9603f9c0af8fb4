package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-iir/dsp/core"
)

// Goertzel measures the DFT of a block at one frequency, which need not
// fall on an FFT bin. After N samples Power equals
// |sum x[n] e^{-j 2 pi f n / fs}|^2. State carries across ProcessBlock
// calls until Reset.
type Goertzel struct {
	freq float64
	k    float64 // 2 cos(omega)
	q1   float64
	q2   float64
}

// NewGoertzel returns an analyzer tuned to freqHz, which must lie in
// [0, sampleRate/2].
func NewGoertzel(freqHz, sampleRate float64) (*Goertzel, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("goertzel: %w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if !core.IsFinite(freqHz) || freqHz < 0 || freqHz > core.Nyquist(sampleRate) {
		return nil, fmt.Errorf("goertzel: %w: %v Hz outside [0, %v]",
			ErrInvalidRange, freqHz, core.Nyquist(sampleRate))
	}

	omega := 2 * math.Pi * freqHz / sampleRate
	return &Goertzel{freq: freqHz, k: 2 * math.Cos(omega)}, nil
}

// Reset starts a new block.
func (g *Goertzel) Reset() { g.q1, g.q2 = 0, 0 }

// ProcessBlock feeds samples into the running recursion.
func (g *Goertzel) ProcessBlock(samples []float64) {
	q1, q2 := g.q1, g.q2
	for _, x := range samples {
		q1, q2 = x+g.k*q1-q2, q1
	}
	g.q1, g.q2 = q1, q2
}

// Power returns the squared DFT magnitude accumulated so far.
func (g *Goertzel) Power() float64 {
	return g.q1*g.q1 + g.q2*g.q2 - g.k*g.q1*g.q2
}

// Magnitude returns the DFT magnitude accumulated so far.
func (g *Goertzel) Magnitude() float64 {
	return math.Sqrt(max(g.Power(), 0))
}

// Frequency returns the tuned frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.freq }

// ToneMagnitudes returns the DFT magnitude of signal at each of freqs.
func ToneMagnitudes(signal []float64, sampleRate float64, freqs ...float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, len(freqs))
	for i, f := range freqs {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return nil, err
		}

		g.ProcessBlock(signal)
		out[i] = g.Magnitude()
	}

	return out, nil
}

// AttenuationDB returns how far the tone at freqHz sits below the tone at
// refHz in signal, in dB (positive means quieter).
func AttenuationDB(signal []float64, sampleRate, freqHz, refHz float64) (float64, error) {
	m, err := ToneMagnitudes(signal, sampleRate, freqHz, refHz)
	if err != nil {
		return 0, err
	}

	return -core.LinearToDB(m[0] / m[1]), nil
}
