// Package signal synthesises test signals for exercising filters: tones,
// tone mixtures, impulses and seeded noise.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-iir/dsp/core"
)

var (
	// ErrInvalidLength is returned when a signal of zero or negative length
	// is requested.
	ErrInvalidLength = errors.New("signal: length must be > 0")

	// ErrInvalidFrequency is returned for tone frequencies outside
	// [0, Nyquist].
	ErrInvalidFrequency = errors.New("signal: frequency outside [0, Nyquist]")
)

// Generator creates deterministic signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the seed used by WhiteNoise. The default seed is 1.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// NewGenerator creates a generator for sampleRate Hz.
func NewGenerator(sampleRate float64, opts ...Option) (*Generator, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("signal: sample rate must be > 0: %v", sampleRate)
	}

	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Sine returns amplitude*sin(2 pi f n / fs), starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if nyq := core.Nyquist(g.sampleRate); freqHz < 0 || freqHz > nyq {
		return nil, fmt.Errorf("%w: %v Hz, Nyquist %v Hz", ErrInvalidFrequency, freqHz, nyq)
	}

	out := make([]float64, samples)
	w := 2 * math.Pi * freqHz / g.sampleRate
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}
	return out, nil
}

// Tones returns the sum of one sine per frequency, each with the given
// amplitude.
func (g *Generator) Tones(amplitude float64, samples int, freqsHz ...float64) ([]float64, error) {
	if len(freqsHz) == 0 {
		return nil, errors.New("signal: no tone frequencies")
	}

	var mix []float64
	for _, f := range freqsHz {
		s, err := g.Sine(f, amplitude, samples)
		if err != nil {
			return nil, err
		}
		if mix == nil {
			mix = s
			continue
		}
		floats.Add(mix, s)
	}
	return mix, nil
}

// Impulse returns a unit impulse at sample 0.
func (g *Generator) Impulse(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	out := make([]float64, samples)
	out[0] = 1
	return out, nil
}

// WhiteNoise returns seeded uniform noise in [-amplitude, amplitude]. Equal
// seeds give equal noise.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %v", amplitude)
	}

	rng := rand.New(rand.NewSource(g.seed))
	out := make([]float64, samples)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}
	return out, nil
}

// Normalize returns a copy of data scaled so its largest magnitude equals
// targetPeak. Silence stays silent.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: target peak must be >= 0: %v", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, 0)
	}

	out := make([]float64, len(data))
	peak := floats.Norm(data, math.Inf(1))
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}
	floats.ScaleTo(out, targetPeak/peak, data)
	return out, nil
}
