package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-iir/dsp/core"
	"github.com/cwbudde/algo-iir/dsp/window"
)

// Option configures Analyze.
type Option func(*config)

type config struct {
	window  window.Type
	fftSize int
}

// WithWindow tapers the signal before the FFT. The default is rectangular.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithFFTSize sets the transform length. It is rounded up to a power of two
// and never shorter than the signal.
func WithFFTSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.fftSize = n
		}
	}
}

// Result is a one-sided magnitude spectrum, bins 0..FFTSize/2.
type Result struct {
	SampleRate float64
	FFTSize    int
	BinHz      float64
	Magnitudes []float64
}

// Analyze computes the magnitude spectrum of a real signal. Magnitudes are
// scaled by the window's coherent gain so that a windowed sinusoid of
// amplitude A peaks near A*N/2 regardless of the window.
func Analyze(signal []float64, sampleRate float64, opts ...Option) (*Result, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	fftSize := nextPowerOf2(max(cfg.fftSize, len(signal)))

	coeffs := window.Generate(cfg.window, len(signal))
	weighted, err := window.ApplyCoefficients(signal, coeffs)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range weighted {
		in[i] = complex(v/gain, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return &Result{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		BinHz:      sampleRate / float64(fftSize),
		Magnitudes: Magnitude(out[:fftSize/2+1]),
	}, nil
}

// Frequency returns the centre frequency of bin k in Hz.
func (r *Result) Frequency(k int) float64 {
	return float64(k) * r.BinHz
}

// Bin returns the index of the bin nearest to freqHz, clamped to the
// one-sided range.
func (r *Result) Bin(freqHz float64) int {
	k := int(math.Round(freqHz / r.BinHz))
	return int(core.Clamp(float64(k), 0, float64(len(r.Magnitudes)-1)))
}

// Peak returns the frequency and magnitude of the strongest bin.
func (r *Result) Peak() (float64, float64) {
	k := floats.MaxIdx(r.Magnitudes)
	return r.Frequency(k), r.Magnitudes[k]
}

// PeakIn returns the strongest bin whose frequency lies in [loHz, hiHz].
func (r *Result) PeakIn(loHz, hiHz float64) (float64, float64, error) {
	lo := int(math.Ceil(loHz / r.BinHz))
	hi := int(math.Floor(hiHz / r.BinHz))
	lo = max(lo, 0)
	hi = min(hi, len(r.Magnitudes)-1)

	if lo > hi {
		return 0, 0, fmt.Errorf("%w: [%v, %v] Hz", ErrInvalidRange, loHz, hiHz)
	}

	k := lo + floats.MaxIdx(r.Magnitudes[lo:hi+1])
	return r.Frequency(k), r.Magnitudes[k], nil
}

// LevelDB returns the magnitude at the bin nearest freqHz relative to ref,
// in dB.
func (r *Result) LevelDB(freqHz, ref float64) float64 {
	return core.LinearToDB(r.Magnitudes[r.Bin(freqHz)] / ref)
}

// Energy returns the sum of squared magnitudes of the bins in [loHz, hiHz].
func (r *Result) Energy(loHz, hiHz float64) float64 {
	lo := max(int(math.Ceil(loHz/r.BinHz)), 0)
	hi := min(int(math.Floor(hiHz/r.BinHz)), len(r.Magnitudes)-1)
	if lo > hi {
		return 0
	}

	band := r.Magnitudes[lo : hi+1]
	return floats.Dot(band, band)
}

// DominantFrequency returns the frequency of the strongest spectral peak of
// signal, ignoring DC.
func DominantFrequency(signal []float64, sampleRate float64, opts ...Option) (float64, error) {
	res, err := Analyze(signal, sampleRate, opts...)
	if err != nil {
		return 0, err
	}

	if len(res.Magnitudes) < 2 {
		return 0, nil
	}

	f, _, err := res.PeakIn(res.BinHz, sampleRate/2)
	return f, err
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
