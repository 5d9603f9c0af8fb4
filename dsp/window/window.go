// Package window generates tapering windows for spectral analysis of
// filtered signals.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeFlatTop
)

// shape describes a generalized cosine window: w(x) = sum_k terms[k] cos(2 pi k x)
// for x in [0, 1]. Odd-term signs are folded into terms.
type shape struct {
	name  string
	terms []float64
}

var shapes = map[Type]shape{
	TypeRectangular: {name: "rectangular", terms: []float64{1}},
	TypeHann:        {name: "hann", terms: []float64{0.5, -0.5}},
	TypeHamming:     {name: "hamming", terms: []float64{0.54, -0.46}},
	TypeBlackman:    {name: "blackman", terms: []float64{0.42, -0.5, 0.08}},
	TypeFlatTop: {name: "flat-top", terms: []float64{
		0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368,
	}},
}

func (t Type) String() string {
	if s, ok := shapes[t]; ok {
		return s.name
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// ParseType maps a window name such as "hann" to its Type. Matching ignores
// case and surrounding space.
func ParseType(name string) (Type, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for t, s := range shapes {
		if s.name == want {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownType, name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form used for FFT framing. The default
// is the symmetric form.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns n window coefficients. Unknown types generate a
// rectangular window.
func Generate(t Type, n int, opts ...Option) []float64 {
	if n <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	terms := shapes[TypeRectangular].terms
	if s, ok := shapes[t]; ok {
		terms = s.terms
	}

	span := float64(n - 1)
	if cfg.periodic {
		span = float64(n)
	}

	w := make([]float64, n)
	for i := range w {
		x := 0.5
		if n > 1 {
			x = float64(i) / span
		}
		for k, c := range terms {
			w[i] += c * math.Cos(2*math.Pi*float64(k)*x)
		}
	}
	return w
}

// ApplyCoefficients returns samples multiplied element-wise by coeffs.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, fmt.Errorf("%w: %d samples, %d coefficients",
			errMismatchedLength, len(samples), len(coeffs))
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)
	return out, nil
}

// CoherentGain returns sum(w[n]) / N, the amplitude a windowed sinusoid keeps
// at its own bin.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := floats.Sum(coeffs)
	if sum == 0 {
		return 0, errZeroCoherentGain
	}
	return sum / float64(len(coeffs)), nil
}
