package iir

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) of (b, a) at the
// given frequency (Hz) and sample rate (Hz).
func Response(b, a []float64, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))

	return polyZ(b, ejw) / polyZ(a, ejw)
}

// MagnitudeDB returns 20*log10(|H(f)|).
func MagnitudeDB(b, a []float64, freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(Response(b, a, freqHz, sampleRate)))
}

// Phase returns the phase response in radians at the given frequency.
func Phase(b, a []float64, freqHz, sampleRate float64) float64 {
	return cmplx.Phase(Response(b, a, freqHz, sampleRate))
}

// ImpulseResponse returns the first n samples of the filter's response to a
// unit impulse.
func ImpulseResponse(b, a []float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}

	x := make([]float64, n)
	x[0] = 1

	return Apply(b, a, x)
}

// polyZ evaluates c[0] + c[1] z + c[2] z^2 + ... where z is already e^-jw.
func polyZ(c []float64, z complex128) complex128 {
	var v complex128
	for i := len(c) - 1; i >= 0; i-- {
		v = v*z + complex(c[i], 0)
	}

	return v
}
