package iir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-iir/dsp/core"
	"github.com/cwbudde/algo-iir/internal/polyroot"
)

// Poles returns the z-plane poles of a denominator given in ascending powers
// of z^-1. Multiplying through by z^N turns a into the ordinary polynomial
// a[0] z^N + a[1] z^(N-1) + ... + a[N], whose roots are the poles.
//
// Closely clustered poles (high-order narrow bandpass designs) are located
// only approximately; use IsStable for the stability decision.
func Poles(a []float64) ([]complex128, error) {
	if len(a) == 0 || a[0] == 0 {
		return nil, fmt.Errorf("%w: denominator must have non-zero a[0]", ErrInvalidParameter)
	}

	roots, err := polyroot.Roots(a)
	if err != nil {
		return nil, fmt.Errorf("iir: pole search failed: %w", err)
	}

	return roots, nil
}

// IsStable reports whether every pole of a lies strictly inside the unit
// circle. It runs the Schur-Cohn step-down recursion on a and checks that all
// reflection coefficients have magnitude below one, which needs no root
// finding.
func IsStable(a []float64) bool {
	if len(a) == 0 || a[0] == 0 {
		return false
	}

	cur := make([]float64, len(a))
	for i, v := range a {
		if !core.IsFinite(v) {
			return false
		}
		cur[i] = v / a[0]
	}

	next := make([]float64, len(a))
	for m := len(cur) - 1; m > 0; m-- {
		k := cur[m]
		if math.Abs(k) >= 1 {
			return false
		}

		den := 1 - k*k
		for i := range m {
			next[i] = (cur[i] - k*cur[m-i]) / den
		}

		cur, next = next[:m], cur
	}

	return true
}
