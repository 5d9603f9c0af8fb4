package iir

import (
	"fmt"

	"github.com/cwbudde/algo-iir/dsp/core"
)

// Apply filters x with the recursive filter (b, a) and returns a new slice of
// the same length. x is not modified.
func Apply(b, a, x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: signal must not be empty", ErrInvalidParameter)
	}

	out := make([]float64, len(x))
	if err := ApplyInto(out, b, a, x); err != nil {
		return nil, err
	}

	return out, nil
}

// ApplyInto filters x into dst, which must have the same length as x.
// dst and x may alias; on error the contents of dst are unspecified.
func ApplyInto(dst, b, a, x []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: signal must not be empty", ErrInvalidParameter)
	}

	if len(dst) != len(x) {
		return fmt.Errorf("%w: dst length %d != signal length %d", ErrInvalidParameter, len(dst), len(x))
	}

	if i := core.FirstNonFinite(x); i >= 0 {
		return fmt.Errorf("%w: x[%d] = %v", ErrInvalidParameter, i, x[i])
	}

	bn, an, err := normalize(b, a)
	if err != nil {
		return err
	}

	order := len(an) - 1
	if order == 0 {
		g := bn[0]
		for i, v := range x {
			dst[i] = g * v
		}

		return checkFinite(dst)
	}

	// Transposed direct form II: z[k] holds the partial sums for outputs
	// k+1 samples ahead.
	z := make([]float64, order)

	for i, v := range x {
		y := bn[0]*v + z[0]
		for k := 1; k < order; k++ {
			z[k-1] = bn[k]*v + z[k] - an[k]*y
		}
		z[order-1] = bn[order]*v - an[order]*y
		dst[i] = y
	}

	return checkFinite(dst)
}

// normalize validates (b, a), pads both to a common length and divides by
// a[0]. The returned slices are fresh copies.
func normalize(b, a []float64) ([]float64, []float64, error) {
	if len(a) == 0 {
		return nil, nil, fmt.Errorf("%w: denominator must not be empty", ErrInvalidParameter)
	}

	if len(b) == 0 {
		return nil, nil, fmt.Errorf("%w: numerator must not be empty", ErrInvalidParameter)
	}

	a0 := a[0]
	if a0 == 0 {
		return nil, nil, fmt.Errorf("%w: a[0] must be non-zero", ErrInvalidParameter)
	}

	n := max(len(b), len(a))
	bn := make([]float64, n)
	an := make([]float64, n)

	for i, v := range b {
		if !core.IsFinite(v) {
			return nil, nil, fmt.Errorf("%w: b[%d] = %v", ErrInvalidParameter, i, v)
		}
		bn[i] = v / a0
	}

	for i, v := range a {
		if !core.IsFinite(v) {
			return nil, nil, fmt.Errorf("%w: a[%d] = %v", ErrInvalidParameter, i, v)
		}
		an[i] = v / a0
	}

	return bn, an, nil
}

func checkFinite(y []float64) error {
	if i := core.FirstNonFinite(y); i >= 0 {
		return fmt.Errorf("%w: output[%d] = %v", ErrNumericalInstability, i, y[i])
	}

	return nil
}
