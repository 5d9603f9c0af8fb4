// Package polyroot converts between polynomial coefficients and roots for the
// filter design and stability code.
package polyroot

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrDegeneratePolynomial is returned for an all-zero polynomial or when the
// eigenvalue solver does not converge.
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// FromRoots expands prod(z - r) into monic coefficients in descending power
// order. No roots gives the constant polynomial 1.
func FromRoots(roots []complex128) []complex128 {
	p := make([]complex128, 1, len(roots)+1)
	p[0] = 1
	for _, r := range roots {
		// p(z) * (z - r)
		p = append(p, 0)
		for i := len(p) - 1; i > 0; i-- {
			p[i] -= r * p[i-1]
		}
	}
	return p
}

// RealFromRoots expands a root set closed under conjugation into real
// coefficients in descending power order. Rounding residue in the imaginary
// parts is dropped.
func RealFromRoots(roots []complex128) []float64 {
	c := FromRoots(roots)
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}

// Roots returns every root of the real polynomial coeff, given in descending
// power order, as the eigenvalues of its companion matrix. Leading zeros are
// skipped and trailing zeros become roots at the origin.
func Roots(coeff []float64) ([]complex128, error) {
	lead := 0
	for lead < len(coeff) && coeff[lead] == 0 {
		lead++
	}
	if lead == len(coeff) {
		return nil, ErrDegeneratePolynomial
	}

	c := coeff[lead:]
	end := len(c)
	for end > 1 && c[end-1] == 0 {
		end--
	}
	origin := len(c) - end
	c = c[:end]

	var roots []complex128
	if n := len(c) - 1; n > 0 {
		comp := mat.NewDense(n, n, nil)
		for j := range n {
			comp.Set(0, j, -c[j+1]/c[0])
		}
		for i := 1; i < n; i++ {
			comp.Set(i, i-1, 1)
		}

		var eig mat.Eigen
		if !eig.Factorize(comp, mat.EigenNone) {
			return nil, ErrDegeneratePolynomial
		}
		roots = eig.Values(nil)
	}

	for range origin {
		roots = append(roots, 0)
	}
	return roots, nil
}
