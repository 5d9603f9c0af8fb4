package spectrum

import (
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// planes is reusable storage for the split real and imaginary parts of a
// spectrum.
type planes struct {
	re, im []float64
}

var planePool = sync.Pool{
	New: func() any { return new(planes) },
}

// reduce splits bins into real and imaginary planes and hands them to a
// vecmath kernel that writes one real value per bin.
func reduce(bins []complex128, kernel func(dst, re, im []float64)) []float64 {
	if len(bins) == 0 {
		return nil
	}

	p := planePool.Get().(*planes)
	defer planePool.Put(p)

	n := len(bins)
	p.re = slices.Grow(p.re[:0], n)[:n]
	p.im = slices.Grow(p.im[:0], n)[:n]
	for i, c := range bins {
		p.re[i], p.im[i] = real(c), imag(c)
	}

	dst := make([]float64, n)
	kernel(dst, p.re, p.im)
	return dst
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(bins []complex128) []float64 {
	return reduce(bins, vecmath.Magnitude)
}

// Power returns |X[k]|^2 for each bin.
func Power(bins []complex128) []float64 {
	return reduce(bins, vecmath.Power)
}
