package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-iir/dsp/core"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair is within eps. An eps of 0 requires bit-identical values.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want), "length mismatch")
	for i := range got {
		if eps == 0 {
			require.Equalf(t, want[i], got[i], "index %d", i)
			continue
		}
		require.InDeltaf(t, want[i], got[i], eps, "index %d", i)
	}
}

// RequireFinite fails t at the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	if i := core.FirstNonFinite(data); i >= 0 {
		t.Fatalf("index %d: non-finite value %v", i, data[i])
	}
}

// RMS returns the root mean square of data, or 0 for an empty slice.
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Norm(data, 2) / math.Sqrt(float64(len(data)))
}
