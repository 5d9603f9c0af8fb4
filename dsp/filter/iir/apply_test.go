package iir

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-iir/internal/testutil"
)

// direct evaluates the difference equation literally, as a reference.
func direct(b, a, x []float64) []float64 {
	y := make([]float64, len(x))
	for n := range x {
		acc := 0.0
		for i := range b {
			if n-i >= 0 {
				acc += b[i] * x[n-i]
			}
		}
		for j := 1; j < len(a); j++ {
			if n-j >= 0 {
				acc -= a[j] * y[n-j]
			}
		}
		y[n] = acc / a[0]
	}
	return y
}

// Order-4 Butterworth lowpass at 10 Hz for fs = 100 Hz.
var (
	lp4B = []float64{
		0.0048243433577162282, 0.019297373430864913, 0.028946060146297369,
		0.019297373430864913, 0.0048243433577162282,
	}
	lp4A = []float64{1, -2.3695130071820376, 2.31398841441588, -1.0546654058785676, 0.18737949236818491}
)

func TestApply_MatchesDifferenceEquation(t *testing.T) {
	x := testutil.DeterministicNoise(7, 1, 512)

	tests := []struct {
		name string
		b, a []float64
	}{
		{"butterworth", lp4B, lp4A},
		{"fir only", []float64{0.25, 0.5, 0.25}, []float64{1}},
		{"longer numerator", []float64{1, -0.5, 0.25, 0.125}, []float64{1, -0.3}},
		{"longer denominator", []float64{0.5}, []float64{1, -0.5, 0.2, -0.05}},
		{"unnormalized", []float64{2, 1}, []float64{4, -1}},
		{"gain only", []float64{3}, []float64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.b, tt.a, x)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireSliceNearlyEqual(t, got, direct(tt.b, tt.a, x), 1e-12)
		})
	}
}

func TestApply_LengthPreserved(t *testing.T) {
	for _, n := range []int{1, 2, 100, 10000} {
		x := testutil.DeterministicSine(3, 100, 1, n)
		y, err := Apply(lp4B, lp4A, x)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(y) != n {
			t.Fatalf("n=%d: output length %d", n, len(y))
		}
	}
}

func TestApply_SingleSample(t *testing.T) {
	y, err := Apply(lp4B, lp4A, []float64{2})
	if err != nil {
		t.Fatal(err)
	}
	if y[0] != 2*lp4B[0] {
		t.Fatalf("y[0]=%v, want %v", y[0], 2*lp4B[0])
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 64)
	orig := append([]float64(nil), x...)
	b := append([]float64(nil), lp4B...)
	a := []float64{2, -1, 0.5}
	aOrig := append([]float64(nil), a...)

	if _, err := Apply(b, a, x); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
	testutil.RequireSliceNearlyEqual(t, a, aOrig, 0)
	testutil.RequireSliceNearlyEqual(t, b, lp4B, 0)
}

func TestApply_Deterministic(t *testing.T) {
	x := testutil.DeterministicNoise(11, 1, 4096)
	y1, err := Apply(lp4B, lp4A, x)
	if err != nil {
		t.Fatal(err)
	}
	y2, err := Apply(lp4B, lp4A, x)
	if err != nil {
		t.Fatal(err)
	}
	for i := range y1 {
		if y1[i] != y2[i] {
			t.Fatalf("index %d differs: %v vs %v", i, y1[i], y2[i])
		}
	}
}

func TestApply_DCSettlesToGain(t *testing.T) {
	y, err := Apply(lp4B, lp4A, testutil.Ones(2000))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(y[len(y)-1]-1) > 1e-9 {
		t.Fatalf("steady-state DC output %v, want 1", y[len(y)-1])
	}
}

func TestApplyInto_InPlace(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1, 256)
	want := direct(lp4B, lp4A, x)

	if err := ApplyInto(x, lp4B, lp4A, x); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, x, want, 1e-12)
}

func TestApply_InvalidParameters(t *testing.T) {
	x := []float64{1, 2, 3}
	tests := []struct {
		name    string
		b, a, x []float64
	}{
		{"empty a", []float64{1}, nil, x},
		{"zero a0", []float64{1}, []float64{0, 1}, x},
		{"empty b", nil, []float64{1}, x},
		{"empty signal", []float64{1}, []float64{1}, nil},
		{"nan coefficient", []float64{math.NaN()}, []float64{1}, x},
		{"inf denominator", []float64{1}, []float64{1, math.Inf(1)}, x},
		{"nan sample", []float64{1}, []float64{1, -0.5}, []float64{1, 0, math.NaN(), 0}},
		{"inf sample", lp4B, lp4A, []float64{math.Inf(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, err := Apply(tt.b, tt.a, tt.x)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err=%v, want ErrInvalidParameter", err)
			}
			if y != nil {
				t.Fatalf("expected no output on error, got %v", y)
			}
		})
	}

	if err := ApplyInto(make([]float64, 2), []float64{1}, []float64{1}, x); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("dst mismatch: err=%v, want ErrInvalidParameter", err)
	}
}

func TestApply_NonFiniteSampleNamesIndex(t *testing.T) {
	dst := []float64{7, 7, 7, 7}
	err := ApplyInto(dst, lp4B, lp4A, []float64{1, 0, math.NaN(), 0})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err=%v, want ErrInvalidParameter", err)
	}
	if errors.Is(err, ErrNumericalInstability) {
		t.Fatalf("err=%v must not report instability", err)
	}
	if !strings.Contains(err.Error(), "x[2] = NaN") {
		t.Fatalf("err=%q does not name the sample", err)
	}
	for i, v := range dst {
		if v != 7 {
			t.Fatalf("dst[%d]=%v written before validation", i, v)
		}
	}
}

func TestApply_UnstableOverflowIsReported(t *testing.T) {
	// Pole at z = 2: y[n] = x[n] + 2 y[n-1] doubles every sample.
	y, err := Apply([]float64{1}, []float64{1, -2}, testutil.Impulse(2000, 0))
	if !errors.Is(err, ErrNumericalInstability) {
		t.Fatalf("err=%v, want ErrNumericalInstability", err)
	}
	if y != nil {
		t.Fatal("expected no partial output")
	}
}
