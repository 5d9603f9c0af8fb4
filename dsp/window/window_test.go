package window

import (
	"math"
	"strings"
	"testing"
)

func TestGenerate_SymmetricEndpoints(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman} {
		w := Generate(typ, 65)
		if len(w) != 65 {
			t.Fatalf("%s: len=%d", typ, len(w))
		}
		if math.Abs(w[0]-w[64]) > 1e-12 {
			t.Fatalf("%s: asymmetric endpoints %v %v", typ, w[0], w[64])
		}
		if math.Abs(w[32]-1) > 1e-9 {
			t.Fatalf("%s: centre=%v, want 1", typ, w[32])
		}
	}
}

func TestGenerate_KnownEdges(t *testing.T) {
	if w := Generate(TypeHann, 8); math.Abs(w[0]) > 1e-15 {
		t.Fatalf("hann edge=%v, want 0", w[0])
	}
	if w := Generate(TypeHamming, 8); math.Abs(w[0]-0.08) > 1e-12 {
		t.Fatalf("hamming edge=%v, want 0.08", w[0])
	}
	for _, v := range Generate(TypeRectangular, 5) {
		if v != 1 {
			t.Fatalf("rectangular coefficient %v", v)
		}
	}
}

func TestGenerate_Periodic(t *testing.T) {
	w := Generate(TypeHann, 8, WithPeriodic())
	if math.Abs(w[4]-1) > 1e-12 {
		t.Fatalf("periodic hann w[N/2]=%v, want 1", w[4])
	}
	if Generate(TypeHann, 0) != nil {
		t.Fatal("zero length should return nil")
	}
}

func TestApplyAndCoherentGain(t *testing.T) {
	want := Generate(TypeHann, 5)
	buf, err := ApplyCoefficients([]float64{2, 2, 2, 2, 2}, want)
	if err != nil {
		t.Fatal(err)
	}
	for i := range buf {
		if math.Abs(buf[i]-2*want[i]) > 1e-12 {
			t.Fatalf("index %d: %v, want %v", i, buf[i], 2*want[i])
		}
	}

	g, err := CoherentGain(Generate(TypeHann, 1024, WithPeriodic()))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(g-0.5) > 1e-12 {
		t.Fatalf("hann coherent gain=%v, want 0.5", g)
	}

	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}

	if _, err := ApplyCoefficients([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestParseType(t *testing.T) {
	for typ, s := range shapes {
		got, err := ParseType(" " + strings.ToUpper(s.name) + " ")
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q)=%v,%v", s.name, got, err)
		}
	}
	if got := Type(99).String(); got != "window(99)" {
		t.Fatalf("String()=%q", got)
	}
	if w := Generate(Type(99), 3); w[0] != 1 || w[2] != 1 {
		t.Fatalf("unknown type should be rectangular, got %v", w)
	}
	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error for unsupported window")
	}
}
