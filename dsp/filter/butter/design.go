package butter

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-iir/dsp/core"
	"github.com/cwbudde/algo-iir/dsp/filter/iir"
)

// Coefficients is a designed Butterworth filter in transfer-function form.
// B and A are in ascending powers of z^-1 with A[0] == 1. A value returned by
// Design is never modified by this package; callers should treat the slices
// as read-only.
type Coefficients struct {
	B []float64
	A []float64

	Band       Band
	Order      int
	SampleRate float64
	LowCut     float64 // zero unless Band is Highpass or Bandpass
	HighCut    float64 // zero unless Band is Lowpass or Bandpass
}

// Design computes a digital Butterworth filter for signals sampled at
// sampleRate Hz. At least one of WithLowCut / WithHighCut must be given; the
// order defaults to DefaultOrder.
//
// Invalid parameters yield a *ParamError wrapping ErrInvalidParameter. A
// design whose coefficients overflow yields ErrNumericalInstability.
func Design(sampleRate float64, opts ...Option) (Coefficients, error) {
	cfg := applyOptions(opts)

	band, err := validate(sampleRate, cfg)
	if err != nil {
		return Coefficients{}, err
	}

	zpk, err := designZPK(sampleRate, band, cfg)
	if err != nil {
		return Coefficients{}, err
	}

	b, a := zpk.transfer()
	for i := range b {
		if !core.IsFinite(b[i]) || !core.IsFinite(a[i]) {
			return Coefficients{}, fmt.Errorf("%w: coefficient %d is not finite (order %d)", ErrNumericalInstability, i, cfg.order)
		}
	}

	a0 := a[0]
	if a0 != 1 {
		for i := range a {
			b[i] /= a0
			a[i] /= a0
		}
	}

	c := Coefficients{
		B:          b,
		A:          a,
		Band:       band,
		Order:      cfg.order,
		SampleRate: sampleRate,
	}

	if cfg.hasLow {
		c.LowCut = cfg.lowCut
	}

	if cfg.hasHigh {
		c.HighCut = cfg.highCut
	}

	return c, nil
}

// Params is a validated parameter set. Cutoffs that Band does not use are
// zero.
type Params struct {
	SampleRate float64
	Band       Band
	Order      int
	LowCut     float64
	HighCut    float64
}

// Resolve applies opts and validates them exactly as Design does, without
// computing coefficients.
func Resolve(sampleRate float64, opts ...Option) (Params, error) {
	cfg := applyOptions(opts)

	band, err := validate(sampleRate, cfg)
	if err != nil {
		return Params{}, err
	}

	p := Params{SampleRate: sampleRate, Band: band, Order: cfg.order}
	if cfg.hasLow {
		p.LowCut = cfg.lowCut
	}

	if cfg.hasHigh {
		p.HighCut = cfg.highCut
	}

	return p, nil
}

// Options returns options that reproduce p.
func (p Params) Options() []Option {
	opts := []Option{WithOrder(p.Order)}
	if p.Band == Highpass || p.Band == Bandpass {
		opts = append(opts, WithLowCut(p.LowCut))
	}

	if p.Band == Lowpass || p.Band == Bandpass {
		opts = append(opts, WithHighCut(p.HighCut))
	}

	return opts
}

// DesignZPK is like Design but returns the digital zeros, poles and gain
// instead of expanded polynomials.
func DesignZPK(sampleRate float64, opts ...Option) (ZPK, error) {
	cfg := applyOptions(opts)

	band, err := validate(sampleRate, cfg)
	if err != nil {
		return ZPK{}, err
	}

	return designZPK(sampleRate, band, cfg)
}

func designZPK(sampleRate float64, band Band, cfg config) (ZPK, error) {
	nyquist := core.Nyquist(sampleRate)
	proto := analogPrototype(cfg.order)

	var analog ZPK

	switch band {
	case Lowpass:
		analog = proto.toLowpass(prewarp(cfg.highCut / nyquist))
	case Highpass:
		analog = proto.toHighpass(prewarp(cfg.lowCut / nyquist))
	case Bandpass:
		lo := prewarp(cfg.lowCut / nyquist)
		hi := prewarp(cfg.highCut / nyquist)
		analog = proto.toBandpass(math.Sqrt(lo*hi), hi-lo)
	}

	digital := analog.bilinear(bilinearRate)
	if !digital.finite() {
		return ZPK{}, fmt.Errorf("%w: %s design of order %d produced non-finite roots", ErrNumericalInstability, band, cfg.order)
	}

	return digital, nil
}

func validate(sampleRate float64, cfg config) (Band, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return 0, paramErr("fs", sampleRate, "sampling frequency must be > 0")
	}

	if cfg.order < 1 {
		return 0, paramErr("order", float64(cfg.order), "order must be >= 1")
	}

	band, ok := bandFor(cfg.hasLow, cfg.hasHigh)
	if !ok {
		return 0, paramErr("lowcut/highcut", 0, "at least one cutoff must be supplied")
	}

	nyquist := core.Nyquist(sampleRate)

	if cfg.hasLow {
		if err := validateCutoff("lowcut", cfg.lowCut, nyquist); err != nil {
			return 0, err
		}
	}

	if cfg.hasHigh {
		if err := validateCutoff("highcut", cfg.highCut, nyquist); err != nil {
			return 0, err
		}
	}

	if band == Bandpass && cfg.lowCut >= cfg.highCut {
		return 0, paramErr("lowcut", cfg.lowCut, fmt.Sprintf("must be below highcut %v", cfg.highCut))
	}

	return band, nil
}

func validateCutoff(name string, hz, nyquist float64) error {
	if !core.IsFinite(hz) || hz <= 0 || hz >= nyquist {
		return paramErr(name, hz, fmt.Sprintf("cutoff must be in (0, %v) (Nyquist)", nyquist))
	}

	return nil
}

// Apply runs the filter over signal with zero initial conditions and returns
// a new slice of the same length.
func (c Coefficients) Apply(signal []float64) ([]float64, error) {
	y, err := iir.Apply(c.B, c.A, signal)
	if err != nil {
		return nil, translate(err)
	}

	return y, nil
}

// Response returns the complex frequency response at freqHz.
func (c Coefficients) Response(freqHz float64) complex128 {
	return iir.Response(c.B, c.A, freqHz, c.SampleRate)
}

// MagnitudeDB returns the magnitude response in dB at freqHz.
func (c Coefficients) MagnitudeDB(freqHz float64) float64 {
	return iir.MagnitudeDB(c.B, c.A, freqHz, c.SampleRate)
}

// Poles returns the z-plane poles of the expanded denominator.
func (c Coefficients) Poles() ([]complex128, error) {
	p, err := iir.Poles(c.A)
	if err != nil {
		return nil, translate(err)
	}

	return p, nil
}

// Stable reports whether every pole of the expanded denominator lies inside
// the unit circle.
func (c Coefficients) Stable() bool {
	return iir.IsStable(c.A)
}

// Filter designs a Butterworth filter and applies it to signal in one step.
func Filter(signal []float64, sampleRate float64, opts ...Option) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("%w: signal must not be empty", ErrInvalidParameter)
	}

	c, err := Design(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	return c.Apply(signal)
}

// translate re-tags applicator errors with this package's error kinds while
// keeping the original chain.
func translate(err error) error {
	switch {
	case errors.Is(err, iir.ErrNumericalInstability):
		return fmt.Errorf("%w: %w", ErrNumericalInstability, err)
	case errors.Is(err, iir.ErrInvalidParameter):
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	default:
		return err
	}
}
