package butter

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-iir/dsp/core"
	"github.com/cwbudde/algo-iir/internal/polyroot"
)

// bilinearRate is the sample rate the design is carried out at. Working at
// fs = 2 makes the normalised cutoffs (fractions of Nyquist) map directly
// onto the pre-warped analog frequencies 4*tan(pi*Wn/2).
const bilinearRate = 2.0

// ZPK is a filter in zero-pole-gain form.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// analogPrototype returns the order-n Butterworth lowpass prototype with unit
// cutoff: n poles -exp(j*pi*m/(2n)) for m = -n+1, -n+3, ..., n-1, no finite
// zeros and unit gain.
func analogPrototype(n int) ZPK {
	poles := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		theta := math.Pi * float64(m) / float64(2*n)
		poles = append(poles, -cmplx.Exp(complex(0, theta)))
	}

	return ZPK{Poles: poles, Gain: 1}
}

// prewarp maps a normalised digital frequency (fraction of Nyquist) onto the
// analog frequency that the bilinear transform sends back to it.
func prewarp(wn float64) float64 {
	return 2 * bilinearRate * math.Tan(math.Pi*wn/bilinearRate)
}

func (p ZPK) degree() int {
	return len(p.Poles) - len(p.Zeros)
}

// toLowpass scales the prototype cutoff to wo.
func (p ZPK) toLowpass(wo float64) ZPK {
	out := ZPK{
		Zeros: scaleAll(p.Zeros, complex(wo, 0)),
		Poles: scaleAll(p.Poles, complex(wo, 0)),
		Gain:  p.Gain * math.Pow(wo, float64(p.degree())),
	}

	return out
}

// toHighpass applies s -> wo/s. Zeros at infinity land at the origin.
func (p ZPK) toHighpass(wo float64) ZPK {
	deg := p.degree()
	w := complex(wo, 0)

	zeros := make([]complex128, 0, len(p.Zeros)+deg)
	for _, z := range p.Zeros {
		zeros = append(zeros, w/z)
	}

	for range deg {
		zeros = append(zeros, 0)
	}

	poles := make([]complex128, len(p.Poles))
	for i, q := range p.Poles {
		poles[i] = w / q
	}

	gain := p.Gain * real(product(negateAll(p.Zeros))/product(negateAll(p.Poles)))

	return ZPK{Zeros: zeros, Poles: poles, Gain: gain}
}

// toBandpass applies s -> (s^2 + wo^2) / (s*bw). Every root splits into two
// and deg zeros are placed at the origin.
func (p ZPK) toBandpass(wo, bw float64) ZPK {
	deg := p.degree()

	zeros := splitRoots(p.Zeros, wo, bw)
	for range deg {
		zeros = append(zeros, 0)
	}

	return ZPK{
		Zeros: zeros,
		Poles: splitRoots(p.Poles, wo, bw),
		Gain:  p.Gain * math.Pow(bw, float64(deg)),
	}
}

func splitRoots(roots []complex128, wo, bw float64) []complex128 {
	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	out := make([]complex128, 2*len(roots))
	for i, r := range roots {
		s := r * half
		d := cmplx.Sqrt(s*s - wo2)
		out[i] = s + d
		out[i+len(roots)] = s - d
	}

	return out
}

// bilinear maps the analog design to the z-plane with s = 2*fs*(z-1)/(z+1).
// Zeros at infinity map to z = -1 (Nyquist).
func (p ZPK) bilinear(fs float64) ZPK {
	deg := p.degree()
	fs2 := complex(2*fs, 0)

	zeros := make([]complex128, 0, len(p.Zeros)+deg)
	for _, z := range p.Zeros {
		zeros = append(zeros, (fs2+z)/(fs2-z))
	}

	for range deg {
		zeros = append(zeros, -1)
	}

	poles := make([]complex128, len(p.Poles))
	for i, q := range p.Poles {
		poles[i] = (fs2 + q) / (fs2 - q)
	}

	num := complex(1, 0)
	for _, z := range p.Zeros {
		num *= fs2 - z
	}

	den := complex(1, 0)
	for _, q := range p.Poles {
		den *= fs2 - q
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: p.Gain * real(num/den)}
}

// transfer expands the digital zeros and poles into b and a in ascending
// powers of z^-1. Zeros and poles have equal counts after the bilinear
// transform, so the descending-z and ascending-z^-1 orders coincide.
func (p ZPK) transfer() ([]float64, []float64) {
	b := polyroot.RealFromRoots(p.Zeros)
	for i := range b {
		b[i] *= p.Gain
	}

	a := polyroot.RealFromRoots(p.Poles)

	return b, a
}

func (p ZPK) finite() bool {
	if !core.IsFinite(p.Gain) {
		return false
	}

	for _, set := range [][]complex128{p.Zeros, p.Poles} {
		for _, v := range set {
			if cmplx.IsNaN(v) || cmplx.IsInf(v) {
				return false
			}
		}
	}

	return true
}

func scaleAll(roots []complex128, f complex128) []complex128 {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = r * f
	}

	return out
}

func negateAll(roots []complex128) []complex128 {
	return scaleAll(roots, -1)
}

func product(v []complex128) complex128 {
	p := complex(1, 0)
	for _, x := range v {
		p *= x
	}

	return p
}
