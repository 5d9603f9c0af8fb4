// Package stats summarizes the level of a time-domain signal, used to
// report how much energy a filter removed.
package stats

import (
	"math"

	"github.com/cwbudde/algo-iir/dsp/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Level holds time-domain level statistics of a signal.
type Level struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	Peak          float64 // max |x|
	PeakPos       int
	CrestFactor   float64 // peak / RMS, 0 for silence
	ZeroCrossings int
}

// RMSdB returns the RMS level in dBFS.
func (l Level) RMSdB() float64 { return core.LinearToDB(l.RMS) }

// PeakdB returns the peak level in dBFS.
func (l Level) PeakdB() float64 { return core.LinearToDB(l.Peak) }

// Measure computes the level of signal. An empty signal yields a zero Level.
func Measure(signal []float64) Level {
	n := len(signal)
	if n == 0 {
		return Level{}
	}

	lvl := Level{
		Length: n,
		DC:     stat.Mean(signal, nil),
		RMS:    floats.Norm(signal, 2) / math.Sqrt(float64(n)),
	}

	hi, lo := floats.MaxIdx(signal), floats.MinIdx(signal)
	if math.Abs(signal[lo]) > math.Abs(signal[hi]) {
		lvl.Peak, lvl.PeakPos = math.Abs(signal[lo]), lo
	} else {
		lvl.Peak, lvl.PeakPos = math.Abs(signal[hi]), hi
	}

	if lvl.RMS > 0 {
		lvl.CrestFactor = lvl.Peak / lvl.RMS
	}

	for i := 1; i < n; i++ {
		if signal[i-1]*signal[i] < 0 {
			lvl.ZeroCrossings++
		}
	}

	return lvl
}

// GainDB returns the RMS level change from in to out in dB. Silence on
// either side gives an infinite result.
func GainDB(in, out []float64) float64 {
	return Measure(out).RMSdB() - Measure(in).RMSdB()
}
