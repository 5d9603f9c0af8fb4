package stats

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-iir/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureEmpty(t *testing.T) {
	assert.Equal(t, Level{}, Measure(nil))
	assert.True(t, math.IsInf(Level{}.RMSdB(), -1))
}

func TestMeasureSquareWave(t *testing.T) {
	lvl := Measure([]float64{1, -1, 1, -1})

	assert.Equal(t, 4, lvl.Length)
	assert.InDelta(t, 0, lvl.DC, 1e-15)
	assert.InDelta(t, 1, lvl.RMS, 1e-15)
	assert.InDelta(t, 1, lvl.Peak, 0)
	assert.InDelta(t, 1, lvl.CrestFactor, 1e-15)
	assert.Equal(t, 3, lvl.ZeroCrossings)
	assert.InDelta(t, 0, lvl.RMSdB(), 1e-12)
}

func TestMeasureNegativePeak(t *testing.T) {
	lvl := Measure([]float64{0.25, -0.5, 0.1})

	assert.InDelta(t, 0.5, lvl.Peak, 0)
	assert.Equal(t, 1, lvl.PeakPos)
	assert.InDelta(t, -6.0206, lvl.PeakdB(), 1e-4)
}

func TestMeasureSine(t *testing.T) {
	sig := testutil.DeterministicSine(10, 1000, 0.5, 1000)
	lvl := Measure(sig)

	assert.InDelta(t, 0.5/math.Sqrt2, lvl.RMS, 1e-9)
	assert.InDelta(t, math.Sqrt2, lvl.CrestFactor, 1e-3)
	assert.InDelta(t, 0, lvl.DC, 1e-9)
}

func TestMeasureSilence(t *testing.T) {
	lvl := Measure(make([]float64, 8))
	assert.Zero(t, lvl.CrestFactor)
	assert.Zero(t, lvl.ZeroCrossings)
}

func TestGainDB(t *testing.T) {
	in := []float64{1, -1, 1, -1}
	out := []float64{0.5, -0.5, 0.5, -0.5}

	require.InDelta(t, -6.0206, GainDB(in, out), 1e-4)
	assert.InDelta(t, 0, GainDB(in, in), 1e-12)
}
