package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1, 48)
	require.Len(t, s, 48)
	assert.InDelta(t, 0, s[0], 1e-15)
	assert.InDelta(t, 1, s[12], 1e-12, "quarter period")
}

func TestMultiTone(t *testing.T) {
	got := MultiTone(100, 0.5, 50, 2, 6)
	a := DeterministicSine(2, 100, 0.5, 50)
	b := DeterministicSine(6, 100, 0.5, 50)
	for i := range got {
		assert.InDeltaf(t, a[i]+b[i], got[i], 1e-15, "index %d", i)
	}

	assert.Equal(t, []float64{0, 0, 0, 0}, MultiTone(100, 1, 4))
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1, 64)
	assert.Equal(t, a, DeterministicNoise(42, 1, 64))
	assert.NotEqual(t, a, DeterministicNoise(43, 1, 64))
	for i, v := range a {
		assert.LessOrEqualf(t, v, 1.0, "a[%d]", i)
		assert.GreaterOrEqualf(t, v, -1.0, "a[%d]", i)
	}
}

func TestImpulse(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 0, 1, 0}, Impulse(5, 3))
	assert.Equal(t, []float64{0, 0, 0, 0}, Impulse(4, 10))
	assert.Equal(t, []float64{0, 0}, Impulse(2, -1))
}

func TestOnes(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 1}, Ones(3))
	assert.Empty(t, Ones(0))
}
