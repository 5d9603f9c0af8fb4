package audioio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-iir/frame"
	"github.com/cwbudde/algo-iir/internal/testutil"
)

func stereoFrame(t *testing.T, n int) *frame.Frame {
	t.Helper()
	fr := frame.New()
	require.NoError(t, fr.SetColumn("left", testutil.DeterministicSine(440, 8000, 0.5, n)))
	require.NoError(t, fr.SetColumn("right", testutil.DeterministicNoise(3, 0.25, n)))
	return fr
}

func TestWriteWAVThenDecode(t *testing.T) {
	for _, depth := range []int{16, 24, 32} {
		t.Run(fmt.Sprintf("%dbit", depth), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.wav")
			fr := stereoFrame(t, 800)

			require.NoError(t, WriteWAV(path, fr, []string{"left", "right"}, 8000, depth))

			a, err := Decode(path)
			require.NoError(t, err)
			assert.Equal(t, 8000, a.SampleRate)
			assert.Equal(t, depth, a.BitDepth)
			assert.Equal(t, []string{"ch0", "ch1"}, a.Frame.Names())
			assert.Equal(t, 800, a.Frame.Len())

			tol := 2 / fullScale(depth)
			for i, name := range []string{"left", "right"} {
				want, err := fr.Column(name)
				require.NoError(t, err)
				got, err := a.Frame.Column(ChannelName(i))
				require.NoError(t, err)
				for k := range want {
					require.InDelta(t, want[k], got[k], tol, "%s sample %d", name, k)
				}
			}
		})
	}
}

func TestWriteWAVClips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	fr := frame.New()
	require.NoError(t, fr.SetColumn("x", []float64{2, -2, 0.5}))

	require.NoError(t, WriteWAV(path, fr, []string{"x"}, 100, 16))

	a, err := Decode(path)
	require.NoError(t, err)
	got, err := a.Frame.Column("ch0")
	require.NoError(t, err)
	assert.InDelta(t, 1, got[0], 1e-4)
	assert.InDelta(t, -1, got[1], 1e-4)
	assert.InDelta(t, 0.5, got[2], 1e-4)
}

func TestWriteWAVErrors(t *testing.T) {
	dir := t.TempDir()
	fr := stereoFrame(t, 4)

	assert.Error(t, WriteWAV(filepath.Join(dir, "a.wav"), fr, nil, 8000, 16))
	assert.Error(t, WriteWAV(filepath.Join(dir, "b.wav"), fr, []string{"left"}, 8000, 12))
	assert.ErrorIs(t, WriteWAV(filepath.Join(dir, "c.wav"), fr, []string{"missing"}, 8000, 16), frame.ErrColumnNotFound)
}

func TestWAVSampleRate(t *testing.T) {
	sr, err := WAVSampleRate(44100)
	require.NoError(t, err)
	assert.Equal(t, 44100, sr)

	for _, hz := range []float64{44100.5, 99.9, 0, -8000, math.NaN(), math.Inf(1)} {
		_, err := WAVSampleRate(hz)
		assert.ErrorIsf(t, err, ErrInvalidSampleRate, "rate %v", hz)
	}

	f := frame.New()
	require.NoError(t, f.SetColumn("ch0", []float64{0}))
	err = WriteWAV(filepath.Join(t.TempDir(), "x.wav"), f, []string{"ch0"}, 0, 16)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	_, err := Decode("signal.flac")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "nope.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeGarbage(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"x.wav", "x.aiff", "x.ogg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("definitely not audio data"), 0o644))

		_, err := Decode(path)
		assert.Error(t, err, name)
	}
}

func TestDeinterleave(t *testing.T) {
	a, err := deinterleave([]float64{1, 10, 2, 20, 3, 30}, 2, 48000, 16)
	require.NoError(t, err)

	ch0, err := a.Frame.Column("ch0")
	require.NoError(t, err)
	ch1, err := a.Frame.Column("ch1")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, ch0)
	assert.Equal(t, []float64{10, 20, 30}, ch1)

	_, err = deinterleave(nil, 0, 48000, 16)
	assert.ErrorIs(t, err, ErrInvalidFile)
}
