package script

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"

	"github.com/cwbudde/algo-iir/dsp/filter/butter"
	"github.com/cwbudde/algo-iir/internal/coeffstore"
	"github.com/cwbudde/algo-iir/internal/testutil"
)

func run(t *testing.T, h *Host, src string) (starlark.StringDict, error) {
	t.Helper()
	return h.ExecFile(context.Background(), "test.star", src)
}

func floats(t *testing.T, v starlark.Value) []float64 {
	t.Helper()
	x, err := toFloats("test", v)
	require.NoError(t, err)
	return x
}

func TestIIRFilter(t *testing.T) {
	globals, err := run(t, &Host{}, `
x = tones(100, 200, [2, 6, 20])
y = iir_filter(x, 100, lowcut=3, highcut=10)
z = iir.iir_filter(x, fs=100.0, lowcut=3.0, highcut=10.0, order=4)
f = peak(y, 100)
`)
	require.NoError(t, err)

	x := testutil.MultiTone(100, 1, 200, 2, 6, 20)
	assert.InDeltaSlice(t, x, floats(t, globals["x"]), 1e-12)

	want, err := butter.Filter(x, 100, butter.WithLowCut(3), butter.WithHighCut(10))
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, floats(t, globals["y"]), 1e-12)
	assert.InDeltaSlice(t, want, floats(t, globals["z"]), 1e-12)

	f, ok := starlark.AsFloat(globals["f"])
	require.True(t, ok)
	assert.True(t, f >= 3 && f <= 10, "peak %v outside passband", f)
}

func TestButter(t *testing.T) {
	globals, err := run(t, &Host{}, `
c = butter(100, highcut=10, order=2)
b, a, band, stable = c.b, c.a, c.band, c.stable
`)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0.067455273889071896, 0.13491054777814379, 0.067455273889071896}, floats(t, globals["b"]), 1e-14)
	assert.InDeltaSlice(t, []float64{1, -1.1429805025399011, 0.41280159809618877}, floats(t, globals["a"]), 1e-14)
	assert.Equal(t, starlark.String("lowpass"), globals["band"])
	assert.Equal(t, starlark.True, globals["stable"])
}

func TestButterUsesDesigner(t *testing.T) {
	store := coeffstore.NewMemory()
	h := &Host{Designer: &coeffstore.Designer{Store: store}}

	_, err := run(t, h, `
a = butter(100, lowcut=3, highcut=10)
b = butter(100.0, lowcut=3, highcut=10, order=None)
`)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no cutoffs", `iir_filter([1, 2], 100)`, "invalid parameter"},
		{"zero order", `iir_filter([1, 2], 100, highcut=10, order=0)`, "order"},
		{"empty signal", `iir_filter([], 100, highcut=10)`, "signal must not be empty"},
		{"non-numeric element", `iir_filter([1, "a"], 100, highcut=10)`, "element 1"},
		{"non-list signal", `iir_filter(3, 100, highcut=10)`, "want list"},
		{"string fs", `butter("100", highcut=10)`, "fs"},
		{"divergent", `iir_filter([1] + [0] * 19999, 100, lowcut=1, highcut=2, order=12)`, "numerical instability"},
		{"missing fs", `butter(highcut=10)`, "missing argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, &Host{}, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPrint(t *testing.T) {
	var lines []string
	h := &Host{Print: func(msg string) { lines = append(lines, msg) }}

	_, err := run(t, h, `print("band", butter(100, lowcut=5).band)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"band highpass"}, lines)
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Host{}).ExecFile(ctx, "loop.star", `
def spin():
    for i in range(100000000):
        pass
spin()
`)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "cancel"), err.Error())
}
