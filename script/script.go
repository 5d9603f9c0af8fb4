// Package script embeds the Butterworth filter in Starlark.
//
// The predeclared environment provides:
//
//	iir_filter(signal, fs, lowcut=None, highcut=None, order=None) - filtered list
//	butter(fs, lowcut=None, highcut=None, order=None)            - struct(b, a, band, order, stable)
//	tones(fs, n, freqs, amplitude=1.0)                           - sum of sines
//	peak(signal, fs)                                             - dominant frequency in Hz
//
// The same functions are available as members of the iir module.
package script

import (
	"context"
	"fmt"

	"github.com/golang/glog"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/cwbudde/algo-iir/dsp/filter/butter"
	"github.com/cwbudde/algo-iir/dsp/signal"
	"github.com/cwbudde/algo-iir/dsp/spectrum"
	"github.com/cwbudde/algo-iir/frame"
)

const contextKey = "context"

// Host runs scripts against a designer.
type Host struct {
	// Designer defaults to butter.Design.
	Designer frame.Designer
	// Print receives print() output. It defaults to glog.
	Print func(msg string)
}

// Predeclared returns the script environment.
func (h *Host) Predeclared() starlark.StringDict {
	members := starlark.StringDict{
		"iir_filter": starlark.NewBuiltin("iir_filter", h.iirFilter),
		"butter":     starlark.NewBuiltin("butter", h.butter),
		"tones":      starlark.NewBuiltin("tones", tones),
		"peak":       starlark.NewBuiltin("peak", peak),
	}

	env := starlark.StringDict{
		"iir": &starlarkstruct.Module{Name: "iir", Members: members},
	}
	for k, v := range members {
		env[k] = v
	}
	return env
}

// ExecFile runs a script and returns its global bindings. Cancelling ctx
// stops execution.
func (h *Host) ExecFile(ctx context.Context, filename string, src any) (starlark.StringDict, error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			if h.Print != nil {
				h.Print(msg)
				return
			}
			glog.Infof("%s: %s", filename, msg)
		},
	}
	thread.SetLocal(contextKey, ctx)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	return starlark.ExecFile(thread, filename, src, h.Predeclared())
}

func (h *Host) designer() frame.Designer {
	if h.Designer == nil {
		return frame.DesignFunc(butter.Design)
	}
	return h.Designer
}

func threadContext(thread *starlark.Thread) context.Context {
	if ctx, ok := thread.Local(contextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

type designArgs struct {
	fs      float64
	lowcut  starlark.Value
	highcut starlark.Value
	order   starlark.Value
}

func (d designArgs) options(fnName string) ([]butter.Option, error) {
	var opts []butter.Option
	if d.lowcut != nil && d.lowcut != starlark.None {
		v, err := toFloat(fnName, "lowcut", d.lowcut)
		if err != nil {
			return nil, err
		}
		opts = append(opts, butter.WithLowCut(v))
	}
	if d.highcut != nil && d.highcut != starlark.None {
		v, err := toFloat(fnName, "highcut", d.highcut)
		if err != nil {
			return nil, err
		}
		opts = append(opts, butter.WithHighCut(v))
	}
	if d.order != nil && d.order != starlark.None {
		n, err := starlark.AsInt32(d.order)
		if err != nil {
			return nil, fmt.Errorf("%s: order: %w", fnName, err)
		}
		opts = append(opts, butter.WithOrder(n))
	}
	return opts, nil
}

func (h *Host) iirFilter(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		sig, fs starlark.Value
		d       designArgs
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"signal", &sig, "fs", &fs, "lowcut?", &d.lowcut, "highcut?", &d.highcut, "order?", &d.order); err != nil {
		return nil, err
	}

	x, err := toFloats(b.Name(), sig)
	if err != nil {
		return nil, err
	}
	if d.fs, err = toFloat(b.Name(), "fs", fs); err != nil {
		return nil, err
	}
	opts, err := d.options(b.Name())
	if err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("%s: %w: signal must not be empty", b.Name(), butter.ErrInvalidParameter)
	}

	coeffs, err := h.designer().Design(threadContext(thread), d.fs, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	y, err := coeffs.Apply(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return fromFloats(y), nil
}

func (h *Host) butter(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		fs starlark.Value
		d  designArgs
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"fs", &fs, "lowcut?", &d.lowcut, "highcut?", &d.highcut, "order?", &d.order); err != nil {
		return nil, err
	}

	var err error
	if d.fs, err = toFloat(b.Name(), "fs", fs); err != nil {
		return nil, err
	}
	opts, err := d.options(b.Name())
	if err != nil {
		return nil, err
	}

	coeffs, err := h.designer().Design(threadContext(thread), d.fs, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}

	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"b":      fromFloats(coeffs.B),
		"a":      fromFloats(coeffs.A),
		"band":   starlark.String(coeffs.Band.String()),
		"order":  starlark.MakeInt(coeffs.Order),
		"stable": starlark.Bool(coeffs.Stable()),
	}), nil
}

func tones(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		fs, freqs starlark.Value
		n         int
		amplitude starlark.Value = starlark.Float(1)
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"fs", &fs, "n", &n, "freqs", &freqs, "amplitude?", &amplitude); err != nil {
		return nil, err
	}

	rate, err := toFloat(b.Name(), "fs", fs)
	if err != nil {
		return nil, err
	}
	amp, err := toFloat(b.Name(), "amplitude", amplitude)
	if err != nil {
		return nil, err
	}
	fl, err := toFloats(b.Name(), freqs)
	if err != nil {
		return nil, err
	}

	g, err := signal.NewGenerator(rate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	x, err := g.Tones(amp, n, fl...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return fromFloats(x), nil
}

func peak(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var sig, fs starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "signal", &sig, "fs", &fs); err != nil {
		return nil, err
	}

	x, err := toFloats(b.Name(), sig)
	if err != nil {
		return nil, err
	}
	rate, err := toFloat(b.Name(), "fs", fs)
	if err != nil {
		return nil, err
	}

	f, err := spectrum.DominantFrequency(x, rate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.Float(f), nil
}
