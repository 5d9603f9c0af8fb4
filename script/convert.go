package script

import (
	"fmt"

	"go.starlark.net/starlark"
)

func toFloat(fnName, param string, v starlark.Value) (float64, error) {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s: %s: got %s, want number", fnName, param, v.Type())
	}
	return f, nil
}

// toFloats converts any iterable of numbers to a slice.
func toFloats(fnName string, v starlark.Value) ([]float64, error) {
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("%s: got %s, want list of numbers", fnName, v.Type())
	}

	var out []float64
	if seq, ok := v.(starlark.Sequence); ok {
		out = make([]float64, 0, seq.Len())
	}

	iter := iterable.Iterate()
	defer iter.Done()

	var x starlark.Value
	for i := 0; iter.Next(&x); i++ {
		f, ok := starlark.AsFloat(x)
		if !ok {
			return nil, fmt.Errorf("%s: element %d: got %s, want number", fnName, i, x.Type())
		}
		out = append(out, f)
	}
	return out, nil
}

func fromFloats(x []float64) *starlark.List {
	elems := make([]starlark.Value, len(x))
	for i, v := range x {
		elems[i] = starlark.Float(v)
	}
	return starlark.NewList(elems)
}
