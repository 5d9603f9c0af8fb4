// Package coeffstore caches designed Butterworth coefficients so that a
// parameter set is designed once and reused.
package coeffstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-iir/dsp/filter/butter"
)

// ErrNotFound is returned by Get when the key has no entry.
var ErrNotFound = errors.New("coeffstore: not found")

// Key identifies a design by its validated parameters.
type Key butter.Params

// String renders the key in a stable form usable as a primary key.
func (k Key) String() string {
	return fmt.Sprintf("%s/fs=%g/order=%d/low=%g/high=%g", k.Band, k.SampleRate, k.Order, k.LowCut, k.HighCut)
}

// Store persists coefficients by key. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key Key) (butter.Coefficients, error)
	Put(ctx context.Context, key Key, c butter.Coefficients) error
}
