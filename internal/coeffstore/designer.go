package coeffstore

import (
	"context"
	"errors"

	"github.com/golang/glog"

	"github.com/cwbudde/algo-iir/dsp/filter/butter"
)

// Designer designs Butterworth filters through a Store: a cached design is
// returned as is, a missing one is designed and stored. Store failures are
// logged and never fail the design.
type Designer struct {
	Store Store
}

// Design mirrors butter.Design. Invalid parameters are rejected before the
// store is consulted.
func (d *Designer) Design(ctx context.Context, sampleRate float64, opts ...butter.Option) (butter.Coefficients, error) {
	p, err := butter.Resolve(sampleRate, opts...)
	if err != nil {
		return butter.Coefficients{}, err
	}

	key := Key(p)
	cached, err := d.Store.Get(ctx, key)
	switch {
	case err == nil:
		glog.V(2).Infof("coefficient cache hit: %s", key)
		return cached, nil
	case !errors.Is(err, ErrNotFound):
		glog.Warningf("coefficient cache read failed for %s: %s", key, err)
	}

	c, err := butter.Design(p.SampleRate, p.Options()...)
	if err != nil {
		return butter.Coefficients{}, err
	}

	if err := d.Store.Put(ctx, key, c); err != nil {
		glog.Warningf("coefficient cache write failed for %s: %s", key, err)
	}
	return c, nil
}
