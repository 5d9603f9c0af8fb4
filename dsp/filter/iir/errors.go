package iir

import "errors"

var (
	// ErrInvalidParameter reports coefficients or signals that cannot be
	// filtered (empty inputs, a[0] == 0, non-finite values).
	ErrInvalidParameter = errors.New("iir: invalid parameter")

	// ErrNumericalInstability reports a filter run whose output overflowed
	// to a non-finite value.
	ErrNumericalInstability = errors.New("iir: numerical instability")
)
