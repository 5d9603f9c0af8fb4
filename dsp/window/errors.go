package window

import "errors"

var (
	errEmptyCoeffs      = errors.New("window: no coefficients")
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
	errMismatchedLength = errors.New("window: length mismatch")
	errUnknownType      = errors.New("window: unknown type")
)
