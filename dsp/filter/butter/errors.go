package butter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter reports design parameters outside their valid
	// range. Errors of this kind are returned as *ParamError.
	ErrInvalidParameter = errors.New("butter: invalid parameter")

	// ErrNumericalInstability reports a design or filter run that produced
	// non-finite values.
	ErrNumericalInstability = errors.New("butter: numerical instability")
)

// ParamError names the offending parameter and value of a rejected design.
type ParamError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("butter: invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidParameter) hold.
func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

func paramErr(param string, value float64, reason string) error {
	return &ParamError{Param: param, Value: value, Reason: reason}
}
