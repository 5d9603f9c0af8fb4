package spectrum

import "errors"

var (
	// ErrEmptyInput is returned when a signal has no samples.
	ErrEmptyInput = errors.New("spectrum: empty input")

	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("spectrum: invalid sample rate")

	// ErrInvalidRange is returned when a frequency range selects no bins.
	ErrInvalidRange = errors.New("spectrum: invalid frequency range")
)
