package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("frame: column not found")

	// ErrLengthMismatch is returned when a column's length differs from the
	// frame's row count.
	ErrLengthMismatch = errors.New("frame: column length mismatch")

	// ErrEmptyColumn is returned when a command is asked to filter a column
	// without rows.
	ErrEmptyColumn = errors.New("frame: empty column")
)

// Frame is an ordered set of named float64 columns. All columns have the same
// length. A Frame is not safe for concurrent mutation; concurrent reads are
// fine.
type Frame struct {
	names []string
	cols  map[string][]float64
}

// New returns an empty frame.
func New() *Frame {
	return &Frame{cols: map[string][]float64{}}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.names) == 0 {
		return 0
	}
	return len(f.cols[f.names[0]])
}

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	return append([]string(nil), f.names...)
}

// Column returns the named column. The returned slice is shared with the
// frame.
func (f *Frame) Column(name string) ([]float64, error) {
	col, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return col, nil
}

// SetColumn adds or replaces a column. Replacing keeps the column's position.
func (f *Frame) SetColumn(name string, data []float64) error {
	if n := len(f.names); n > 0 && len(data) != f.Len() {
		if _, replacing := f.cols[name]; !replacing || n > 1 {
			return fmt.Errorf("%w: %q has %d rows, frame has %d", ErrLengthMismatch, name, len(data), f.Len())
		}
	}

	if _, ok := f.cols[name]; !ok {
		f.names = append(f.names, name)
	}
	f.cols[name] = data
	return nil
}
