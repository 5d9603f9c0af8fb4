package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ReadCSV parses a CSV table whose first row names the columns and whose
// remaining cells are numbers. Empty cells read as NaN.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("frame: csv has no header row")
		}
		return nil, fmt.Errorf("frame: reading csv header: %w", err)
	}
	names := append([]string(nil), header...)

	cols := make([][]float64, len(names))
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("frame: reading csv: %w", err)
		}
		for i, cell := range rec {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("frame: line %d column %q: %w", line, names[i], err)
			}
			cols[i] = append(cols[i], v)
		}
	}

	f := New()
	for i, name := range names {
		if cols[i] == nil {
			cols[i] = []float64{}
		}
		if err := f.SetColumn(name, cols[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteCSV writes the frame with a header row, formatting values with the
// shortest representation that round-trips.
func WriteCSV(w io.Writer, f *Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.names); err != nil {
		return fmt.Errorf("frame: writing csv header: %w", err)
	}

	rec := make([]string, len(f.names))
	for row := 0; row < f.Len(); row++ {
		for i, name := range f.names {
			rec[i] = strconv.FormatFloat(f.cols[name][row], 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("frame: writing csv row %d: %w", row, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func parseCell(cell string) (float64, error) {
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}
