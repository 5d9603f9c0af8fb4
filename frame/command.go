package frame

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-iir/dsp/filter/butter"
)

// OutputPrefix is prepended to the source column name to form the output
// column name.
const OutputPrefix = "filtered_"

// Designer produces filter coefficients. butter.Design wrapped by
// DesignFunc and the coefficient cache both satisfy it.
type Designer interface {
	Design(ctx context.Context, sampleRate float64, opts ...butter.Option) (butter.Coefficients, error)
}

// DesignFunc adapts a plain design function to Designer.
type DesignFunc func(sampleRate float64, opts ...butter.Option) (butter.Coefficients, error)

func (fn DesignFunc) Design(_ context.Context, sampleRate float64, opts ...butter.Option) (butter.Coefficients, error) {
	return fn(sampleRate, opts...)
}

// Command is the iir_filter operation: filter the Signal column with a
// Butterworth filter and store the result as filtered_<Signal>.
//
// Nil cutoffs are omitted; which of LowCut and HighCut are set selects the
// band. A nil Order uses butter.DefaultOrder, while an explicit zero is
// rejected.
type Command struct {
	Signal     string
	SampleRate float64
	LowCut     *float64
	HighCut    *float64
	Order      *int

	// Designer defaults to butter.Design.
	Designer Designer
	// Progress defaults to discarding events.
	Progress Progress
}

// Options converts the command's parameters to design options.
func (c Command) Options() []butter.Option {
	var opts []butter.Option
	if c.LowCut != nil {
		opts = append(opts, butter.WithLowCut(*c.LowCut))
	}
	if c.HighCut != nil {
		opts = append(opts, butter.WithHighCut(*c.HighCut))
	}
	if c.Order != nil {
		opts = append(opts, butter.WithOrder(*c.Order))
	}
	return opts
}

// OutputName returns the name of the column Run writes.
func (c Command) OutputName() string {
	return OutputPrefix + c.Signal
}

// Run filters the Signal column of f and adds the output column. The input
// column is left unchanged. It returns the job identifier used for progress
// reporting.
func (c Command) Run(ctx context.Context, f *Frame) (string, error) {
	jobID := uuid.NewString()
	progress := c.progress()
	progress.Start(jobID, "Start iir_filter command")

	y, err := c.filter(ctx, f)
	if err != nil {
		return jobID, err
	}

	if err := f.SetColumn(c.OutputName(), y); err != nil {
		return jobID, err
	}

	progress.Stage(jobID, "Filtering is complete", 1, 1)
	return jobID, nil
}

// Design returns the command's coefficients through its Designer, or a
// direct butter.Design when none is set.
func (c Command) Design(ctx context.Context) (butter.Coefficients, error) {
	designer := c.Designer
	if designer == nil {
		designer = DesignFunc(butter.Design)
	}
	return designer.Design(ctx, c.SampleRate, c.Options()...)
}

func (c Command) filter(ctx context.Context, f *Frame) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	col, err := f.Column(c.Signal)
	if err != nil {
		return nil, err
	}
	if len(col) == 0 {
		return nil, fmt.Errorf("%w: %w: %q", butter.ErrInvalidParameter, ErrEmptyColumn, c.Signal)
	}

	coeffs, err := c.Design(ctx)
	if err != nil {
		return nil, fmt.Errorf("iir_filter %q: %w", c.Signal, err)
	}

	y, err := coeffs.Apply(col)
	if err != nil {
		return nil, fmt.Errorf("iir_filter %q: %w", c.Signal, err)
	}
	return y, nil
}

func (c Command) progress() Progress {
	if c.Progress == nil {
		return noProgress{}
	}
	return c.Progress
}

// FilterColumns runs cmd over each named column concurrently, with
// cmd.Signal replaced by the column name. Each column is filtered
// independently; outputs are added to f in the order of columns once all
// of them have succeeded. On failure f is left unchanged and the first error
// in column order is returned.
func FilterColumns(ctx context.Context, f *Frame, cmd Command, columns ...string) (string, error) {
	jobID := uuid.NewString()
	progress := cmd.progress()
	progress.Start(jobID, fmt.Sprintf("Start iir_filter command on %d columns", len(columns)))

	outs := make([][]float64, len(columns))
	errs := make([]error, len(columns))

	var wg sync.WaitGroup
	for i, name := range columns {
		wg.Add(1)
		go func(i int, c Command) {
			defer wg.Done()
			outs[i], errs[i] = c.filter(ctx, f)
		}(i, withSignal(cmd, name))
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return jobID, err
		}
	}

	for i, name := range columns {
		if err := f.SetColumn(OutputPrefix+name, outs[i]); err != nil {
			return jobID, err
		}
		progress.Stage(jobID, fmt.Sprintf("Filtered column %q", name), i+1, len(columns))
	}
	return jobID, nil
}

func withSignal(c Command, name string) Command {
	c.Signal = name
	return c
}
