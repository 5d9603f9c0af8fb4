package butter_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-iir/dsp/filter/butter"
)

func ExampleDesign() {
	c, err := butter.Design(100, butter.WithHighCut(10), butter.WithOrder(2))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(c.Band, len(c.B), len(c.A))
	fmt.Printf("%.4f %.4f %.4f\n", c.B[0], c.B[1], c.B[2])
	fmt.Printf("%.2f dB at cutoff\n", c.MagnitudeDB(10))
	// Output:
	// lowpass 3 3
	// 0.0675 0.1349 0.0675
	// -3.01 dB at cutoff
}

func ExampleFilter() {
	signal := []float64{1, 0, 0, 0, 0}

	y, err := butter.Filter(signal, 100, butter.WithLowCut(3), butter.WithHighCut(10))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(len(y))
	// Output: 5
}

func ExampleParamError() {
	_, err := butter.Design(100, butter.WithHighCut(75))

	var pe *butter.ParamError
	if errors.As(err, &pe) {
		fmt.Println(pe.Param, errors.Is(err, butter.ErrInvalidParameter))
	}
	// Output: highcut true
}
