// Package dsp holds the signal primitives the synth needs beyond algo-dsp:
// a general direct-form IIR filter, the waveshaper curve and the looped
// noise generators.
package dsp

import (
	"errors"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// IIR implements a direct form I filter of arbitrary order (no heap
// allocations in Process).
type IIR struct {
	// Coefficients, normalized so that a[0] == 1
	b []float64
	a []float64

	// State (previous samples), newest first
	x []float64
	y []float64
}

// NewIIR creates a filter from feedforward (b) and feedback (a)
// coefficients. Both are normalized by a[0].
func NewIIR(feedforward, feedback []float64) (*IIR, error) {
	if len(feedforward) == 0 || len(feedback) == 0 {
		return nil, errors.New("iir needs at least one feedforward and one feedback coefficient")
	}
	a0 := feedback[0]
	if a0 == 0 {
		return nil, errors.New("iir feedback[0] must be non-zero")
	}
	f := &IIR{
		b: make([]float64, len(feedforward)),
		a: make([]float64, len(feedback)),
		x: make([]float64, len(feedforward)),
		y: make([]float64, len(feedback)),
	}
	for i, c := range feedforward {
		f.b[i] = c / a0
	}
	for i, c := range feedback {
		f.a[i] = c / a0
	}
	return f, nil
}

// Process processes one sample through the filter
func (f *IIR) Process(input float64) float64 {
	// Shift input history; x[0] is the current input.
	copy(f.x[1:], f.x[:len(f.x)-1])
	f.x[0] = input

	output := 0.0
	for i, c := range f.b {
		output += c * f.x[i]
	}
	// y[0] holds y[n-1] until it is shifted below.
	for i := 1; i < len(f.a); i++ {
		output -= f.a[i] * f.y[i-1]
	}
	output = core.FlushDenormals(output)

	copy(f.y[1:], f.y[:len(f.y)-1])
	f.y[0] = output
	return output
}

// Reset clears the filter state
func (f *IIR) Reset() {
	clear(f.x)
	clear(f.y)
}
