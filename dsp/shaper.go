package dsp

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// CurveSize is the resolution of the waveshaping table. It does not depend
// on the sample rate.
const CurveSize = 44100

// Curve returns the distortion transfer curve for amount, sampled at n
// points over [-1, 1]. Larger amounts give a sharper knee.
func Curve(amount float64, n int) []float64 {
	const deg = math.Pi / 180
	curve := make([]float64, n)
	for i := range curve {
		x := float64(i)*2/float64(n) - 1
		curve[i] = ((3 + amount) * x * 20 * deg) / (math.Pi + amount*math.Abs(x))
	}
	return curve
}

// Shaper applies a transfer curve, optionally oversampled to reduce
// aliasing.
type Shaper struct {
	curve  []float64
	factor int

	prev float64
	up   *biquad.Chain
	down *biquad.Chain
}

// NewShaper creates a waveshaper for curve running at sampleRate with the
// given oversampling factor (1, 2 or 4).
func NewShaper(curve []float64, factor int, sampleRate float64) *Shaper {
	if factor < 1 {
		factor = 1
	}
	s := &Shaper{curve: curve, factor: factor}
	if factor > 1 {
		rate := sampleRate * float64(factor)
		cutoff := 0.45 * sampleRate
		s.up = biquad.NewChain(design.ButterworthLP(cutoff, 4, rate))
		s.down = biquad.NewChain(design.ButterworthLP(cutoff, 4, rate))
	}
	return s
}

// Lookup maps x through the curve with linear interpolation. Inputs
// outside [-1, 1] use the end points.
func (s *Shaper) Lookup(x float64) float64 {
	n := len(s.curve)
	if n == 0 {
		return x
	}
	v := (x + 1) * float64(n-1) / 2
	switch {
	case v <= 0:
		return s.curve[0]
	case v >= float64(n-1):
		return s.curve[n-1]
	}
	i := int(v)
	frac := v - float64(i)
	return s.curve[i] + frac*(s.curve[i+1]-s.curve[i])
}

// Process shapes one sample.
func (s *Shaper) Process(x float64) float64 {
	if s.factor == 1 {
		return s.Lookup(x)
	}
	// Linear upsampling between the previous and current input, shaped and
	// band-limited at the oversampled rate, then decimated.
	var out float64
	for k := 1; k <= s.factor; k++ {
		t := float64(k) / float64(s.factor)
		u := s.up.ProcessSample(s.prev + t*(x-s.prev))
		out = s.down.ProcessSample(s.Lookup(u))
	}
	s.prev = x
	return out
}

func (s *Shaper) Reset() {
	s.prev = 0
	if s.up != nil {
		s.up.Reset()
		s.down.Reset()
	}
}
