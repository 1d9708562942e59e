package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-approx"

	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/dsp"
)

// source produces one mono sample per call. freqOffset is the LFO
// contribution in Hz; noise ignores it.
type source interface {
	next(freqOffset float64) float64
}

type oscillator struct {
	waveform blueprint.Waveform
	freq     float64
	ratio    float64 // detune as a frequency ratio
	invRate  float64
	phase    float64 // [0,1)
}

func newOscillator(o blueprint.Oscillator, sampleRate int) *oscillator {
	return &oscillator{
		waveform: o.Waveform,
		freq:     o.Frequency,
		ratio:    centsToRatio(o.Detune),
		invRate:  1 / float64(sampleRate),
	}
}

func (o *oscillator) next(freqOffset float64) float64 {
	var y float64
	p := o.phase
	switch o.waveform {
	case blueprint.Square:
		if p < 0.5 {
			y = 1
		} else {
			y = -1
		}
	case blueprint.Sawtooth:
		y = 2*p - 1
	case blueprint.Triangle:
		switch {
		case p < 0.25:
			y = 4 * p
		case p < 0.75:
			y = 2 - 4*p
		default:
			y = 4*p - 4
		}
	default:
		angle := 2 * math.Pi * p
		if angle >= math.Pi {
			angle -= 2 * math.Pi
		}
		y = approx.FastSin(angle)
	}

	f := (o.freq + freqOffset) * o.ratio
	o.phase += f * o.invRate
	o.phase -= math.Floor(o.phase)
	return y
}

// noiseSource loops a pre-generated noise buffer.
type noiseSource struct {
	buf []float64
	pos int
}

func newNoiseSource(n blueprint.Noise, sampleRate int, rng *rand.Rand) *noiseSource {
	return &noiseSource{buf: dsp.NoiseBuffer(string(n.Color), sampleRate, rng)}
}

func (n *noiseSource) next(float64) float64 {
	if len(n.buf) == 0 {
		return 0
	}
	y := n.buf[n.pos]
	n.pos++
	if n.pos == len(n.buf) {
		n.pos = 0
	}
	return y
}

func newSource(s blueprint.Source, sampleRate int, rng *rand.Rand) (source, error) {
	switch v := s.(type) {
	case blueprint.Oscillator:
		return newOscillator(v, sampleRate), nil
	case blueprint.Noise:
		return newNoiseSource(v, sampleRate, rng), nil
	}
	return nil, fmt.Errorf("unsupported source %T", s)
}

func centsToRatio(cents float64) float64 {
	if cents == 0 {
		return 1
	}
	return approx.FastExp(cents / 1200 * math.Ln2)
}
