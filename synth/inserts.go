package synth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/effects"
	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"

	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/dsp"
)

// coefficientInterval is how often (in samples) a modulated biquad
// recomputes its coefficients.
const coefficientInterval = 32

const minFilterFreq = 10.0

// filterStage is the mono filter insert: a designed biquad or a general
// IIR.
type filterStage struct {
	biquad *biquad.Section
	iir    *dsp.IIR

	kind       blueprint.FilterKind
	freq, q    float64
	gain       float64
	sampleRate float64
	countdown  int
}

func newFilterStage(f blueprint.Filter, sampleRate int) (*filterStage, error) {
	st := &filterStage{sampleRate: float64(sampleRate)}
	switch v := f.(type) {
	case blueprint.Biquad:
		st.kind, st.freq, st.q, st.gain = v.Kind, v.Frequency, v.Q, v.Gain
		st.biquad = biquad.NewSection(st.design(0, 0))
	case blueprint.IIR:
		iir, err := dsp.NewIIR(v.Feedforward, v.Feedback)
		if err != nil {
			return nil, err
		}
		st.iir = iir
	default:
		return nil, fmt.Errorf("unsupported filter %T", f)
	}
	return st, nil
}

// design computes coefficients with the LFO offsets applied. The
// frequency is kept inside (minFilterFreq, nyquist) because the designers
// return zero coefficients outside it.
func (st *filterStage) design(freqOffset, qOffset float64) biquad.Coefficients {
	freq := core.Clamp(st.freq+freqOffset, minFilterFreq, 0.49*st.sampleRate)
	q := math.Max(st.q+qOffset, 1e-4)
	sr := st.sampleRate
	switch st.kind {
	case blueprint.Highpass:
		return design.Highpass(freq, q, sr)
	case blueprint.Bandpass:
		return design.Bandpass(freq, q, sr)
	case blueprint.Peaking:
		return design.Peak(freq, st.gain, q, sr)
	case blueprint.Lowshelf:
		return design.LowShelf(freq, st.gain, q, sr)
	case blueprint.Highshelf:
		return design.HighShelf(freq, st.gain, q, sr)
	case blueprint.Notch:
		return design.Notch(freq, q, sr)
	case blueprint.Allpass:
		return design.Allpass(freq, q, sr)
	default:
		return design.Lowpass(freq, q, sr)
	}
}

// modulate refreshes the biquad coefficients every coefficientInterval
// samples. IIR filters have no modulatable parameters.
func (st *filterStage) modulate(freqOffset, qOffset float64) {
	if st.biquad == nil {
		return
	}
	if st.countdown > 0 {
		st.countdown--
		return
	}
	st.countdown = coefficientInterval - 1
	st.biquad.Coefficients = st.design(freqOffset, qOffset)
}

func (st *filterStage) process(x float64) float64 {
	if st.biquad != nil {
		return core.FlushDenormals(st.biquad.ProcessSample(x))
	}
	return st.iir.Process(x)
}

// panStage turns the mono chain into stereo. Positional panners pass the
// signal through unchanged.
type panStage struct {
	pan        float64
	positional bool
}

func newPanStage(p blueprint.Panner) (*panStage, error) {
	switch v := p.(type) {
	case blueprint.StereoPanner:
		return &panStage{pan: v.Pan}, nil
	case blueprint.PositionalPanner:
		return &panStage{positional: true}, nil
	}
	return nil, fmt.Errorf("unsupported panner %T", p)
}

// process applies an equal-power pan law.
func (st *panStage) process(x, panOffset float64) (float64, float64) {
	if st.positional {
		return x, x
	}
	pan := core.Clamp(st.pan+panOffset, -1, 1)
	angle := (pan + 1) * math.Pi / 4
	return x * math.Cos(angle), x * math.Sin(angle)
}

// compStage runs one algo-dsp compressor per channel.
type compStage struct {
	left, right *effects.Compressor
}

// Ranges accepted by the algo-dsp compressor.
const (
	maxCompKneeDB    = 24.0
	minCompAttackMs  = 0.1
	minCompReleaseMs = 1.0
)

func newCompStage(c blueprint.Compressor, sampleRate int) (*compStage, error) {
	left, err := newCompressor(c, sampleRate)
	if err != nil {
		return nil, err
	}
	right, err := newCompressor(c, sampleRate)
	if err != nil {
		return nil, err
	}
	return &compStage{left: left, right: right}, nil
}

func newCompressor(c blueprint.Compressor, sampleRate int) (*effects.Compressor, error) {
	comp, err := effects.NewCompressor(float64(sampleRate))
	if err != nil {
		return nil, err
	}
	steps := []struct {
		name string
		set  func() error
	}{
		{"threshold", func() error { return comp.SetThreshold(c.Threshold) }},
		{"ratio", func() error { return comp.SetRatio(core.Clamp(c.Ratio, 1, 100)) }},
		{"knee", func() error { return comp.SetKnee(core.Clamp(c.Knee, 0, maxCompKneeDB)) }},
		{"attack", func() error { return comp.SetAttack(math.Max(c.Attack*1000, minCompAttackMs)) }},
		{"release", func() error { return comp.SetRelease(math.Max(c.Release*1000, minCompReleaseMs)) }},
	}
	for _, s := range steps {
		if err := s.set(); err != nil {
			return nil, fmt.Errorf("compressor %s: %w", s.name, err)
		}
	}
	return comp, nil
}

func (st *compStage) process(l, r float64) (float64, float64) {
	return st.left.ProcessSample(l), st.right.ProcessSample(r)
}

// envelope is the four-point linear amplitude ramp. Times are in frames
// relative to the voice start.
type envelope struct {
	attack, decay int
	sustain       float64
	releaseStart  int
	end           int
}

func newEnvelope(e blueprint.Envelope, duration float64, sampleRate int) envelope {
	sr := float64(sampleRate)
	end := int(math.Round(duration * sr))
	relStart := int(math.Round((duration - e.Release) * sr))
	if relStart < 0 {
		relStart = 0
	}
	return envelope{
		attack:       int(math.Round(e.Attack * sr)),
		decay:        int(math.Round(e.Decay * sr)),
		sustain:      e.Sustain,
		releaseStart: relStart,
		end:          end,
	}
}

// at returns the gain at frame n. The sustain level is set at the release
// start and ramps to zero at the end.
func (e envelope) at(n int) float64 {
	switch {
	case n < 0 || n >= e.end:
		return 0
	case n >= e.releaseStart:
		span := e.end - e.releaseStart
		if span <= 0 {
			return 0
		}
		return e.sustain * float64(e.end-n) / float64(span)
	case n < e.attack:
		return float64(n) / float64(e.attack)
	case n < e.attack+e.decay:
		t := float64(n-e.attack) / float64(e.decay)
		return 1 + (e.sustain-1)*t
	}
	return e.sustain
}
