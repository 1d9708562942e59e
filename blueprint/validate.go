package blueprint

import (
	"errors"
	"fmt"
	"math"
)

// Parameter limits accepted by Validate.
const (
	MaxDelayTime   = 5.0
	MaxReverbDecay = 10.0
	MaxDuration    = 120.0
	MaxIIROrder    = 20
)

// ErrNoSources is returned for a blueprint without sources.
var ErrNoSources = errors.New("blueprint has no sources")

// Validate checks that every present part is within range. It reports the
// first violation.
func (b Blueprint) Validate() error {
	if len(b.Sources) == 0 {
		return ErrNoSources
	}
	for i, s := range b.Sources {
		if err := validateSource(s); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	if err := b.Envelope.Validate(); err != nil {
		return err
	}
	if !finite(b.Duration) || b.Duration <= 0 {
		return fmt.Errorf("duration must be > 0")
	}
	if b.Duration > MaxDuration {
		return fmt.Errorf("duration must be <= %g", MaxDuration)
	}
	if b.Filter != nil {
		if err := validateFilter(b.Filter); err != nil {
			return err
		}
	}
	if b.LFO != nil {
		if err := b.LFO.Validate(); err != nil {
			return err
		}
	}
	if d := b.Delay; d != nil {
		if !finite(d.Time) || d.Time < 0 || d.Time > MaxDelayTime {
			return fmt.Errorf("delay.time must be in [0,%g]", MaxDelayTime)
		}
		if !finite(d.Feedback) || d.Feedback < 0 || d.Feedback >= 1 {
			return fmt.Errorf("delay.feedback must be in [0,1)")
		}
		if !unit(d.Mix) {
			return fmt.Errorf("delay.mix must be in [0,1]")
		}
	}
	if r := b.Reverb; r != nil {
		if !finite(r.Decay) || r.Decay <= 0 || r.Decay > MaxReverbDecay {
			return fmt.Errorf("reverb.decay must be in (0,%g]", MaxReverbDecay)
		}
		if !unit(r.Mix) {
			return fmt.Errorf("reverb.mix must be in [0,1]")
		}
	}
	if d := b.Distortion; d != nil {
		if !finite(d.Amount) || d.Amount < 0 {
			return fmt.Errorf("distortion.amount must be >= 0")
		}
		if _, ok := ParseOversample(string(d.Oversample)); !ok {
			return fmt.Errorf("distortion.oversample %q is not none, 2x or 4x", d.Oversample)
		}
	}
	if b.Panner != nil {
		if err := validatePanner(b.Panner); err != nil {
			return err
		}
	}
	if c := b.Compressor; c != nil {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks envelope ranges.
func (e Envelope) Validate() error {
	if !finite(e.Attack) || e.Attack < 0 {
		return fmt.Errorf("envelope.attack must be >= 0")
	}
	if !finite(e.Decay) || e.Decay < 0 {
		return fmt.Errorf("envelope.decay must be >= 0")
	}
	if !unit(e.Sustain) {
		return fmt.Errorf("envelope.sustain must be in [0,1]")
	}
	if !finite(e.Release) || e.Release < 0 {
		return fmt.Errorf("envelope.release must be >= 0")
	}
	return nil
}

// Validate checks LFO ranges.
func (l LFO) Validate() error {
	if _, ok := ParseWaveform(string(l.Waveform)); !ok {
		return fmt.Errorf("lfo.waveform %q is not supported", l.Waveform)
	}
	if !finite(l.Rate) || l.Rate <= 0 {
		return fmt.Errorf("lfo.rate must be > 0")
	}
	if !finite(l.Depth) {
		return fmt.Errorf("lfo.depth must be finite")
	}
	if !l.Target.Valid() {
		return fmt.Errorf("lfo.target %q is not supported", l.Target)
	}
	return nil
}

// Validate checks compressor ranges.
func (c Compressor) Validate() error {
	if !finite(c.Threshold) || c.Threshold < -100 || c.Threshold > 0 {
		return fmt.Errorf("compressor.threshold must be in [-100,0]")
	}
	if !finite(c.Knee) || c.Knee < 0 || c.Knee > 40 {
		return fmt.Errorf("compressor.knee must be in [0,40]")
	}
	if !finite(c.Ratio) || c.Ratio < 1 || c.Ratio > 20 {
		return fmt.Errorf("compressor.ratio must be in [1,20]")
	}
	if !unit(c.Attack) {
		return fmt.Errorf("compressor.attack must be in [0,1]")
	}
	if !unit(c.Release) {
		return fmt.Errorf("compressor.release must be in [0,1]")
	}
	return nil
}

func validateSource(s Source) error {
	switch s := s.(type) {
	case Oscillator:
		if _, ok := ParseWaveform(string(s.Waveform)); !ok {
			return fmt.Errorf("oscillator waveform %q is not supported", s.Waveform)
		}
		if !finite(s.Frequency) || s.Frequency <= 0 {
			return fmt.Errorf("oscillator frequency must be > 0")
		}
		if !finite(s.Detune) {
			return fmt.Errorf("oscillator detune must be finite")
		}
	case Noise:
		if _, ok := ParseNoiseColor(string(s.Color)); !ok {
			return fmt.Errorf("noise color %q is not supported", s.Color)
		}
	default:
		return fmt.Errorf("unsupported source %T", s)
	}
	return nil
}

func validateFilter(f Filter) error {
	switch f := f.(type) {
	case Biquad:
		if _, ok := ParseFilterKind(string(f.Kind)); !ok {
			return fmt.Errorf("filter kind %q is not supported", f.Kind)
		}
		if !finite(f.Frequency) || f.Frequency <= 0 {
			return fmt.Errorf("filter.frequency must be > 0")
		}
		if !finite(f.Q) || f.Q <= 0 {
			return fmt.Errorf("filter.q must be > 0")
		}
		if !finite(f.Gain) {
			return fmt.Errorf("filter.gain must be finite")
		}
	case IIR:
		if len(f.Feedforward) == 0 || len(f.Feedforward) > MaxIIROrder {
			return fmt.Errorf("iir feedforward must have 1..%d coefficients", MaxIIROrder)
		}
		if len(f.Feedback) == 0 || len(f.Feedback) > MaxIIROrder {
			return fmt.Errorf("iir feedback must have 1..%d coefficients", MaxIIROrder)
		}
		if f.Feedback[0] == 0 {
			return fmt.Errorf("iir feedback[0] must be non-zero")
		}
		allZero := true
		for _, c := range f.Feedforward {
			if !finite(c) {
				return fmt.Errorf("iir coefficients must be finite")
			}
			if c != 0 {
				allZero = false
			}
		}
		if allZero {
			return fmt.Errorf("iir feedforward must not be all zero")
		}
		for _, c := range f.Feedback {
			if !finite(c) {
				return fmt.Errorf("iir coefficients must be finite")
			}
		}
	default:
		return fmt.Errorf("unsupported filter %T", f)
	}
	return nil
}

func validatePanner(p Panner) error {
	switch p := p.(type) {
	case StereoPanner:
		if !finite(p.Pan) || p.Pan < -1 || p.Pan > 1 {
			return fmt.Errorf("panner.pan must be in [-1,1]")
		}
	case PositionalPanner:
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return fmt.Errorf("panner position must be finite")
		}
	default:
		return fmt.Errorf("unsupported panner %T", p)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func unit(v float64) bool {
	return finite(v) && v >= 0 && v <= 1
}
