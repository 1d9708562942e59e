package synth

import "github.com/cwbudde/algo-sfx/blueprint"

// modulation holds one sample of LFO output routed to its target.
type modulation struct {
	sourceFreq float64
	filterFreq float64
	filterQ    float64
	amplitude  float64
	pan        float64
}

// lfo drives a single target. It is silent outside the voice's source
// window.
type lfo struct {
	osc    *oscillator
	depth  float64
	target blueprint.LFOTarget
}

func newLFO(l blueprint.LFO, sampleRate int) *lfo {
	osc := newOscillator(blueprint.Oscillator{Waveform: l.Waveform, Frequency: l.Rate}, sampleRate)
	return &lfo{osc: osc, depth: l.Depth, target: l.Target}
}

func (l *lfo) next() modulation {
	v := l.depth * l.osc.next(0)
	var m modulation
	switch l.target {
	case blueprint.SourceFrequency:
		m.sourceFreq = v
	case blueprint.FilterFrequency:
		m.filterFreq = v
	case blueprint.FilterQ:
		m.filterQ = v
	case blueprint.Amplitude:
		m.amplitude = v
	case blueprint.Pan:
		m.pan = v
	}
	return m
}
