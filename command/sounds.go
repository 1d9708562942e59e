package command

import (
	"math"

	"github.com/cwbudde/algo-sfx/blueprint"
)

// ErrorBlueprint is the dissonant sound played for unknown commands and
// failed lines: two square waves a tritone apart.
func ErrorBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Sources: []blueprint.Source{
			blueprint.Oscillator{Waveform: blueprint.Square, Frequency: 150},
			blueprint.Oscillator{Waveform: blueprint.Square, Frequency: 150 * math.Pow(1.05946, 6), Detune: 10},
		},
		Envelope: blueprint.Envelope{Attack: 0.01, Decay: 0.2, Sustain: 0.1, Release: 0.2},
		Duration: 0.5,
	}
}

func swooshBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Sources:  []blueprint.Source{blueprint.Noise{Color: blueprint.White}},
		Filter:   blueprint.Biquad{Kind: blueprint.Lowpass, Frequency: 1200, Q: 1.5},
		Envelope: blueprint.Envelope{Attack: 0.005, Decay: 0.1, Release: 0.2},
		Duration: 0.305,
	}
}

func echoBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Sources: []blueprint.Source{
			blueprint.Oscillator{Waveform: blueprint.Triangle, Frequency: 700},
			blueprint.Noise{Color: blueprint.White},
		},
		Envelope:   blueprint.Envelope{Attack: 0.005, Decay: 0.08, Release: 0.3},
		Filter:     blueprint.Biquad{Kind: blueprint.Highpass, Frequency: 400, Q: 0.7},
		Delay:      &blueprint.Delay{Time: 0.22, Feedback: 0.47, Mix: 0.34},
		Reverb:     &blueprint.Reverb{Decay: 0.4, Mix: 0.22},
		Panner:     blueprint.StereoPanner{},
		Compressor: &blueprint.Compressor{Threshold: -28, Knee: 6, Ratio: 2.2, Attack: 0.01, Release: 0.13},
		Duration:   0.5,
	}
}

func blipBlueprint(w blueprint.Waveform, freq float64) *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Sources:  []blueprint.Source{blueprint.Oscillator{Waveform: w, Frequency: freq}},
		Envelope: blueprint.Envelope{Attack: 0.02, Decay: 0.1, Sustain: 0.1, Release: 0.1},
		Duration: 0.3,
	}
}

func zenGardenBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Duration: 6,
		Sources: []blueprint.Source{
			blueprint.Oscillator{Waveform: blueprint.Sine, Frequency: 130.81},
			blueprint.Oscillator{Waveform: blueprint.Sine, Frequency: 196, Detune: 5},
			blueprint.Noise{Color: blueprint.Pink},
		},
		Envelope:   blueprint.Envelope{Attack: 2.5, Decay: 1, Sustain: 0.6, Release: 2.5},
		Filter:     blueprint.Biquad{Kind: blueprint.Lowpass, Frequency: 900, Q: 0.707},
		Delay:      &blueprint.Delay{Time: 0.8, Feedback: 0.35, Mix: 0.3},
		Reverb:     &blueprint.Reverb{Decay: 4.5, Mix: 0.4},
		Compressor: &blueprint.Compressor{Threshold: -18, Knee: 20, Ratio: 4, Attack: 0.5, Release: 1},
	}
}

func seagullBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Duration: 1.5,
		Sources: []blueprint.Source{
			blueprint.Oscillator{Waveform: blueprint.Sawtooth, Frequency: 1150},
			blueprint.Oscillator{Waveform: blueprint.Square, Frequency: 1300, Detune: -30},
			blueprint.Oscillator{Waveform: blueprint.Sawtooth, Frequency: 1600, Detune: 40},
			blueprint.Noise{Color: blueprint.Brown},
		},
		Envelope:   blueprint.Envelope{Attack: 0.03, Decay: 0.2, Sustain: 0.15, Release: 1.2},
		Filter:     blueprint.Biquad{Kind: blueprint.Peaking, Frequency: 1400, Q: 4, Gain: 25},
		Distortion: &blueprint.Distortion{Amount: 35, Oversample: blueprint.Oversample4x},
		Compressor: &blueprint.Compressor{Threshold: -28, Knee: 25, Ratio: 12, Attack: 0.003, Release: 0.7},
	}
}

// rebootBlueprint is a rising sweep: one sawtooth LFO period over the
// sound pulls the pitch from 140 Hz up to 740 Hz.
func rebootBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Duration: 1.2,
		Sources:  []blueprint.Source{blueprint.Oscillator{Waveform: blueprint.Sine, Frequency: 440}},
		Envelope: blueprint.Envelope{Attack: 0.05, Decay: 0.3, Sustain: 0.6, Release: 0.5},
		LFO: &blueprint.LFO{
			Waveform: blueprint.Sawtooth,
			Rate:     1 / 1.2,
			Depth:    300,
			Target:   blueprint.SourceFrequency,
		},
		Reverb: &blueprint.Reverb{Decay: 1.5, Mix: 0.3},
	}
}
