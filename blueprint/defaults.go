package blueprint

// Defaults used when a keyword omits a parameter or a part is created on
// demand.
const (
	DefaultFrequency = 440.0
	DefaultDuration  = 0.4
)

// DefaultEnvelope is the envelope of a fresh blueprint.
func DefaultEnvelope() Envelope {
	return Envelope{Attack: 0.01, Decay: 0.1, Sustain: 0.1, Release: 0.2}
}

// Default returns the starting blueprint: one 440 Hz sine, default
// envelope, 0.4 s.
func Default() Blueprint {
	return Blueprint{
		Sources:  []Source{Oscillator{Waveform: Sine, Frequency: DefaultFrequency}},
		Envelope: DefaultEnvelope(),
		Duration: DefaultDuration,
	}
}

func DefaultFilter() Biquad {
	return Biquad{Kind: Lowpass, Frequency: 1000, Q: 1}
}

func DefaultReverb() Reverb {
	return Reverb{Decay: 1, Mix: 0.5}
}

func DefaultDelay() Delay {
	return Delay{Time: 0.3, Feedback: 0.4, Mix: 0.5}
}

func DefaultLFO() LFO {
	return LFO{Waveform: Sine, Rate: 5, Depth: 100, Target: SourceFrequency}
}

func DefaultDistortion() Distortion {
	return Distortion{Amount: 50, Oversample: OversampleNone}
}

func DefaultPanner() StereoPanner {
	return StereoPanner{}
}

func DefaultCompressor() Compressor {
	return Compressor{Threshold: -24, Knee: 30, Ratio: 12, Attack: 0.003, Release: 0.25}
}
