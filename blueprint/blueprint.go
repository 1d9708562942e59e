package blueprint

// Waveform names a periodic oscillator shape.
type Waveform string

const (
	Sine     Waveform = "sine"
	Square   Waveform = "square"
	Sawtooth Waveform = "sawtooth"
	Triangle Waveform = "triangle"
)

// ParseWaveform maps a lower-case name to a Waveform.
func ParseWaveform(s string) (Waveform, bool) {
	switch w := Waveform(s); w {
	case Sine, Square, Sawtooth, Triangle:
		return w, true
	}
	return "", false
}

// NoiseColor selects the spectral tilt of a noise source.
type NoiseColor string

const (
	White NoiseColor = "white"
	Pink  NoiseColor = "pink"
	Brown NoiseColor = "brown"
)

// ParseNoiseColor maps a lower-case name to a NoiseColor.
func ParseNoiseColor(s string) (NoiseColor, bool) {
	switch c := NoiseColor(s); c {
	case White, Pink, Brown:
		return c, true
	}
	return "", false
}

// Source is a sound generator. The set of implementations is closed:
// Oscillator and Noise.
type Source interface {
	isSource()
}

// Oscillator is a periodic source. Detune is in cents.
type Oscillator struct {
	Waveform  Waveform
	Frequency float64
	Detune    float64
}

// Noise is a looped noise source.
type Noise struct {
	Color NoiseColor
}

func (Oscillator) isSource() {}
func (Noise) isSource()      {}

// Envelope is a linear ADSR shape. Attack, Decay and Release are seconds,
// Sustain is a level in [0,1].
type Envelope struct {
	Attack  float64 `json:"attack"`
	Decay   float64 `json:"decay"`
	Sustain float64 `json:"sustain"`
	Release float64 `json:"release"`
}

// FilterKind selects a biquad response.
type FilterKind string

const (
	Lowpass   FilterKind = "lowpass"
	Highpass  FilterKind = "highpass"
	Bandpass  FilterKind = "bandpass"
	Peaking   FilterKind = "peaking"
	Lowshelf  FilterKind = "lowshelf"
	Highshelf FilterKind = "highshelf"
	Notch     FilterKind = "notch"
	Allpass   FilterKind = "allpass"
)

// ParseFilterKind maps a lower-case name to a FilterKind.
func ParseFilterKind(s string) (FilterKind, bool) {
	switch k := FilterKind(s); k {
	case Lowpass, Highpass, Bandpass, Peaking, Lowshelf, Highshelf, Notch, Allpass:
		return k, true
	}
	return "", false
}

// Filter is the optional insert filter: Biquad or IIR.
type Filter interface {
	isFilter()
}

// Biquad is a second-order filter. Gain (dB) only applies to peaking and
// shelving kinds.
type Biquad struct {
	Kind      FilterKind
	Frequency float64
	Q         float64
	Gain      float64
}

// IIR is a general recursive filter given by its transfer function
// coefficients. Feedback[0] normalizes the output.
type IIR struct {
	Feedforward []float64
	Feedback    []float64
}

func (Biquad) isFilter() {}
func (IIR) isFilter()    {}

// Panner is the optional spatial stage: StereoPanner or PositionalPanner.
type Panner interface {
	isPanner()
}

// StereoPanner places the signal between left (-1) and right (1).
type StereoPanner struct {
	Pan float64
}

// PositionalPanner carries a 3D position. It is rendered as a pass-through.
type PositionalPanner struct {
	X, Y, Z float64
}

func (StereoPanner) isPanner()     {}
func (PositionalPanner) isPanner() {}

// LFO modulates one parameter of the graph. Depth is expressed in the
// target parameter's own units.
type LFO struct {
	Waveform Waveform
	Rate     float64
	Depth    float64
	Target   LFOTarget
}

// Delay is a feedback echo send.
type Delay struct {
	Time     float64
	Feedback float64
	Mix      float64
}

// Reverb is a convolution send using a synthetic impulse response.
type Reverb struct {
	Decay   float64 `json:"decay"`
	Mix     float64 `json:"mix"`
	Reverse bool    `json:"reverse"`
}

// Oversample selects the waveshaper oversampling factor.
type Oversample string

const (
	OversampleNone Oversample = "none"
	Oversample2x   Oversample = "2x"
	Oversample4x   Oversample = "4x"
)

// ParseOversample maps a lower-case name to an Oversample value.
func ParseOversample(s string) (Oversample, bool) {
	switch o := Oversample(s); o {
	case OversampleNone, Oversample2x, Oversample4x:
		return o, true
	}
	return "", false
}

// Factor returns the oversampling ratio.
func (o Oversample) Factor() int {
	switch o {
	case Oversample2x:
		return 2
	case Oversample4x:
		return 4
	}
	return 1
}

// Distortion is a waveshaping insert.
type Distortion struct {
	Amount     float64    `json:"amount"`
	Oversample Oversample `json:"oversample"`
}

// Compressor is a dynamics insert. Threshold and Knee are dB, Attack and
// Release seconds.
type Compressor struct {
	Threshold float64 `json:"threshold"`
	Knee      float64 `json:"knee"`
	Ratio     float64 `json:"ratio"`
	Attack    float64 `json:"attack"`
	Release   float64 `json:"release"`
}

// Blueprint describes one sound. It is a value: the engine consumes a copy
// and never mutates it.
type Blueprint struct {
	Sources    []Source
	Envelope   Envelope
	Filter     Filter
	LFO        *LFO
	Delay      *Delay
	Reverb     *Reverb
	Distortion *Distortion
	Panner     Panner
	Compressor *Compressor
	Duration   float64
}

// Clone returns a deep copy.
func (b Blueprint) Clone() Blueprint {
	out := b
	out.Sources = append([]Source(nil), b.Sources...)
	if f, ok := b.Filter.(IIR); ok {
		out.Filter = IIR{
			Feedforward: append([]float64(nil), f.Feedforward...),
			Feedback:    append([]float64(nil), f.Feedback...),
		}
	}
	if b.LFO != nil {
		v := *b.LFO
		out.LFO = &v
	}
	if b.Delay != nil {
		v := *b.Delay
		out.Delay = &v
	}
	if b.Reverb != nil {
		v := *b.Reverb
		out.Reverb = &v
	}
	if b.Distortion != nil {
		v := *b.Distortion
		out.Distortion = &v
	}
	if b.Compressor != nil {
		v := *b.Compressor
		out.Compressor = &v
	}
	return out
}

// Oscillators returns the oscillator sources in order.
func (b Blueprint) Oscillators() []Oscillator {
	var out []Oscillator
	for _, s := range b.Sources {
		if o, ok := s.(Oscillator); ok {
			out = append(out, o)
		}
	}
	return out
}
