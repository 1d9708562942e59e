package blueprint

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	b := Default()
	require.NoError(t, b.Validate())
	require.Len(t, b.Sources, 1)
	assert.Equal(t, Oscillator{Waveform: Sine, Frequency: 440}, b.Sources[0])
	assert.InDelta(t, 0.4, b.Duration, 1e-12)
}

func TestValidateRejectsEmptySources(t *testing.T) {
	b := Default()
	b.Sources = nil
	err := b.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSources))
}

func TestValidateRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Blueprint)
	}{
		{"sustain above one", func(b *Blueprint) { b.Envelope.Sustain = 1.5 }},
		{"negative attack", func(b *Blueprint) { b.Envelope.Attack = -0.1 }},
		{"zero duration", func(b *Blueprint) { b.Duration = 0 }},
		{"zero frequency", func(b *Blueprint) { b.Sources = []Source{Oscillator{Waveform: Sine}} }},
		{"unknown waveform", func(b *Blueprint) { b.Sources = []Source{Oscillator{Waveform: "pulse", Frequency: 100}} }},
		{"unknown noise", func(b *Blueprint) { b.Sources = []Source{Noise{Color: "blue"}} }},
		{"ratio out of range", func(b *Blueprint) { c := DefaultCompressor(); c.Ratio = 30; b.Compressor = &c }},
		{"threshold positive", func(b *Blueprint) { c := DefaultCompressor(); c.Threshold = 3; b.Compressor = &c }},
		{"feedback one", func(b *Blueprint) { d := DefaultDelay(); d.Feedback = 1; b.Delay = &d }},
		{"pan out of range", func(b *Blueprint) { b.Panner = StereoPanner{Pan: 2} }},
		{"iir zero a0", func(b *Blueprint) { b.Filter = IIR{Feedforward: []float64{1}, Feedback: []float64{0, 1}} }},
		{"bad oversample", func(b *Blueprint) { b.Distortion = &Distortion{Amount: 10, Oversample: "8x"} }},
		{"bad lfo target", func(b *Blueprint) { l := DefaultLFO(); l.Target = LFOTarget{Node: "reverb"}; b.LFO = &l }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Default()
			tc.mutate(&b)
			assert.Error(t, b.Validate())
		})
	}
}

func TestValidateAcceptsEveryPart(t *testing.T) {
	b := Default()
	f := DefaultFilter()
	b.Filter = f
	l := DefaultLFO()
	b.LFO = &l
	d := DefaultDelay()
	b.Delay = &d
	r := DefaultReverb()
	b.Reverb = &r
	x := DefaultDistortion()
	b.Distortion = &x
	b.Panner = DefaultPanner()
	c := DefaultCompressor()
	b.Compressor = &c
	require.NoError(t, b.Validate())
}

func TestCloneIsDeep(t *testing.T) {
	b := Default()
	d := DefaultDelay()
	b.Delay = &d
	b.Filter = IIR{Feedforward: []float64{0.5, 0.5}, Feedback: []float64{1}}

	c := b.Clone()
	c.Delay.Mix = 0.9
	c.Sources[0] = Noise{Color: Pink}
	c.Filter.(IIR).Feedforward[0] = 9

	assert.InDelta(t, 0.5, b.Delay.Mix, 1e-12)
	assert.Equal(t, Oscillator{Waveform: Sine, Frequency: 440}, b.Sources[0])
	assert.InDelta(t, 0.5, b.Filter.(IIR).Feedforward[0], 1e-12)
}

func TestParseLFOTarget(t *testing.T) {
	cases := map[string]LFOTarget{
		"frequency":        SourceFrequency,
		"filterCutoff":     FilterFrequency,
		"filtercutoff":     FilterFrequency,
		"filter.frequency": FilterFrequency,
		"filter.q":         FilterQ,
		"filterQ":          FilterQ,
		"amplitude":        Amplitude,
		"pan":              Pan,
	}
	for in, want := range cases {
		got, ok := ParseLFOTarget(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseLFOTarget("detune")
	assert.False(t, ok)
	assert.Equal(t, "filter.q", FilterQ.String())
	assert.Equal(t, "pan", Pan.String())
}

func TestJSONRoundTrip(t *testing.T) {
	b := Default()
	b.Sources = append(b.Sources, Noise{Color: Brown})
	b.Filter = Biquad{Kind: Peaking, Frequency: 1400, Q: 4, Gain: 25}
	l := LFO{Waveform: Square, Rate: 4, Depth: 200, Target: FilterQ}
	b.LFO = &l
	b.Panner = StereoPanner{Pan: -0.5}

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var got Blueprint
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, b, got)
}

func TestJSONAcceptsLegacyAffects(t *testing.T) {
	in := `{"sources":[{"type":"oscillator","oscillatorType":"sine","frequency":220}],
		"envelope":{"attack":0.1,"decay":0.1,"sustain":0.5,"release":0.1},
		"lfo":{"type":"sine","frequency":5,"depth":100,"affects":"filterCutoff"},
		"duration":1}`
	var b Blueprint
	require.NoError(t, json.Unmarshal([]byte(in), &b))
	require.NotNil(t, b.LFO)
	assert.Equal(t, FilterFrequency, b.LFO.Target)
	assert.NoError(t, b.Validate())
}
