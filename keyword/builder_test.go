package keyword

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/preset"
)

func TestBuildEmptyIsDefault(t *testing.T) {
	res := Build(nil, nil)
	assert.Equal(t, blueprint.Default(), res.Blueprint)
	assert.Empty(t, res.Report)
}

func TestUnknownKeywordsAreReportedAndSkipped(t *testing.T) {
	with := Build([]string{"osc:square:220", "wobble:3", "filter:highpass:500", "zzz"}, nil)
	without := Build([]string{"osc:square:220", "filter:highpass:500"}, nil)

	assert.Equal(t, without.Blueprint, with.Blueprint)
	var unknown []string
	for _, line := range with.Report {
		if strings.HasPrefix(line, "! Unknown keyword:") {
			unknown = append(unknown, line)
		}
	}
	assert.Equal(t, []string{"! Unknown keyword: wobble:3", "! Unknown keyword: zzz"}, unknown)

	// Unknown keywords that look like env or dur do not touch the duration.
	env := []string{"env:0.1:0.2:0.3:0.4"}
	assert.Equal(t, Build(env, nil).Blueprint, Build(append(env, "durable"), nil).Blueprint)
	assert.Equal(t, Build(nil, nil).Blueprint, Build([]string{"envy"}, nil).Blueprint)
}

func TestDurationAliasesSuppressAutoDuration(t *testing.T) {
	res := Build([]string{"envelope:0.1:0.2:0.3:0.4", "duration:2"}, nil)
	assert.InDelta(t, 2, res.Blueprint.Duration, 1e-9)

	res = Build([]string{"envelope:0.1:0.2:0.3:0.4"}, nil)
	assert.InDelta(t, 0.8, res.Blueprint.Duration, 1e-9)
}

func TestSourceKeywordsReplaceDefaultSourceOnce(t *testing.T) {
	res := Build([]string{"osc:sawtooth:220:5", "noise:pink", "osc:triangle"}, nil)
	require.Len(t, res.Blueprint.Sources, 3)
	assert.Equal(t, blueprint.Oscillator{Waveform: blueprint.Sawtooth, Frequency: 220, Detune: 5}, res.Blueprint.Sources[0])
	assert.Equal(t, blueprint.Noise{Color: blueprint.Pink}, res.Blueprint.Sources[1])
	assert.Equal(t, blueprint.Oscillator{Waveform: blueprint.Triangle, Frequency: 440}, res.Blueprint.Sources[2])
	assert.Equal(t, "+ Added Oscillator: sawtooth:220:5", res.Report[0])
	assert.Equal(t, "+ Added Noise: pink", res.Report[1])
}

func TestEnvelopeDerivesDuration(t *testing.T) {
	res := Build([]string{"env:0.1:0.2:0.3:0.4"}, nil)
	assert.Equal(t, blueprint.Envelope{Attack: 0.1, Decay: 0.2, Sustain: 0.3, Release: 0.4}, res.Blueprint.Envelope)
	assert.InDelta(t, 0.8, res.Blueprint.Duration, 1e-9)
	assert.Equal(t, "i Auto-calculated duration: 0.80s", res.Report[len(res.Report)-1])

	res = Build([]string{"env:0.1:0.2:0.3:0.4", "dur:2"}, nil)
	assert.Equal(t, 2.0, res.Blueprint.Duration)
}

func TestExplicitZeroIsKept(t *testing.T) {
	res := Build([]string{"env:0:0:0:0", "osc:sine:0:0"}, nil)
	assert.Equal(t, blueprint.Envelope{}, res.Blueprint.Envelope)
	assert.InDelta(t, 0.1, res.Blueprint.Duration, 1e-9)
	assert.Equal(t, 0.0, res.Blueprint.Sources[0].(blueprint.Oscillator).Frequency)
}

func TestMissingParametersUseDefaults(t *testing.T) {
	res := Build([]string{"filter", "delay", "reverb", "comp", "distort", "lfo", "pan", "dur"}, nil)
	bp := res.Blueprint
	assert.Equal(t, blueprint.DefaultFilter(), bp.Filter)
	assert.Equal(t, blueprint.DefaultDelay(), *bp.Delay)
	assert.Equal(t, blueprint.DefaultReverb(), *bp.Reverb)
	assert.Equal(t, blueprint.DefaultCompressor(), *bp.Compressor)
	assert.Equal(t, blueprint.DefaultDistortion(), *bp.Distortion)
	assert.Equal(t, blueprint.DefaultLFO(), *bp.LFO)
	assert.Equal(t, blueprint.StereoPanner{}, bp.Panner)
	assert.Equal(t, 0.5, bp.Duration)
	assert.Contains(t, res.Report, "+ Set Duration: 0.5")
	assert.Contains(t, res.Report, "+ Set Panner: 0")
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	res := Build([]string{"OSC:Square:330", "LFO:sine:2:50:filterQ", "Reverb:2:0.3:TRUE"}, nil)
	assert.Equal(t, blueprint.Square, res.Blueprint.Sources[0].(blueprint.Oscillator).Waveform)
	assert.Equal(t, blueprint.FilterQ, res.Blueprint.LFO.Target)
	assert.True(t, res.Blueprint.Reverb.Reverse)
}

func TestHandlerErrorsAreReported(t *testing.T) {
	res := Build([]string{"osc:kazoo:100", "distort:20:8x", "lfo:sine:1:1:nowhere"}, nil)
	require.Len(t, res.Report, 3)
	for _, line := range res.Report {
		assert.True(t, strings.HasPrefix(line, "! Error parsing keyword: "), line)
	}
	assert.Equal(t, blueprint.Default(), res.Blueprint)
}

func TestIIRAndPositionalKeywords(t *testing.T) {
	res := Build([]string{"filter:iir:0.1,0.1:1,-0.8", "pan:positional:1:0:-2"}, nil)
	assert.Equal(t, blueprint.IIR{Feedforward: []float64{0.1, 0.1}, Feedback: []float64{1, -0.8}}, res.Blueprint.Filter)
	assert.Equal(t, blueprint.PositionalPanner{X: 1, Y: 0, Z: -2}, res.Blueprint.Panner)

	res = Build([]string{"filter:iir:1:0,1"}, nil)
	assert.Nil(t, res.Blueprint.Filter)
	assert.Contains(t, res.Report[0], "feedback[0] must be non-zero")
}

func TestPresetIsSplicedFirst(t *testing.T) {
	lib := preset.Builtin()
	res := Build([]string{"dur:1", `preset:"808 Kick"`, "filter:highpass:90"}, lib)

	bp := res.Blueprint
	assert.Equal(t, "+ Loaded preset: 808 Kick", res.Report[0])
	assert.Equal(t, 1.0, bp.Duration, "user keywords override preset keywords")
	assert.Equal(t, blueprint.Biquad{Kind: blueprint.Highpass, Frequency: 90, Q: 1}, bp.Filter)
	require.NotNil(t, bp.LFO)
	assert.Equal(t, -100.0, bp.LFO.Depth)
	assert.Equal(t, []blueprint.Source{blueprint.Oscillator{Waveform: blueprint.Sine, Frequency: 150}}, bp.Sources)
}

func TestPresetNotFound(t *testing.T) {
	res := Build([]string{"preset:nope", "osc:square"}, preset.Builtin())
	assert.Equal(t, "! Preset not found: nope", res.Report[0])
	assert.Equal(t, blueprint.Square, res.Blueprint.Sources[0].(blueprint.Oscillator).Waveform)

	res = Build([]string{"preset:nope"}, nil)
	assert.Equal(t, []string{"! Preset not found: nope"}, res.Report)
}

func TestBuiltinPresetsBuildValidBlueprints(t *testing.T) {
	lib := preset.Builtin()
	for _, p := range lib.All() {
		res := Build([]string{`preset:"` + p.Name + `"`}, lib)
		for _, line := range res.Report {
			assert.False(t, strings.HasPrefix(line, "!"), "%s: %s", p.Name, line)
		}
		assert.NoError(t, res.Blueprint.Validate(), p.Name)
		assert.Equal(t, Build(p.Keywords(), nil).Blueprint, res.Blueprint, p.Name)
	}
}

func TestSetCreatesMissingParts(t *testing.T) {
	res := Build([]string{"set:filter.Q:10", "set:reverb.reverse:true", "set:delay.delayTime:0.25"}, nil)
	assert.Equal(t, []string{
		"i Initialized default filter",
		"+ Set filter.q = 10",
		"i Initialized default reverb",
		"+ Set reverb.reverse = true",
		"i Initialized default delay",
		"+ Set delay.delaytime = 0.25",
	}, res.Report)
	assert.Equal(t, 10.0, res.Blueprint.Filter.(blueprint.Biquad).Q)
	assert.True(t, res.Blueprint.Reverb.Reverse)
	assert.Equal(t, 0.25, res.Blueprint.Delay.Time)
}

func TestSetSources(t *testing.T) {
	res := Build([]string{"osc:sine:220", "noise", "set:sources.0.frequency:330", "set:sources.1.noisetype:brown", "set:sources.0.type:square"}, nil)
	assert.Equal(t, blueprint.Oscillator{Waveform: blueprint.Square, Frequency: 330}, res.Blueprint.Sources[0])
	assert.Equal(t, blueprint.Noise{Color: blueprint.Brown}, res.Blueprint.Sources[1])
}

func TestSetFailuresDoNotStopProcessing(t *testing.T) {
	res := Build([]string{
		"set:bogus.x:1",
		"set:sources.5.frequency:1",
		"set:duration.x:1",
		"set:envelope.attack.x:1",
		"set:envelope.volume:1",
		"set:envelope.attack:abc",
		"set:envelope",
		"osc:square:220",
		"set:duration:2",
	}, nil)
	assert.Equal(t, []string{
		"! Path not found: 'bogus.x'. Parent 'bogus' does not exist.",
		"! Path not found: 'sources.5.frequency'. Parent '5' does not exist.",
		"! Cannot set property on non-object at path: duration.x",
		"! Cannot set property on non-object at path: envelope.attack.x",
		"! Unknown property 'volume' at path: envelope.volume",
		"! Invalid value 'abc' for envelope.attack",
		"! Invalid 'set' usage. Format: set:path:value",
		"+ Added Oscillator: square:220",
		"+ Set duration = 2",
	}, res.Report)
	assert.Equal(t, 2.0, res.Blueprint.Duration)
	assert.Equal(t, blueprint.DefaultEnvelope(), res.Blueprint.Envelope)
}

func TestSetLFOTargetAndPanner(t *testing.T) {
	res := Build([]string{"set:lfo.affects:pan", "set:panner.pan:-0.5"}, nil)
	assert.Equal(t, blueprint.Pan, res.Blueprint.LFO.Target)
	assert.Equal(t, blueprint.StereoPanner{Pan: -0.5}, res.Blueprint.Panner)
}

func TestSuggest(t *testing.T) {
	lib := preset.Builtin()
	assert.Equal(t, []string{"delay:", "dur:", "distort:"}, Suggest("d", lib))
	assert.Len(t, Suggest("", lib), len(Names))
	assert.Nil(t, Suggest("osc:s", lib))
	assert.Equal(t, []string{`preset:"Kick Drum (Tight)"`, `preset:"808 Kick"`}, Suggest(`preset:"kick`, lib))
	assert.Nil(t, Suggest("preset:", nil))
}
