package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/keyword"
)

type fakeEngine struct {
	played []blueprint.Blueprint
	resets int
	err    error
}

func (f *fakeEngine) PlayBlueprint(bp blueprint.Blueprint) error {
	f.played = append(f.played, bp)
	return f.err
}

func (f *fakeEngine) Reset() error {
	f.resets++
	return f.err
}

func (f *fakeEngine) LatencyReport() string { return "base 0.0 ms" }

func newTestProcessor() (*Processor, *fakeEngine) {
	eng := &fakeEngine{}
	return NewProcessor(WithEngine(eng)), eng
}

func TestEchoPlaysStaticBlueprint(t *testing.T) {
	p, eng := newTestProcessor()
	res := p.Process(`echo hello   "big world"`)
	assert.Equal(t, "hello big world", res.Output)
	require.NotNil(t, res.Blueprint)
	assert.Equal(t, *echoBlueprint(), *res.Blueprint)
	require.Len(t, eng.played, 1)
	assert.Empty(t, res.Actions)
}

func TestEmptyCommandEchoesInput(t *testing.T) {
	p, eng := newTestProcessor()

	res := p.Process("   ")
	assert.Equal(t, Result{Output: ""}, res)

	res = p.Process("  A=1 B=two  ")
	assert.Equal(t, "A=1 B=two", res.Output)
	assert.Nil(t, res.Blueprint)
	assert.Equal(t, map[string]string{"A": "1", "B": "two"}, p.Variables())

	p.Process("")
	assert.Equal(t, map[string]string{"A": "1", "B": "two"}, p.Variables(), "a blank line keeps the session")

	assert.Equal(t, "1 two", p.Process("echo $A ${B}").Output)
	assert.Len(t, eng.played, 1)
}

func TestUnknownCommand(t *testing.T) {
	p, eng := newTestProcessor()
	res := p.Process("frobnicate now")
	assert.True(t, strings.HasPrefix(res.Output, "Command not found: frobnicate\nAvailable commands:"), res.Output)
	require.NotNil(t, res.Blueprint)
	assert.Equal(t, *ErrorBlueprint(), *res.Blueprint)
	assert.Len(t, eng.played, 1)

	osc := res.Blueprint.Sources[1].(blueprint.Oscillator)
	assert.InDelta(t, 212.13, osc.Frequency, 0.01)
}

func TestLookupIgnoresCase(t *testing.T) {
	p, _ := newTestProcessor()
	assert.Equal(t, "hi", p.Process("ECHO hi").Output)
}

func TestHelpRedirect(t *testing.T) {
	p, _ := newTestProcessor()
	assert.Equal(t, keyword.HelpText, p.Process("raw -h").Output)
	assert.Equal(t, presetsHelp, p.Process("presets play -h").Output)

	out := p.Process("echo -h").Output
	assert.Contains(t, out, "echo: Return the provided args back.")
	assert.Contains(t, out, "Usage: echo [text...]")

	out = p.Process("help").Output
	for _, name := range p.Registry().Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, p.Process("help nope").Output, "unknown command: nope")
}

func TestStaticActionsComeFirst(t *testing.T) {
	p, _ := newTestProcessor()
	require.NoError(t, p.Registry().Register(Definition{
		Name:          "both",
		StaticActions: []Action{ClearHistory},
		Execute: func([]string) Result {
			return Result{Actions: []Action{Reboot}}
		},
	}))
	assert.Equal(t, []Action{ClearHistory, Reboot}, p.Process("both").Actions)
	assert.Equal(t, []Action{ClearHistory}, p.Process("clear").Actions)
}

func TestRuntimeBlueprintWins(t *testing.T) {
	p, _ := newTestProcessor()
	runtime := blueprint.Default()
	runtime.Duration = 3
	require.NoError(t, p.Registry().Register(Definition{
		Name:      "dyn",
		Blueprint: swooshBlueprint(),
		Execute:   func([]string) Result { return Result{Blueprint: &runtime} },
	}))
	assert.Equal(t, 3.0, p.Process("dyn").Blueprint.Duration)
}

func TestRawCommand(t *testing.T) {
	p, eng := newTestProcessor()

	res := p.Process("raw")
	assert.Equal(t, keyword.HelpText, res.Output)
	assert.Nil(t, res.Blueprint)

	res = p.Process("raw osc:square:220 dur:1")
	assert.Equal(t, "Generating sound with blueprint:\n+ Added Oscillator: square:220\n+ Set Duration: 1", res.Output)
	require.NotNil(t, res.Blueprint)
	assert.Equal(t, 1.0, res.Blueprint.Duration)

	res = p.Process(`raw preset:"808 Kick" dur:1`)
	require.NotNil(t, res.Blueprint)
	assert.Contains(t, res.Output, "+ Loaded preset: 808 Kick")
	assert.Equal(t, 1.0, res.Blueprint.Duration)

	res = p.Process("raw env:0:0:2:0")
	assert.Contains(t, res.Output, "! Invalid blueprint: envelope.sustain must be in [0,1]")
	require.NotNil(t, res.Blueprint)
	assert.Equal(t, *ErrorBlueprint(), *res.Blueprint)

	res = p.Process("raw dur:0")
	assert.Contains(t, res.Output, "! Invalid blueprint:")
	require.NotNil(t, res.Blueprint)
	assert.Equal(t, *ErrorBlueprint(), *res.Blueprint)

	require.Len(t, eng.played, 4)
	assert.Equal(t, *ErrorBlueprint(), eng.played[3])
}

func TestNestedCommandSideEffectsComeFirst(t *testing.T) {
	p, eng := newTestProcessor()
	res := p.Process("echo $(raw osc:square:330)")
	assert.Contains(t, res.Output, "+ Added Oscillator: square:330")

	require.Len(t, eng.played, 2)
	assert.Equal(t, blueprint.Oscillator{Waveform: blueprint.Square, Frequency: 330}, eng.played[0].Sources[0])
	assert.NotNil(t, eng.played[1].Delay)
	assert.Equal(t, []string{"echo $(raw osc:square:330)", "raw osc:square:330"}, p.History().Entries())
}

func TestSubstitutionDepthError(t *testing.T) {
	p, eng := newTestProcessor()
	line := "x"
	for i := 0; i <= MaxDepth; i++ {
		line = "echo $(" + line + ")"
	}
	res := p.Process(line)
	assert.Equal(t, "Error: too many levels of command substitution", res.Output)
	assert.Equal(t, *ErrorBlueprint(), *res.Blueprint)
	assert.Equal(t, *ErrorBlueprint(), eng.played[len(eng.played)-1])
}

func TestPresetsCommand(t *testing.T) {
	p, _ := newTestProcessor()

	out := p.Process("presets").Output
	assert.True(t, strings.HasPrefix(out, "Available Presets:"))
	assert.Contains(t, out, "--- PERCUSSION ---")
	assert.Contains(t, out, `- "808 Kick": `)

	res := p.Process(`presets play "808 Kick"`)
	assert.Equal(t, "Playing preset: 808 Kick", res.Output)
	require.NotNil(t, res.Blueprint)
	assert.Equal(t, blueprint.Oscillator{Waveform: blueprint.Sine, Frequency: 150}, res.Blueprint.Sources[0])

	res = p.Process("presets play nothing here")
	assert.Equal(t, "! Preset not found: nothing here", res.Output)
	assert.Equal(t, *ErrorBlueprint(), *res.Blueprint)

	assert.True(t, strings.HasPrefix(p.Process("presets search kick").Output, "Found 2 presets:"))
	assert.Equal(t, `No presets found matching "xyzzy".`, p.Process("presets search xyzzy").Output)
	assert.Contains(t, p.Process("presets categories").Output, "Percussion (7)")
	assert.Equal(t, presetsHelp, p.Process("presets dance").Output)
}

func TestStopAndLatency(t *testing.T) {
	p, eng := newTestProcessor()
	assert.Equal(t, "Audio engine reset.", p.Process("stop").Output)
	assert.Equal(t, 1, eng.resets)

	eng.err = errors.New("boom")
	res := p.Process("stop")
	assert.Equal(t, "Error: boom", res.Output)

	res = p.Process("toggle:latency")
	assert.Equal(t, []Action{ToggleLatencyWidget}, res.Actions)
	assert.Equal(t, "Toggling audio latency widget...\nbase 0.0 ms", res.Output)

	bare := NewProcessor()
	assert.Equal(t, "No audio engine attached.", bare.Process("stop").Output)
	assert.Equal(t, "Toggling audio latency widget...", bare.Process("toggle:latency").Output)
}

func TestHistoryAndVarsCommands(t *testing.T) {
	p, _ := newTestProcessor()
	p.Process("B=2 A=1")
	assert.Equal(t, "A=1\nB=2", p.Process("vars").Output)
	assert.Equal(t, "   1  B=2 A=1\n   2  vars\n   3  history", p.Process("history").Output)

	p.ResetSession()
	assert.Equal(t, "No variables set.", p.Process("vars").Output)
}

func TestBuiltinBlueprintsAreValid(t *testing.T) {
	for name, bp := range map[string]*blueprint.Blueprint{
		"error":   ErrorBlueprint(),
		"swoosh":  swooshBlueprint(),
		"echo":    echoBlueprint(),
		"blip":    blipBlueprint(blueprint.Triangle, 600),
		"zen":     zenGardenBlueprint(),
		"seagull": seagullBlueprint(),
		"reboot":  rebootBlueprint(),
	} {
		assert.NoError(t, bp.Validate(), name)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	noop := func([]string) Result { return Result{} }
	require.NoError(t, r.Register(Definition{Name: "Go", Execute: noop}))
	assert.Error(t, r.Register(Definition{Name: "go", Execute: noop}))
	assert.Error(t, r.Register(Definition{Name: " ", Execute: noop}))
	assert.Error(t, r.Register(Definition{Name: "nil"}))
	d, ok := r.Lookup("GO")
	require.True(t, ok)
	assert.Equal(t, "Go", d.Name)
}
