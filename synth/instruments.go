package synth

import (
	"fmt"
	"unicode"

	"github.com/cwbudde/algo-sfx/blueprint"
)

// Built-in instrument names.
const (
	InstrumentBackspace = "backspace"
	InstrumentKeystroke = "keystroke"
)

func builtinInstruments() map[string]blueprint.Blueprint {
	return map[string]blueprint.Blueprint{
		InstrumentBackspace: {
			Sources:  []blueprint.Source{blueprint.Noise{Color: blueprint.White}},
			Envelope: blueprint.Envelope{Attack: 0.002, Decay: 0.05, Sustain: 0, Release: 0.05},
			Filter:   blueprint.Biquad{Kind: blueprint.Bandpass, Frequency: 2500, Q: 1.2},
			Duration: 0.08,
		},
		InstrumentKeystroke: keystrokeBlueprint(800),
	}
}

func keystrokeBlueprint(freq float64) blueprint.Blueprint {
	return blueprint.Blueprint{
		Sources:  []blueprint.Source{blueprint.Oscillator{Waveform: blueprint.Triangle, Frequency: freq}},
		Envelope: blueprint.Envelope{Attack: 0.001, Decay: 0.03, Sustain: 0, Release: 0.02},
		Duration: 0.05,
	}
}

// KeystrokeFrequency maps a typed rune to a click pitch. Anything other
// than a letter or digit gets the high special-key tone.
func KeystrokeFrequency(r rune) float64 {
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return 1200
	}
	return float64(250 + (int(r)*5)%800)
}

// RegisterInstrument stores bp under name and drops any cached render.
func (e *Engine) RegisterInstrument(name string, bp blueprint.Blueprint) error {
	if err := bp.Validate(); err != nil {
		return fmt.Errorf("instrument %q: %w", name, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instruments[name] = bp.Clone()
	delete(e.cache, name)
	return nil
}

// TriggerInstrument plays a named instrument, rendering it on first use.
func (e *Engine) TriggerInstrument(name string) error {
	e.mu.Lock()
	if err := e.ready(); err != nil {
		e.mu.Unlock()
		return err
	}
	now := e.mixer.Frame()
	samples, ok := e.cache[name]
	bp, known := e.instruments[name]
	e.mu.Unlock()

	e.EnsureReady()

	if !ok {
		if !known {
			return fmt.Errorf("synth: unknown instrument %q", name)
		}
		g, err := Compile(bp, e.cfg.SampleRate, e.cfg.Seed)
		if err != nil {
			return err
		}
		if samples, err = g.Render(); err != nil {
			return err
		}
		e.mu.Lock()
		e.cache[name] = samples
		e.mu.Unlock()
		e.log.Debug().Str("instrument", name).Int("frames", g.Len()).Msg("instrument cached")
	}
	e.mixer.schedule(now, samples)
	return nil
}

// PlayKeystroke plays a short click at freq.
func (e *Engine) PlayKeystroke(freq float64) error {
	return e.PlayBlueprint(keystrokeBlueprint(freq))
}
