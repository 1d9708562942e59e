package keyword

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-sfx/blueprint"
)

// num returns parts[i] as a number, or def when it is missing or not
// numeric. An explicit zero is kept.
func num(parts []string, i int, def float64) float64 {
	if i >= len(parts) {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// word returns parts[i], or def when it is missing or empty.
func word(parts []string, i int, def string) string {
	if i >= len(parts) || parts[i] == "" {
		return def
	}
	return parts[i]
}

func waveform(parts []string, i int) (blueprint.Waveform, error) {
	name := word(parts, i, string(blueprint.Sine))
	w, ok := blueprint.ParseWaveform(name)
	if !ok {
		return "", fmt.Errorf("unknown waveform %q", name)
	}
	return w, nil
}

func handleOsc(parts []string, s *state) error {
	w, err := waveform(parts, 1)
	if err != nil {
		return err
	}
	s.clearSources()
	s.bp.Sources = append(s.bp.Sources, blueprint.Oscillator{
		Waveform:  w,
		Frequency: num(parts, 2, blueprint.DefaultFrequency),
		Detune:    num(parts, 3, 0),
	})
	s.add("+ Added Oscillator: %s", tail(parts))
	return nil
}

func handleNoise(parts []string, s *state) error {
	name := word(parts, 1, string(blueprint.White))
	c, ok := blueprint.ParseNoiseColor(name)
	if !ok {
		return fmt.Errorf("unknown noise type %q", name)
	}
	s.clearSources()
	s.bp.Sources = append(s.bp.Sources, blueprint.Noise{Color: c})
	s.add("+ Added Noise: %s", c)
	return nil
}

// filter:<kind>:<freq>:<q>:<gain>, or filter:iir:<b0,b1,..>:<a0,a1,..>
func handleFilter(parts []string, s *state) error {
	name := word(parts, 1, string(blueprint.Lowpass))
	if name == "iir" {
		f, err := parseIIR(parts)
		if err != nil {
			return err
		}
		s.bp.Filter = f
		s.add("+ Set Filter: %s", tail(parts))
		return nil
	}
	kind, ok := blueprint.ParseFilterKind(name)
	if !ok {
		return fmt.Errorf("unknown filter type %q", name)
	}
	def := blueprint.DefaultFilter()
	s.bp.Filter = blueprint.Biquad{
		Kind:      kind,
		Frequency: num(parts, 2, def.Frequency),
		Q:         num(parts, 3, def.Q),
		Gain:      num(parts, 4, def.Gain),
	}
	s.add("+ Set Filter: %s", tail(parts))
	return nil
}

func parseIIR(parts []string) (blueprint.IIR, error) {
	if len(parts) < 4 {
		return blueprint.IIR{}, fmt.Errorf("iir needs feedforward and feedback coefficient lists")
	}
	ff, err := coefficients(parts[2])
	if err != nil {
		return blueprint.IIR{}, fmt.Errorf("feedforward: %w", err)
	}
	fb, err := coefficients(parts[3])
	if err != nil {
		return blueprint.IIR{}, fmt.Errorf("feedback: %w", err)
	}
	if fb[0] == 0 {
		return blueprint.IIR{}, fmt.Errorf("feedback[0] must be non-zero")
	}
	return blueprint.IIR{Feedforward: ff, Feedback: fb}, nil
}

func coefficients(list string) ([]float64, error) {
	fields := strings.Split(list, ",")
	if len(fields) > blueprint.MaxIIROrder {
		return nil, fmt.Errorf("at most %d coefficients", blueprint.MaxIIROrder)
	}
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coefficient %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

func handleEnv(parts []string, s *state) error {
	s.sawEnv = true
	def := blueprint.DefaultEnvelope()
	s.bp.Envelope = blueprint.Envelope{
		Attack:  num(parts, 1, def.Attack),
		Decay:   num(parts, 2, def.Decay),
		Sustain: num(parts, 3, def.Sustain),
		Release: num(parts, 4, def.Release),
	}
	s.add("+ Set Envelope: %s", tail(parts))
	return nil
}

func handleReverb(parts []string, s *state) error {
	def := blueprint.DefaultReverb()
	s.bp.Reverb = &blueprint.Reverb{
		Decay:   num(parts, 1, def.Decay),
		Mix:     num(parts, 2, def.Mix),
		Reverse: word(parts, 3, "") == "true",
	}
	s.add("+ Set Reverb: %s", tail(parts))
	return nil
}

func handleDelay(parts []string, s *state) error {
	def := blueprint.DefaultDelay()
	s.bp.Delay = &blueprint.Delay{
		Time:     num(parts, 1, def.Time),
		Feedback: num(parts, 2, def.Feedback),
		Mix:      num(parts, 3, def.Mix),
	}
	s.add("+ Set Delay: %s", tail(parts))
	return nil
}

func handleDur(parts []string, s *state) error {
	s.sawDur = true
	s.bp.Duration = num(parts, 1, 0.5)
	s.add("+ Set Duration: %s", word(parts, 1, strconv.FormatFloat(s.bp.Duration, 'g', -1, 64)))
	return nil
}

func handleLFO(parts []string, s *state) error {
	w, err := waveform(parts, 1)
	if err != nil {
		return err
	}
	def := blueprint.DefaultLFO()
	target := def.Target
	if name := word(parts, 4, ""); name != "" {
		t, ok := blueprint.ParseLFOTarget(name)
		if !ok {
			return fmt.Errorf("unknown lfo target %q", name)
		}
		target = t
	}
	s.bp.LFO = &blueprint.LFO{
		Waveform: w,
		Rate:     num(parts, 2, def.Rate),
		Depth:    num(parts, 3, def.Depth),
		Target:   target,
	}
	s.add("+ Set LFO: %s", tail(parts))
	return nil
}

func handleDistort(parts []string, s *state) error {
	def := blueprint.DefaultDistortion()
	name := word(parts, 2, string(def.Oversample))
	o, ok := blueprint.ParseOversample(name)
	if !ok {
		return fmt.Errorf("unknown oversample %q", name)
	}
	s.bp.Distortion = &blueprint.Distortion{
		Amount:     num(parts, 1, def.Amount),
		Oversample: o,
	}
	s.add("+ Set Distortion: %s", tail(parts))
	return nil
}

// pan:<pan> or pan:positional:<x>:<y>:<z>
func handlePan(parts []string, s *state) error {
	if word(parts, 1, "") == "positional" {
		s.bp.Panner = blueprint.PositionalPanner{
			X: num(parts, 2, 0),
			Y: num(parts, 3, 0),
			Z: num(parts, 4, 0),
		}
		s.add("+ Set Panner: %s", tail(parts))
		return nil
	}
	p := blueprint.StereoPanner{Pan: num(parts, 1, 0)}
	s.bp.Panner = p
	s.add("+ Set Panner: %s", word(parts, 1, strconv.FormatFloat(p.Pan, 'g', -1, 64)))
	return nil
}

func handleComp(parts []string, s *state) error {
	def := blueprint.DefaultCompressor()
	s.bp.Compressor = &blueprint.Compressor{
		Threshold: num(parts, 1, def.Threshold),
		Knee:      num(parts, 2, def.Knee),
		Ratio:     num(parts, 3, def.Ratio),
		Attack:    num(parts, 4, def.Attack),
		Release:   num(parts, 5, def.Release),
	}
	s.add("+ Set Compressor: %s", tail(parts))
	return nil
}
