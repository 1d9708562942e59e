package blueprint

import (
	"encoding/json"
	"fmt"
)

// The JSON form mirrors the discriminated shapes used by the terminal UI:
// sources, filters and panners carry a "type" field.

type jsonSource struct {
	Type           string     `json:"type"`
	OscillatorType Waveform   `json:"oscillatorType,omitempty"`
	Frequency      float64    `json:"frequency,omitempty"`
	Detune         float64    `json:"detune,omitempty"`
	NoiseType      NoiseColor `json:"noiseType,omitempty"`
}

type jsonFilter struct {
	Type        string     `json:"type"`
	FilterType  FilterKind `json:"filterType,omitempty"`
	Frequency   float64    `json:"frequency,omitempty"`
	Q           float64    `json:"Q,omitempty"`
	Gain        float64    `json:"gain,omitempty"`
	Feedforward []float64  `json:"feedforward,omitempty"`
	Feedback    []float64  `json:"feedback,omitempty"`
}

type jsonPanner struct {
	Type string  `json:"type"`
	Pan  float64 `json:"pan,omitempty"`
	X    float64 `json:"positionX,omitempty"`
	Y    float64 `json:"positionY,omitempty"`
	Z    float64 `json:"positionZ,omitempty"`
}

type jsonLFOTarget struct {
	Target TargetNode  `json:"target"`
	Param  TargetParam `json:"param,omitempty"`
}

type jsonLFO struct {
	Type      Waveform        `json:"type"`
	Frequency float64         `json:"frequency"`
	Depth     float64         `json:"depth"`
	Affects   json.RawMessage `json:"affects"`
}

type jsonDelay struct {
	DelayTime float64 `json:"delayTime"`
	Feedback  float64 `json:"feedback"`
	Mix       float64 `json:"mix"`
}

type jsonBlueprint struct {
	Sources    []jsonSource `json:"sources"`
	Envelope   Envelope     `json:"envelope"`
	Filter     *jsonFilter  `json:"filter,omitempty"`
	LFO        *jsonLFO     `json:"lfo,omitempty"`
	Delay      *jsonDelay   `json:"delay,omitempty"`
	Reverb     *Reverb      `json:"reverb,omitempty"`
	Distortion *Distortion  `json:"distortion,omitempty"`
	Panner     *jsonPanner  `json:"panner,omitempty"`
	Compressor *Compressor  `json:"compressor,omitempty"`
	Duration   float64      `json:"duration"`
}

// MarshalJSON encodes the blueprint with type discriminators.
func (b Blueprint) MarshalJSON() ([]byte, error) {
	out := jsonBlueprint{
		Envelope:   b.Envelope,
		Reverb:     b.Reverb,
		Distortion: b.Distortion,
		Compressor: b.Compressor,
		Duration:   b.Duration,
	}
	for _, s := range b.Sources {
		switch s := s.(type) {
		case Oscillator:
			out.Sources = append(out.Sources, jsonSource{Type: "oscillator", OscillatorType: s.Waveform, Frequency: s.Frequency, Detune: s.Detune})
		case Noise:
			out.Sources = append(out.Sources, jsonSource{Type: "noise", NoiseType: s.Color})
		default:
			return nil, fmt.Errorf("unsupported source %T", s)
		}
	}
	switch f := b.Filter.(type) {
	case nil:
	case Biquad:
		out.Filter = &jsonFilter{Type: "biquad", FilterType: f.Kind, Frequency: f.Frequency, Q: f.Q, Gain: f.Gain}
	case IIR:
		out.Filter = &jsonFilter{Type: "iir", Feedforward: f.Feedforward, Feedback: f.Feedback}
	default:
		return nil, fmt.Errorf("unsupported filter %T", f)
	}
	switch p := b.Panner.(type) {
	case nil:
	case StereoPanner:
		out.Panner = &jsonPanner{Type: "stereo", Pan: p.Pan}
	case PositionalPanner:
		out.Panner = &jsonPanner{Type: "3d", X: p.X, Y: p.Y, Z: p.Z}
	default:
		return nil, fmt.Errorf("unsupported panner %T", p)
	}
	if b.LFO != nil {
		affects, err := json.Marshal(jsonLFOTarget{Target: b.LFO.Target.Node, Param: b.LFO.Target.Param})
		if err != nil {
			return nil, err
		}
		out.LFO = &jsonLFO{Type: b.LFO.Waveform, Frequency: b.LFO.Rate, Depth: b.LFO.Depth, Affects: affects}
	}
	if b.Delay != nil {
		out.Delay = &jsonDelay{DelayTime: b.Delay.Time, Feedback: b.Delay.Feedback, Mix: b.Delay.Mix}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the discriminated form. The LFO "affects" field may
// be a structured object or a legacy flat string.
func (b *Blueprint) UnmarshalJSON(data []byte) error {
	var in jsonBlueprint
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := Blueprint{
		Envelope:   in.Envelope,
		Reverb:     in.Reverb,
		Distortion: in.Distortion,
		Compressor: in.Compressor,
		Duration:   in.Duration,
	}
	for i, s := range in.Sources {
		switch s.Type {
		case "oscillator":
			out.Sources = append(out.Sources, Oscillator{Waveform: s.OscillatorType, Frequency: s.Frequency, Detune: s.Detune})
		case "noise":
			out.Sources = append(out.Sources, Noise{Color: s.NoiseType})
		default:
			return fmt.Errorf("sources[%d]: unknown type %q", i, s.Type)
		}
	}
	if f := in.Filter; f != nil {
		switch f.Type {
		case "biquad":
			out.Filter = Biquad{Kind: f.FilterType, Frequency: f.Frequency, Q: f.Q, Gain: f.Gain}
		case "iir":
			out.Filter = IIR{Feedforward: f.Feedforward, Feedback: f.Feedback}
		default:
			return fmt.Errorf("filter: unknown type %q", f.Type)
		}
	}
	if p := in.Panner; p != nil {
		switch p.Type {
		case "stereo":
			out.Panner = StereoPanner{Pan: p.Pan}
		case "3d":
			out.Panner = PositionalPanner{X: p.X, Y: p.Y, Z: p.Z}
		default:
			return fmt.Errorf("panner: unknown type %q", p.Type)
		}
	}
	if l := in.LFO; l != nil {
		target, err := decodeLFOTarget(l.Affects)
		if err != nil {
			return err
		}
		out.LFO = &LFO{Waveform: l.Type, Rate: l.Frequency, Depth: l.Depth, Target: target}
	}
	if d := in.Delay; d != nil {
		out.Delay = &Delay{Time: d.DelayTime, Feedback: d.Feedback, Mix: d.Mix}
	}
	*b = out
	return nil
}

func decodeLFOTarget(raw json.RawMessage) (LFOTarget, error) {
	if len(raw) == 0 {
		return SourceFrequency, nil
	}
	var flat string
	if err := json.Unmarshal(raw, &flat); err == nil {
		t, ok := ParseLFOTarget(flat)
		if !ok {
			return LFOTarget{}, fmt.Errorf("lfo.affects: unknown target %q", flat)
		}
		return t, nil
	}
	var structured jsonLFOTarget
	if err := json.Unmarshal(raw, &structured); err != nil {
		return LFOTarget{}, fmt.Errorf("lfo.affects: %w", err)
	}
	t := LFOTarget{Node: structured.Target, Param: structured.Param}
	if !t.Valid() {
		return LFOTarget{}, fmt.Errorf("lfo.affects: unknown target %q", t)
	}
	return t, nil
}
