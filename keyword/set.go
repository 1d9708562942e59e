package keyword

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-sfx/blueprint"
)

type setError struct{ msg string }

func (e *setError) Error() string { return e.msg }

func setErrorf(format string, args ...any) error {
	return &setError{msg: fmt.Sprintf(format, args...)}
}

var errBadValue = errors.New("bad value")

// leaf assigns a raw keyword value to one scalar field.
type leaf func(raw string) error

// object is a settable node of the blueprint: its scalar fields plus a
// commit hook for nodes held by value.
type object struct {
	fields map[string]leaf
	commit func()
}

// set handles set:<dotted.path>:<value>. The path is resolved against a
// fixed set of blueprint parts; missing optional parts are created with
// their defaults first.
func (s *state) set(parts []string) {
	if len(parts) < 3 || parts[1] == "" {
		s.add("! Invalid 'set' usage. Format: set:path:value")
		return
	}
	path := parts[1]
	raw := strings.Join(parts[2:], ":")
	if err := s.assign(path, raw); err != nil {
		s.add("! %v", err)
		return
	}
	s.add("+ Set %s = %s", path, raw)
}

func (s *state) assign(path, raw string) error {
	segs := strings.Split(path, ".")
	root := segs[0]

	if root == "duration" {
		if len(segs) > 1 {
			return setErrorf("Cannot set property on non-object at path: %s", path)
		}
		if number(&s.bp.Duration)(raw) != nil {
			return setErrorf("Invalid value '%s' for %s", raw, path)
		}
		return nil
	}

	if root == "sources" {
		if len(segs) < 2 {
			return setErrorf("Cannot replace object at path: %s", path)
		}
		i, err := strconv.Atoi(segs[1])
		if err != nil || i < 0 || i >= len(s.bp.Sources) {
			return setErrorf("Path not found: '%s'. Parent '%s' does not exist.", path, segs[1])
		}
		return setField(s.source(i), path, segs[2:], raw)
	}

	if len(segs) < 2 {
		if _, known := partNames[root]; known {
			return setErrorf("Cannot replace object at path: %s", path)
		}
		return setErrorf("Path not found: '%s'. Parent '%s' does not exist.", path, root)
	}
	obj, ok := s.part(root)
	if !ok {
		return setErrorf("Path not found: '%s'. Parent '%s' does not exist.", path, root)
	}
	return setField(obj, path, segs[1:], raw)
}

// setField assigns raw to the single remaining path segment of obj.
func setField(obj object, path string, rest []string, raw string) error {
	if len(rest) == 0 {
		return setErrorf("Cannot replace object at path: %s", path)
	}
	f, ok := obj.fields[rest[0]]
	if !ok {
		return setErrorf("Unknown property '%s' at path: %s", rest[0], path)
	}
	if len(rest) > 1 {
		return setErrorf("Cannot set property on non-object at path: %s", path)
	}
	if err := f(strings.TrimSpace(raw)); err != nil {
		return setErrorf("Invalid value '%s' for %s", raw, path)
	}
	if obj.commit != nil {
		obj.commit()
	}
	return nil
}

var partNames = map[string]struct{}{
	"envelope":   {},
	"filter":     {},
	"reverb":     {},
	"delay":      {},
	"lfo":        {},
	"distortion": {},
	"panner":     {},
	"compressor": {},
}

// part resolves a top-level blueprint part, creating a missing optional
// part with its default values.
func (s *state) part(name string) (object, bool) {
	bp := &s.bp
	switch name {
	case "envelope":
		e := &bp.Envelope
		return object{fields: map[string]leaf{
			"attack":  number(&e.Attack),
			"decay":   number(&e.Decay),
			"sustain": number(&e.Sustain),
			"release": number(&e.Release),
		}}, true

	case "filter":
		if bp.Filter == nil {
			bp.Filter = blueprint.DefaultFilter()
			s.add("i Initialized default filter")
		}
		f, ok := bp.Filter.(blueprint.Biquad)
		if !ok {
			// IIR coefficients are only set through filter:iir.
			return object{}, true
		}
		kind := func(raw string) error {
			k, ok := blueprint.ParseFilterKind(raw)
			if !ok {
				return errBadValue
			}
			f.Kind = k
			return nil
		}
		return object{
			fields: map[string]leaf{
				"type":       kind,
				"filtertype": kind,
				"kind":       kind,
				"frequency":  number(&f.Frequency),
				"q":          number(&f.Q),
				"gain":       number(&f.Gain),
			},
			commit: func() { bp.Filter = f },
		}, true

	case "reverb":
		if bp.Reverb == nil {
			r := blueprint.DefaultReverb()
			bp.Reverb = &r
			s.add("i Initialized default reverb")
		}
		r := bp.Reverb
		return object{fields: map[string]leaf{
			"decay":   number(&r.Decay),
			"mix":     number(&r.Mix),
			"reverse": boolean(&r.Reverse),
		}}, true

	case "delay":
		if bp.Delay == nil {
			d := blueprint.DefaultDelay()
			bp.Delay = &d
			s.add("i Initialized default delay")
		}
		d := bp.Delay
		return object{fields: map[string]leaf{
			"delaytime": number(&d.Time),
			"time":      number(&d.Time),
			"feedback":  number(&d.Feedback),
			"mix":       number(&d.Mix),
		}}, true

	case "lfo":
		if bp.LFO == nil {
			l := blueprint.DefaultLFO()
			bp.LFO = &l
			s.add("i Initialized default lfo")
		}
		l := bp.LFO
		target := func(raw string) error {
			t, ok := blueprint.ParseLFOTarget(raw)
			if !ok {
				return errBadValue
			}
			l.Target = t
			return nil
		}
		return object{fields: map[string]leaf{
			"type":      waveformLeaf(&l.Waveform),
			"waveform":  waveformLeaf(&l.Waveform),
			"frequency": number(&l.Rate),
			"rate":      number(&l.Rate),
			"depth":     number(&l.Depth),
			"affects":   target,
			"target":    target,
		}}, true

	case "distortion":
		if bp.Distortion == nil {
			d := blueprint.DefaultDistortion()
			bp.Distortion = &d
			s.add("i Initialized default distortion")
		}
		d := bp.Distortion
		return object{fields: map[string]leaf{
			"amount": number(&d.Amount),
			"oversample": func(raw string) error {
				o, ok := blueprint.ParseOversample(raw)
				if !ok {
					return errBadValue
				}
				d.Oversample = o
				return nil
			},
		}}, true

	case "panner":
		if bp.Panner == nil {
			bp.Panner = blueprint.DefaultPanner()
			s.add("i Initialized default panner")
		}
		switch p := bp.Panner.(type) {
		case blueprint.StereoPanner:
			return object{
				fields: map[string]leaf{"pan": number(&p.Pan)},
				commit: func() { bp.Panner = p },
			}, true
		case blueprint.PositionalPanner:
			return object{
				fields: map[string]leaf{
					"x": number(&p.X),
					"y": number(&p.Y),
					"z": number(&p.Z),
				},
				commit: func() { bp.Panner = p },
			}, true
		}
		return object{}, true

	case "compressor":
		if bp.Compressor == nil {
			c := blueprint.DefaultCompressor()
			bp.Compressor = &c
			s.add("i Initialized default compressor")
		}
		c := bp.Compressor
		return object{fields: map[string]leaf{
			"threshold": number(&c.Threshold),
			"knee":      number(&c.Knee),
			"ratio":     number(&c.Ratio),
			"attack":    number(&c.Attack),
			"release":   number(&c.Release),
		}}, true
	}
	return object{}, false
}

// source returns the settable fields of source i. Sources are stored by
// value, so changes are written back on commit.
func (s *state) source(i int) object {
	switch src := s.bp.Sources[i].(type) {
	case blueprint.Oscillator:
		wave := waveformLeaf(&src.Waveform)
		return object{
			fields: map[string]leaf{
				"frequency":      number(&src.Frequency),
				"detune":         number(&src.Detune),
				"oscillatortype": wave,
				"waveform":       wave,
				"type":           wave,
			},
			commit: func() { s.bp.Sources[i] = src },
		}
	case blueprint.Noise:
		color := func(raw string) error {
			c, ok := blueprint.ParseNoiseColor(raw)
			if !ok {
				return errBadValue
			}
			src.Color = c
			return nil
		}
		return object{
			fields: map[string]leaf{
				"noisetype": color,
				"color":     color,
				"type":      color,
			},
			commit: func() { s.bp.Sources[i] = src },
		}
	}
	return object{}
}

func number(dst *float64) leaf {
	return func(raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return errBadValue
		}
		*dst = v
		return nil
	}
}

func boolean(dst *bool) leaf {
	return func(raw string) error {
		switch raw {
		case "true":
			*dst = true
		case "false":
			*dst = false
		default:
			return errBadValue
		}
		return nil
	}
}

func waveformLeaf(dst *blueprint.Waveform) leaf {
	return func(raw string) error {
		w, ok := blueprint.ParseWaveform(raw)
		if !ok {
			return errBadValue
		}
		*dst = w
		return nil
	}
}
