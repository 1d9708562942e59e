// Package keyword builds sound blueprints from the colon-delimited keyword
// language of the raw command, e.g. "osc:sine:440 env:0.01:0.1:0:0.2".
package keyword

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/preset"
)

// Presets resolves preset names for the preset: keyword.
type Presets interface {
	Find(name string) (preset.Preset, bool)
	All() []preset.Preset
}

// Result is a built blueprint plus one report line per processed keyword.
type Result struct {
	Blueprint blueprint.Blueprint
	Report    []string
}

type handler func(parts []string, s *state) error

type state struct {
	bp             blueprint.Blueprint
	report         []string
	sourcesCleared bool

	// Set by the env and dur handlers, under any alias.
	sawEnv bool
	sawDur bool
}

// clearSources drops the default source list the first time a source
// keyword is seen.
func (s *state) clearSources() {
	if !s.sourcesCleared {
		s.bp.Sources = nil
		s.sourcesCleared = true
	}
}

func (s *state) add(format string, args ...any) {
	s.report = append(s.report, fmt.Sprintf(format, args...))
}

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"osc":     handleOsc,
		"noise":   handleNoise,
		"filter":  handleFilter,
		"env":     handleEnv,
		"reverb":  handleReverb,
		"delay":   handleDelay,
		"dur":     handleDur,
		"lfo":     handleLFO,
		"distort": handleDistort,
		"pan":     handlePan,
		"comp":    handleComp,
	}
	for alias, name := range map[string]string{
		"oscillator": "osc",
		"envelope":   "env",
		"duration":   "dur",
		"distortion": "distort",
		"panner":     "pan",
		"compressor": "comp",
	} {
		handlers[alias] = handlers[name]
	}
}

// Build applies keywords in order to the default blueprint. A preset:
// keyword anywhere in the list is resolved first and its keywords are
// spliced in front of the remaining ones. Build never fails: problems are
// reported as "!" lines and the offending keyword is skipped.
func Build(keywords []string, presets Presets) Result {
	s := &state{bp: blueprint.Default()}
	stream := s.expandPreset(keywords, presets)

	for _, kw := range stream {
		parts := strings.Split(strings.ToLower(kw), ":")
		key := parts[0]

		switch key {
		case "set":
			s.set(parts)
			continue
		case "preset":
			s.add("! Ignored extra preset: %s", kw)
			continue
		}
		h, ok := handlers[key]
		if !ok {
			s.add("! Unknown keyword: %s", kw)
			continue
		}
		if err := h(parts, s); err != nil {
			s.add("! Error parsing keyword: %s - %v", kw, err)
		}
	}

	if s.sawEnv && !s.sawDur {
		e := s.bp.Envelope
		s.bp.Duration = e.Attack + e.Decay + e.Release + 0.1
		s.add("i Auto-calculated duration: %.2fs", s.bp.Duration)
	}

	return Result{Blueprint: s.bp, Report: s.report}
}

func (s *state) expandPreset(keywords []string, presets Presets) []string {
	idx := -1
	for i, kw := range keywords {
		if strings.HasPrefix(strings.ToLower(kw), "preset:") {
			idx = i
			break
		}
	}
	if idx < 0 {
		return keywords
	}

	name := keywords[idx][len("preset:"):]
	name = strings.TrimSpace(strings.ReplaceAll(name, `"`, ""))
	rest := make([]string, 0, len(keywords)-1)
	rest = append(rest, keywords[:idx]...)
	rest = append(rest, keywords[idx+1:]...)

	var p preset.Preset
	found := false
	if presets != nil {
		p, found = presets.Find(name)
	}
	if !found {
		s.add("! Preset not found: %s", name)
		return rest
	}
	s.add("+ Loaded preset: %s", p.Name)
	return append(p.Keywords(), rest...)
}

func tail(parts []string) string {
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], ":")
}
