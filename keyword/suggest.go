package keyword

import "strings"

// Names lists the top-level keywords offered for completion.
var Names = []string{
	"preset:", "osc:", "noise:", "filter:", "env:", "reverb:", "delay:",
	"dur:", "lfo:", "distort:", "pan:", "comp:", "set:",
}

// Suggest completes the keyword being typed. After "preset:" it offers
// quoted preset names containing the typed text; before the first colon
// it offers keyword names. Keyword parameters get no suggestions.
func Suggest(current string, presets Presets) []string {
	if rest, ok := strings.CutPrefix(current, "preset:"); ok {
		if presets == nil {
			return nil
		}
		search := strings.ToLower(strings.ReplaceAll(rest, `"`, ""))
		var out []string
		for _, p := range presets.All() {
			if strings.Contains(strings.ToLower(p.Name), search) {
				out = append(out, `preset:"`+p.Name+`"`)
			}
		}
		return out
	}
	if strings.Contains(current, ":") {
		return nil
	}
	var out []string
	for _, k := range Names {
		if strings.HasPrefix(k, current) {
			out = append(out, k)
		}
	}
	return out
}
