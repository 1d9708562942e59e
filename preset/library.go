package preset

import (
	"fmt"
	"strings"
)

// Category groups presets in listings.
type Category string

const (
	Percussion    Category = "Percussion"
	SoundEffects  Category = "Sound Effects"
	Instruments   Category = "Instruments"
	PadsAndDrones Category = "Pads & Drones"
	Abstract      Category = "Abstract"
	User          Category = "User"
)

// CommandPrefix is the generative command every preset command starts with.
const CommandPrefix = "raw"

// Preset is a named keyword string. Command is written exactly as a user
// would type it, including the leading "raw".
type Preset struct {
	Name        string
	Category    Category
	Description string
	Command     string
}

// Keywords returns the keyword tail of the preset command.
func (p Preset) Keywords() []string {
	fields := strings.Fields(p.Command)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// Validate checks that the preset can be resolved and replayed.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if strings.ContainsRune(p.Name, '"') {
		return fmt.Errorf("name must not contain quotes")
	}
	fields := strings.Fields(p.Command)
	if len(fields) < 2 || fields[0] != CommandPrefix {
		return fmt.Errorf("command must start with %q followed by keywords", CommandPrefix+" ")
	}
	return nil
}

// Library is an ordered preset table with case-insensitive lookup.
type Library struct {
	presets []Preset
}

// NewLibrary builds a library from presets. Later entries replace earlier
// ones with the same name.
func NewLibrary(presets ...Preset) *Library {
	l := &Library{}
	for _, p := range presets {
		l.put(p)
	}
	return l
}

// Builtin returns a library holding the built-in presets.
func Builtin() *Library {
	return NewLibrary(builtin...)
}

// Add validates p and inserts it, replacing a preset with the same name.
func (l *Library) Add(p Preset) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	if p.Category == "" {
		p.Category = User
	}
	l.put(p)
	return nil
}

func (l *Library) put(p Preset) {
	key := normalizeName(p.Name)
	for i := range l.presets {
		if normalizeName(l.presets[i].Name) == key {
			l.presets[i] = p
			return
		}
	}
	l.presets = append(l.presets, p)
}

// Find resolves name by case-insensitive exact match. Double quotes and
// surrounding whitespace in name are ignored.
func (l *Library) Find(name string) (Preset, bool) {
	key := normalizeName(name)
	if key == "" {
		return Preset{}, false
	}
	for _, p := range l.presets {
		if normalizeName(p.Name) == key {
			return p, true
		}
	}
	return Preset{}, false
}

// All returns every preset in table order.
func (l *Library) All() []Preset {
	return append([]Preset(nil), l.presets...)
}

// Len returns the number of presets.
func (l *Library) Len() int {
	return len(l.presets)
}

// Search returns presets whose name, description or category contains term,
// ignoring case.
func (l *Library) Search(term string) []Preset {
	term = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(term, `"`, "")))
	var out []Preset
	for _, p := range l.presets {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(string(p.Category)), term) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns categories in order of first appearance.
func (l *Library) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, p := range l.presets {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// ByCategory returns the presets of c in table order.
func (l *Library) ByCategory(c Category) []Preset {
	var out []Preset
	for _, p := range l.presets {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, `"`, "")))
}
