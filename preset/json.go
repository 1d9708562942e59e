package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// File is the JSON schema for user preset files.
type File struct {
	Presets []Entry `json:"presets"`
}

// Entry is one user preset. Category defaults to "User".
type Entry struct {
	Name        string  `json:"name"`
	Category    *string `json:"category"`
	Description string  `json:"description"`
	Command     string  `json:"command"`
}

// LoadJSON reads a preset file and returns the built-in library extended
// with its entries. User entries replace built-ins with the same name.
func LoadJSON(path string) (*Library, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	lib := Builtin()
	if err := ApplyFile(lib, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// ApplyFile validates every entry of f and adds it to dst.
func ApplyFile(dst *Library, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination library")
	}
	if f == nil {
		return nil
	}

	seen := make(map[string]int, len(f.Presets))
	for i, e := range f.Presets {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return fmt.Errorf("presets[%d].name must not be empty", i)
		}
		key := normalizeName(name)
		if j, ok := seen[key]; ok {
			return fmt.Errorf("presets[%d].name duplicates presets[%d]", i, j)
		}
		seen[key] = i

		category := User
		if e.Category != nil {
			c := strings.TrimSpace(*e.Category)
			if c == "" {
				return fmt.Errorf("presets[%d].category must not be empty when set", i)
			}
			category = Category(c)
		}
		p := Preset{
			Name:        name,
			Category:    category,
			Description: strings.TrimSpace(e.Description),
			Command:     strings.TrimSpace(e.Command),
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("presets[%d]: %w", i, err)
		}
		dst.put(p)
	}
	return nil
}
