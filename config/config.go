// Package config loads the sfx-term YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName names the configuration directory.
const AppName = "sfx-term"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Audio backends.
const (
	BackendDevice = "device"
	BackendNull   = "null"
)

type Config struct {
	Audio    Audio    `yaml:"audio"`
	History  History  `yaml:"history"`
	Presets  Presets  `yaml:"presets"`
	Log      Log      `yaml:"log"`
	Terminal Terminal `yaml:"terminal"`
}

type Audio struct {
	SampleRate int     `yaml:"sample_rate"`
	BufferMs   int     `yaml:"buffer_ms"`
	MasterGain float64 `yaml:"master_gain"`
	Backend    string  `yaml:"backend"`
	Seed       int64   `yaml:"seed"`
}

type History struct {
	File  string `yaml:"file"`
	Limit int    `yaml:"limit"`
}

type Presets struct {
	File string `yaml:"file"` // optional user preset JSON
}

type Log struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	NoColor bool   `yaml:"no_color"`
}

type Terminal struct {
	Prompt          string `yaml:"prompt"`
	KeystrokeSounds bool   `yaml:"keystroke_sounds"`
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) Config {
	return Config{
		Audio: Audio{
			SampleRate: 48000,
			BufferMs:   40,
			MasterGain: 0.5,
			Backend:    BackendDevice,
			Seed:       1,
		},
		History: History{
			File:  filepath.Join(dir, "command-history.json"),
			Limit: 50,
		},
		Log:      Log{Level: "info"},
		Terminal: Terminal{Prompt: "> ", KeystrokeSounds: true},
	}
}

// Dir returns the configuration directory: $XDG_CONFIG_HOME/sfx-term, or
// the platform user config dir when XDG_CONFIG_HOME is unset.
func Dir() (string, error) {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, AppName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath is config.yaml inside Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
// Relative file paths in the config resolve against the file's directory.
func Load(path string) (Config, error) {
	dir := filepath.Dir(path)
	cfg := Default(dir)

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.History.File = resolve(dir, cfg.History.File)
	cfg.Presets.File = resolve(dir, cfg.Presets.File)
	cfg.Log.File = resolve(dir, cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	a := c.Audio
	if a.SampleRate < 8000 || a.SampleRate > 192000 {
		return invalid("audio.sample_rate must be in [8000,192000]")
	}
	if a.BufferMs < 0 {
		return invalid("audio.buffer_ms must be >= 0")
	}
	if a.MasterGain < 0 || a.MasterGain > 1 {
		return invalid("audio.master_gain must be in [0,1]")
	}
	switch a.Backend {
	case BackendDevice, BackendNull:
	default:
		return invalid("audio.backend must be %q or %q", BackendDevice, BackendNull)
	}
	if c.History.Limit < 1 {
		return invalid("history.limit must be > 0")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Save writes c as YAML, creating the directory.
func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return filepath.Join(dir, p)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
