// Package logging builds the zerolog logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Options selects where and how much to log.
type Options struct {
	Level   string // debug, info, warn or error; empty means info
	File    string // append to this file instead of Out
	NoColor bool

	// Out receives console output when File is empty. Nil discards.
	Out io.Writer
}

// New builds a logger. The returned closer releases the log file, if any.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	out := opts.Out
	var closer io.Closer = nopCloser{}
	noColor := opts.NoColor
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), closer, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		out, closer, noColor = f, f, true
	}
	if out == nil {
		return zerolog.Nop(), closer, nil
	}

	w := zerolog.ConsoleWriter{Out: out, NoColor: noColor}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), closer, nil
}

// ParseLevel accepts zerolog level names, case-insensitively.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
