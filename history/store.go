// Package history persists submitted command lines between sessions.
package history

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DefaultLimit caps the number of saved lines.
const DefaultLimit = 50

// Store reads and writes a JSON array of command strings.
type Store struct {
	path  string
	limit int
	log   zerolog.Logger
}

type Option func(*Store)

func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, limit: DefaultLimit, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

// Load returns the saved lines, oldest first. A missing or corrupt file
// gives an empty list; corruption is logged, never returned.
func (s *Store) Load() []string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("read history")
		}
		return nil
	}

	var lines []string
	if err := json.Unmarshal(b, &lines); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("history file is corrupt, starting empty")
		return nil
	}
	return s.tail(lines)
}

// Save writes the most recent lines, up to the limit. The file is
// replaced atomically.
func (s *Store) Save(lines []string) error {
	b, err := json.MarshalIndent(s.tail(lines), "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return err
	}
	s.log.Debug().Int("lines", min(len(lines), s.limit)).Str("path", s.path).Msg("history saved")
	return nil
}

func (s *Store) tail(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	if over := len(lines) - s.limit; over > 0 {
		lines = lines[over:]
	}
	return append([]string(nil), lines...)
}
