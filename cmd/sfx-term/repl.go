package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cwbudde/algo-sfx/command"
	"github.com/cwbudde/algo-sfx/synth"
)

const banner = `sfx-term %s. Every command makes a sound.
Type "help" for commands, Tab to complete, Ctrl-D to quit.
`

const (
	keyCtrlC     = 0x03
	keyTab       = '\t'
	keyEscape    = 0x1b
	keyBackspace = 0x7f
)

var errInterrupted = errors.New("interrupted")

func runRepl(cmd *cobra.Command, _ []string) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal, use \"sfx-term run\" instead")
	}

	a, err := newApp(cmd, stderrUnlessInteractive(true))
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.saveHistory()

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	s := newSession(a, os.Stdin, os.Stdout)
	return s.loop()
}

// session is one interactive terminal run.
type session struct {
	app       *app
	term      *term.Terminal
	predictor *command.Predictor
	latency   bool
}

func newSession(a *app, in io.Reader, out io.Writer) *session {
	s := &session{
		app:       a,
		predictor: command.NewPredictor(a.proc.Registry()),
	}
	tap := &keyTap{r: in, onKey: s.key}
	s.term = term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{tap, out}, a.cfg.Terminal.Prompt)
	s.term.AutoCompleteCallback = s.complete
	s.term.History = historyView{a.proc.History()}
	return s
}

func (s *session) loop() error {
	s.printBanner()
	for {
		line, err := s.term.ReadLine()
		if errors.Is(err, io.EOF) || errors.Is(err, errInterrupted) {
			fmt.Fprintln(s.term)
			return nil
		}
		if err != nil {
			return err
		}
		s.predictor.Reset()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.handle(s.app.proc.Process(line))
	}
}

func (s *session) handle(res command.Result) {
	for _, act := range res.Actions {
		switch act {
		case command.ClearHistory:
			fmt.Fprint(s.term, "\x1b[2J\x1b[H")
		case command.ToggleLatencyWidget:
			s.latency = !s.latency
		case command.Reboot:
			if err := s.app.engine.Reset(); err != nil {
				s.app.log.Warn().Err(err).Msg("reset engine")
			}
			s.app.proc.ResetSession()
			fmt.Fprint(s.term, "\x1b[2J\x1b[H")
			s.printBanner()
		}
	}
	if res.Output != "" {
		fmt.Fprintln(s.term, res.Output)
	}
	if s.latency {
		fmt.Fprintln(s.term, s.app.engine.LatencyReport())
	}
}

func (s *session) printBanner() {
	fmt.Fprintf(s.term, banner, version)
	if s.app.silent() {
		fmt.Fprintln(s.term, "No audio device, sounds are muted.")
	}
}

// complete handles Tab. Every other key that reaches the terminal's
// default branch leaves the line alone.
func (s *session) complete(line string, pos int, key rune) (string, int, bool) {
	if key != keyTab {
		return "", 0, false
	}
	p := s.predictor.Predict(line[:pos])
	if len(p.Candidates) > 0 && p.Line == line[:pos] {
		fmt.Fprintln(s.term, strings.Join(p.Candidates, "  "))
	}
	if p.Line == line[:pos] {
		return line, pos, true
	}
	return p.Line + line[pos:], len(p.Line), true
}

// key sees every key just before the terminal does. It leaves prediction
// on anything but Tab, arrows and other escape keys included, and plays the
// key sounds.
func (s *session) key(r rune) {
	if r == keyTab {
		return
	}
	s.predictor.Reset()
	if r == keyEscape || !s.app.cfg.Terminal.KeystrokeSounds {
		return
	}
	var err error
	switch {
	case r == keyBackspace:
		err = s.app.engine.TriggerInstrument(synth.InstrumentBackspace)
	case r >= ' ':
		err = s.app.engine.PlayKeystroke(synth.KeystrokeFrequency(r))
	}
	if err != nil {
		s.app.log.Debug().Err(err).Msg("key sound")
	}
}

// keyTap reports typed keys from a raw-mode reader. It hands the terminal
// one key per Read so each report happens just before the terminal handles
// that key. Escape sequences are reported once as keyEscape; Ctrl-C ends
// input.
type keyTap struct {
	r     io.Reader
	onKey func(rune)

	buf     [256]byte
	pending []byte
	err     error
}

func (k *keyTap) Read(p []byte) (int, error) {
	if len(k.pending) == 0 {
		if k.err != nil {
			return 0, k.err
		}
		n, err := k.r.Read(k.buf[:])
		k.pending, k.err = k.buf[:n], err
		if n == 0 {
			return 0, err
		}
	}

	key := k.pending[:min(keyLen(k.pending), len(p))]
	switch key[0] {
	case keyCtrlC:
		k.pending = nil
		return 0, errInterrupted
	case keyEscape:
		k.onKey(keyEscape)
	default:
		r, _ := utf8.DecodeRune(key)
		k.onKey(r)
	}
	n := copy(p, key)
	k.pending = k.pending[n:]
	return n, nil
}

// keyLen is the byte length of the key starting at b: one rune, or a
// whole CSI/SS3 escape sequence.
func keyLen(b []byte) int {
	if b[0] != keyEscape {
		_, size := utf8.DecodeRune(b)
		return size
	}
	if len(b) < 2 {
		return 1
	}
	switch b[1] {
	case '[':
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				return i + 1
			}
		}
		return len(b)
	case 'O':
		return min(3, len(b))
	}
	return 2
}

// historyView exposes the processor's history to the terminal for
// Up/Down recall. The processor records lines itself, so Add is a no-op.
type historyView struct {
	h *command.History
}

func (historyView) Add(string) {}

func (v historyView) Len() int { return v.h.Len() }

func (v historyView) At(idx int) string { return v.h.At(idx) }
