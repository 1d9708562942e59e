// Package synth realizes blueprints as audio. An Engine owns the output,
// the master bus and the instrument cache; Compile turns one blueprint
// into a graph that renders a single voice.
package synth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-sfx/blueprint"
)

var (
	// ErrNotInitialized is returned by operations that need Initialize
	// first. It signals a host integration mistake, not bad user input.
	ErrNotInitialized = errors.New("synth: engine not initialized")
	ErrClosed         = errors.New("synth: engine closed")
	ErrNoDevice       = errors.New("synth: no audio device available")
)

func errRateLocked(have, want int) error {
	return fmt.Errorf("synth: audio device already opened at %d Hz, cannot reopen at %d Hz", have, want)
}

// Latency describes where time goes between scheduling and hearing.
type Latency struct {
	BaseLatency   time.Duration // one processing block
	OutputLatency time.Duration
	SampleRate    int
	Backend       string
}

func (l Latency) String() string {
	return fmt.Sprintf("Base latency: %.1f ms, output latency: %.1f ms, sample rate: %d Hz, backend: %s",
		ms(l.BaseLatency), ms(l.OutputLatency), l.SampleRate, l.Backend)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Engine plays blueprints on a shared master bus. Sounds overlap freely;
// nothing stops a voice early except Reset.
type Engine struct {
	mu          sync.Mutex
	cfg         Config
	out         Output
	mixer       *Mixer
	log         zerolog.Logger
	initialized bool
	closed      bool
	plays       int64

	instruments map[string]blueprint.Blueprint
	cache       map[string][]float32
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput replaces the default device output.
func WithOutput(o Output) Option {
	return func(e *Engine) { e.out = o }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an engine. No audio is produced before Initialize.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:         cfg,
		mixer:       newMixer(cfg.MasterGain),
		log:         zerolog.Nop(),
		instruments: builtinInstruments(),
		cache:       make(map[string][]float32),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Initialize opens the output. Calling it again is a no-op.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.initialized {
		return nil
	}
	if e.out == nil {
		out, err := NewDeviceOutput()
		if err != nil {
			return err
		}
		e.out = out
	}
	if err := e.out.Open(e.cfg.SampleRate, e.cfg.bufferDuration(), e.mixer); err != nil {
		return fmt.Errorf("synth: open %s output: %w", e.out.Backend(), err)
	}
	e.initialized = true
	e.log.Info().
		Int("sample_rate", e.cfg.SampleRate).
		Float64("master_gain", e.cfg.MasterGain).
		Str("backend", e.out.Backend()).
		Msg("audio engine initialized")
	return nil
}

// Shutdown closes the output. The engine cannot be used afterwards.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.mixer.clear()
	if !e.initialized {
		return nil
	}
	err := e.out.Close()
	e.log.Info().Msg("audio engine shut down")
	return err
}

func (e *Engine) ready() error {
	switch {
	case e.closed:
		return ErrClosed
	case !e.initialized:
		return ErrNotInitialized
	}
	return nil
}

// EnsureReady resumes a suspended output without waiting for it. A
// failure is logged and never delays scheduling.
func (e *Engine) EnsureReady() {
	e.mu.Lock()
	out := e.out
	ok := e.ready() == nil
	e.mu.Unlock()
	if !ok || !out.Suspended() {
		return
	}
	go func() {
		if err := out.Resume(); err != nil {
			e.log.Warn().Err(err).Msg("resume audio output")
		}
	}()
}

// PlayBlueprint compiles bp and schedules it at the current bus time.
func (e *Engine) PlayBlueprint(bp blueprint.Blueprint) error {
	e.mu.Lock()
	if err := e.ready(); err != nil {
		e.mu.Unlock()
		return err
	}
	now := e.mixer.Frame()
	e.plays++
	seed := e.cfg.Seed + e.plays
	e.mu.Unlock()

	e.EnsureReady()

	g, err := Compile(bp, e.cfg.SampleRate, seed)
	if err != nil {
		return err
	}
	samples, err := g.Render()
	if err != nil {
		return err
	}
	e.log.Debug().
		Int("sources", len(bp.Sources)).
		Interface("nodes", g.Kinds()).
		Float64("duration", bp.Duration).
		Int("frames", g.Len()).
		Msg("graph compiled")
	e.mixer.schedule(now, samples)
	return nil
}

// Render compiles bp and renders it offline as interleaved stereo with the
// master gain applied. It does not need Initialize.
func (e *Engine) Render(bp blueprint.Blueprint) ([]float32, error) {
	g, err := Compile(bp, e.cfg.SampleRate, e.cfg.Seed)
	if err != nil {
		return nil, err
	}
	samples, err := g.Render()
	if err != nil {
		return nil, err
	}
	gain := float32(e.cfg.MasterGain)
	for i := range samples {
		samples[i] *= gain
	}
	return samples, nil
}

// Reset drops every scheduled voice. The instrument cache is kept.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready(); err != nil {
		return err
	}
	dropped := e.mixer.Active()
	e.mixer.clear()
	e.log.Info().Int("voices", dropped).Msg("audio engine reset")
	return nil
}

// CurrentTime returns the bus clock in seconds.
func (e *Engine) CurrentTime() float64 {
	return float64(e.mixer.Frame()) / float64(e.cfg.SampleRate)
}

// Active returns the number of voices still playing.
func (e *Engine) Active() int {
	return e.mixer.Active()
}

// WaitIdle blocks until no voices remain or ctx is done.
func (e *Engine) WaitIdle(ctx context.Context) error {
	select {
	case <-e.mixer.Idle():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Latency reports the engine's timing.
func (e *Engine) Latency() (Latency, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ready(); err != nil {
		return Latency{}, err
	}
	base := time.Duration(e.cfg.BlockSize) * time.Second / time.Duration(e.cfg.SampleRate)
	return Latency{
		BaseLatency:   base,
		OutputLatency: e.out.Latency(),
		SampleRate:    e.cfg.SampleRate,
		Backend:       e.out.Backend(),
	}, nil
}

// LatencyReport is Latency as a single line of text.
func (e *Engine) LatencyReport() string {
	l, err := e.Latency()
	if err != nil {
		return "Latency unavailable: " + err.Error()
	}
	return l.String()
}

// SampleRate returns the engine rate.
func (e *Engine) SampleRate() int { return e.cfg.SampleRate }
