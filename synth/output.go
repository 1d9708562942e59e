package synth

import (
	"io"
	"sync"
	"time"
)

// Output pulls mixed audio from the engine and delivers it somewhere.
type Output interface {
	// Open starts pulling float32LE stereo frames from src.
	Open(sampleRate int, buffer time.Duration, src io.Reader) error
	Resume() error
	Suspended() bool
	// Latency is the extra delay the output adds after mixing.
	Latency() time.Duration
	Backend() string
	Close() error
}

// NullOutput discards audio. Its clock only moves when Advance is called,
// which makes engine timing deterministic in tests and offline tools.
type NullOutput struct {
	mu        sync.Mutex
	src       io.Reader
	suspended bool
	buf       []byte
}

// NewNullOutput returns an output that starts suspended, like a device
// that has not been resumed yet.
func NewNullOutput() *NullOutput {
	return &NullOutput{suspended: true}
}

func (o *NullOutput) Open(_ int, _ time.Duration, src io.Reader) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.src = src
	return nil
}

func (o *NullOutput) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.suspended = false
	return nil
}

func (o *NullOutput) Suspended() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.suspended
}

func (o *NullOutput) Latency() time.Duration { return 0 }

func (o *NullOutput) Backend() string { return "null" }

func (o *NullOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.src = nil
	return nil
}

// Advance pulls frames from the source as a device would.
func (o *NullOutput) Advance(frames int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.src == nil || frames <= 0 {
		return nil
	}
	if cap(o.buf) < frames*8 {
		o.buf = make([]byte, frames*8)
	}
	_, err := io.ReadFull(o.src, o.buf[:frames*8])
	return err
}
