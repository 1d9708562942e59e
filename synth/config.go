package synth

import (
	"fmt"
	"time"
)

// Config holds engine settings.
type Config struct {
	SampleRate int
	MasterGain float64
	BufferMs   int   // device buffer, reported as output latency
	Seed       int64 // noise and reverb IR seed
	BlockSize  int   // frames processed per graph call when streaming
}

// DefaultConfig returns the settings used by the terminal.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		MasterGain: 0.5,
		BufferMs:   40,
		Seed:       1,
		BlockSize:  128,
	}
}

func (c Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample rate must be in [8000,192000]: %d", c.SampleRate)
	}
	if c.MasterGain < 0 || c.MasterGain > 1 {
		return fmt.Errorf("master gain must be in [0,1]")
	}
	if c.BufferMs < 0 {
		return fmt.Errorf("buffer ms must be >= 0")
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("block size must be > 0")
	}
	return nil
}

func (c Config) bufferDuration() time.Duration {
	return time.Duration(c.BufferMs) * time.Millisecond
}
