//go:build !headless

package synth

import (
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto supports a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoRate int
)

func otoContext(sampleRate int, buffer time.Duration) (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
			BufferSize:   buffer,
		})
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx = ctx
		otoRate = sampleRate
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoRate != sampleRate {
		return nil, errRateLocked(otoRate, sampleRate)
	}
	return otoCtx, nil
}

// DeviceOutput plays through the system audio device.
type DeviceOutput struct {
	mu        sync.Mutex
	ctx       *oto.Context
	player    *oto.Player
	buffer    time.Duration
	suspended bool
}

// NewDeviceOutput returns the oto-backed output.
func NewDeviceOutput() (Output, error) {
	return &DeviceOutput{}, nil
}

func (o *DeviceOutput) Open(sampleRate int, buffer time.Duration, src io.Reader) error {
	ctx, err := otoContext(sampleRate, buffer)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ctx = ctx
	o.buffer = buffer
	o.player = ctx.NewPlayer(src)
	if buffer > 0 {
		o.player.SetBufferSize(int(buffer.Seconds()*float64(sampleRate)) * 8)
	}
	o.player.Play()
	return nil
}

func (o *DeviceOutput) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctx == nil {
		return ErrNotInitialized
	}
	if err := o.ctx.Resume(); err != nil {
		return err
	}
	o.suspended = false
	if o.player != nil && !o.player.IsPlaying() {
		o.player.Play()
	}
	return nil
}

func (o *DeviceOutput) Suspended() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.suspended || o.player == nil || !o.player.IsPlaying()
}

func (o *DeviceOutput) Latency() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buffer
}

func (o *DeviceOutput) Backend() string { return "device" }

func (o *DeviceOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	if o.ctx != nil {
		_ = o.ctx.Suspend()
		o.suspended = true
	}
	return err
}
