package synth

import (
	"encoding/binary"
	"math"
	"sync"
)

// voice is a rendered sound scheduled on the master bus.
type voice struct {
	start   int64
	samples []float32 // interleaved stereo
}

func (v *voice) end() int64 {
	return v.start + int64(len(v.samples)/2)
}

// Mixer sums scheduled voices into the master bus. It is read by the
// output on its own goroutine, so every method locks.
type Mixer struct {
	mu     sync.Mutex
	voices []*voice
	gain   float32
	frame  int64
	idle   chan struct{}
}

func newMixer(gain float64) *Mixer {
	m := &Mixer{gain: float32(gain)}
	m.idle = make(chan struct{})
	close(m.idle)
	return m
}

// Frame returns the number of frames mixed so far.
func (m *Mixer) Frame() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frame
}

// schedule adds samples starting at frame start. A start in the past
// plays immediately.
func (m *Mixer) schedule(start int64, samples []float32) {
	if len(samples) < 2 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if start < m.frame {
		start = m.frame
	}
	if len(m.voices) == 0 {
		m.idle = make(chan struct{})
	}
	m.voices = append(m.voices, &voice{start: start, samples: samples})
}

// Active returns the number of voices that have not finished.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Idle returns a channel closed once no voices remain.
func (m *Mixer) Idle() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.idle
}

// clear drops every voice.
func (m *Mixer) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voices = nil
	m.release()
}

func (m *Mixer) release() {
	select {
	case <-m.idle:
	default:
		close(m.idle)
	}
}

// Mix renders numFrames interleaved stereo frames into dst and advances
// the clock.
func (m *Mixer) Mix(dst []float32) {
	numFrames := len(dst) / 2
	clear(dst)

	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.frame
	to := from + int64(numFrames)
	live := m.voices[:0]
	for _, v := range m.voices {
		lo := max(v.start, from)
		hi := min(v.end(), to)
		for f := lo; f < hi; f++ {
			src := (f - v.start) * 2
			dstIdx := (f - from) * 2
			dst[dstIdx] += v.samples[src]
			dst[dstIdx+1] += v.samples[src+1]
		}
		if v.end() > to {
			live = append(live, v)
		}
	}
	clear(m.voices[len(live):])
	m.voices = live
	m.frame = to

	for i, s := range dst {
		dst[i] = clamp32(s * m.gain)
	}
	if len(m.voices) == 0 {
		m.release()
	}
}

// Read implements io.Reader for the device output: float32 little-endian
// stereo frames.
func (m *Mixer) Read(p []byte) (int, error) {
	frames := len(p) / 8
	buf := make([]float32, frames*2)
	m.Mix(buf)
	for i, s := range buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * 8, nil
}

func clamp32(x float32) float32 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}
