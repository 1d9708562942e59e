// Package wavio reads and writes 16-bit PCM WAV files for the renderer and
// the IR generator.
package wavio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ErrChannelMismatch is returned when left and right buffers differ in length.
var ErrChannelMismatch = errors.New("wavio: left/right length mismatch")

// Clip is decoded audio as interleaved float32 frames.
type Clip struct {
	SampleRate int
	Channels   int
	Data       []float32
}

// Frames returns the number of frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Data) / c.Channels
}

// Mono averages all channels.
func (c *Clip) Mono() []float64 {
	n := c.Frames()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for ch := 0; ch < c.Channels; ch++ {
			sum += float64(c.Data[i*c.Channels+ch])
		}
		out[i] = sum / float64(c.Channels)
	}
	return out
}

// Read decodes a WAV file into a Clip with samples scaled to [-1, 1].
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid wav buffer: %s", path)
	}
	data := make([]float32, len(buf.Data))
	copy(data, buf.Data)
	return &Clip{
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		Data:       data,
	}, nil
}

// Resample converts mono samples between rates. Equal rates return in.
func Resample(in []float64, fromRate int, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return in, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}

// WriteStereoLR interleaves left and right and writes them to path.
func WriteStereoLR(path string, left []float32, right []float32, sampleRate int) error {
	if len(left) != len(right) {
		return ErrChannelMismatch
	}
	data := make([]float32, len(left)*2)
	for i := range left {
		data[i*2] = left[i]
		data[i*2+1] = right[i]
	}
	return WriteStereo(path, data, sampleRate)
}

// WriteStereo writes interleaved stereo samples in [-1, 1] as 16-bit PCM,
// creating parent directories as needed.
func WriteStereo(path string, samples []float32, sampleRate int) error {
	return write(path, samples, sampleRate, 2)
}

// WriteMono writes mono samples in [-1, 1] as 16-bit PCM.
func WriteMono(path string, samples []float32, sampleRate int) error {
	return write(path, samples, sampleRate, 1)
}

func write(path string, samples []float32, sampleRate, channels int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: channels,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
