// Package analysis measures rendered audio: levels, dominant pitch and
// decay rate.
package analysis

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	algofft "github.com/cwbudde/algo-fft"
)

// Envelope analysis frame and hop, in samples.
const (
	envFrame = 256
	envHop   = 128
)

// maxSpectrumSize bounds the FFT used for pitch detection.
const maxSpectrumSize = 16384

// Stats summarizes a rendered signal.
type Stats struct {
	SampleRate int `json:"sample_rate"`
	Frames     int `json:"frames"`

	Peak     float64 `json:"peak"`
	PeakDBFS float64 `json:"peak_dbfs"`
	RMS      float64 `json:"rms"`
	RMSDBFS  float64 `json:"rms_dbfs"`

	DominantHz  float64 `json:"dominant_hz"`
	DecayDBPerS float64 `json:"decay_db_per_s"`
}

// Analyze computes Stats for a mono signal. DecayDBPerS is NaN when the
// signal is too short to fit a slope.
func Analyze(x []float64, sampleRate int) Stats {
	s := Stats{SampleRate: sampleRate, Frames: len(x), DecayDBPerS: math.NaN()}
	if len(x) == 0 || sampleRate <= 0 {
		s.PeakDBFS = linToDB(0)
		s.RMSDBFS = linToDB(0)
		return s
	}
	for _, v := range x {
		s.Peak = math.Max(s.Peak, math.Abs(v))
	}
	s.RMS = rms1(x)
	s.PeakDBFS = linToDB(s.Peak)
	s.RMSDBFS = linToDB(s.RMS)
	s.DominantHz = DominantFrequency(x, sampleRate)

	env := rmsEnvelope(x, envFrame, envHop)
	s.DecayDBPerS = decaySlopeDBPerS(env, float64(envHop)/float64(sampleRate))
	return s
}

// Mono averages interleaved stereo to one channel.
func Mono(interleaved []float32) []float64 {
	out := make([]float64, len(interleaved)/2)
	for i := range out {
		out[i] = 0.5 * (float64(interleaved[2*i]) + float64(interleaved[2*i+1]))
	}
	return out
}

// StereoRMS is the RMS over every sample of an interleaved block.
func StereoRMS(interleaved []float32) float64 {
	if len(interleaved) == 0 {
		return 0
	}
	var sum float64
	for _, s := range interleaved {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(interleaved)))
}

// DominantFrequency returns the frequency of the strongest spectral peak
// in the first audible stretch of x, or 0 if there is none.
func DominantFrequency(x []float64, sampleRate int) float64 {
	x = trimLeadingSilence(x, 1e-6)
	n := 1
	for n*2 <= len(x) && n*2 <= maxSpectrumSize {
		n *= 2
	}
	if n < 64 {
		return 0
	}
	plan, err := algofft.NewPlanReal64(n)
	if err != nil {
		return 0
	}
	windowed := make([]float64, n)
	for i := range windowed {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		windowed[i] = x[i] * w
	}
	bins := make([]complex128, n/2+1)
	if err := plan.Forward(bins, windowed); err != nil {
		return 0
	}

	mag := make([]float64, len(bins))
	best := 1
	for k := 1; k < len(bins); k++ {
		mag[k] = math.Hypot(real(bins[k]), imag(bins[k]))
		if mag[k] > mag[best] {
			best = k
		}
	}
	if mag[best] <= 1e-12 {
		return 0
	}

	// Parabolic interpolation on log magnitudes around the peak bin.
	bin := float64(best)
	if best > 1 && best < len(mag)-1 {
		a, b, c := linToDB(mag[best-1]), linToDB(mag[best]), linToDB(mag[best+1])
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}
	return bin * float64(sampleRate) / float64(n)
}

// DecayDetector reports when a block-wise render has fallen below a level
// for long enough to stop.
type DecayDetector struct {
	threshold  float64
	holdBlocks int
	minFrames  int

	frames int
	below  int
}

// NewDecayDetector stops after holdBlocks consecutive blocks below
// thresholdDBFS, but never before minFrames.
func NewDecayDetector(thresholdDBFS float64, holdBlocks, minFrames int) *DecayDetector {
	if holdBlocks < 1 {
		holdBlocks = 1
	}
	return &DecayDetector{
		threshold:  core.DBToLinear(thresholdDBFS),
		holdBlocks: holdBlocks,
		minFrames:  minFrames,
	}
}

// Observe feeds one interleaved stereo block and reports whether to stop.
func (d *DecayDetector) Observe(block []float32) bool {
	d.frames += len(block) / 2
	if d.frames < d.minFrames {
		return false
	}
	if StereoRMS(block) < d.threshold {
		d.below++
		return d.below >= d.holdBlocks
	}
	d.below = 0
	return false
}

func trimLeadingSilence(x []float64, threshold float64) []float64 {
	for i := 0; i < len(x); i++ {
		if math.Abs(x[i]) > threshold {
			return x[i:]
		}
	}
	return nil
}

func rms1(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func rmsEnvelope(x []float64, frame int, hop int) []float64 {
	if frame <= 0 || hop <= 0 || len(x) < frame {
		return nil
	}
	n := 1 + (len(x)-frame)/hop
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i * hop
		out[i] = rms1(x[start : start+frame])
	}
	return out
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return core.LinearToDB(x)
}

// decaySlopeDBPerS fits a line to the envelope in dB from its peak down
// to 60 dB below it.
func decaySlopeDBPerS(env []float64, hopSec float64) float64 {
	if len(env) < 8 || hopSec <= 0 {
		return math.NaN()
	}
	peak := -math.MaxFloat64
	peakIdx := 0
	for i, v := range env {
		db := linToDB(v)
		if db > peak {
			peak = db
			peakIdx = i
		}
	}
	start := peakIdx + 1
	if start >= len(env)-4 {
		return math.NaN()
	}

	threshold := peak - 60.0
	end := len(env)
	for i := start; i < len(env); i++ {
		if linToDB(env[i]) < threshold {
			end = i
			break
		}
	}
	if end-start < 6 {
		return math.NaN()
	}

	var sx, sy, sxx, sxy float64
	n := float64(end - start)
	for i := start; i < end; i++ {
		x := float64(i-start) * hopSec
		y := linToDB(env[i])
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	den := n*sxx - sx*sx
	if math.Abs(den) < 1e-12 {
		return math.NaN()
	}
	return (n*sxy - sx*sy) / den
}
