// Package irsynth generates the synthetic impulse responses used by the
// convolution reverb: decaying stereo noise with an optional early
// reflection cluster, no external IR files.
package irsynth

import (
	"fmt"
	"math"
	"math/rand"
)

// Config controls synthetic IR generation.
type Config struct {
	SampleRate int
	DecayS     float64 // IR length; the tail reaches zero at the end
	Seed       int64

	Curve       float64 // Exponent of the (1 - t/T)^Curve decay envelope
	Reverse     bool    // Reverse both channels for a swell
	EarlyCount  int     // Discrete reflections in the first 30 ms
	StereoWidth float64
	FadeOutS    float64 // Cosine fade-out at the end; 0 = no fade

	// NormalizePeak scales the IR so its largest sample has this value.
	// When zero, the IR is scaled to unit energy per channel instead, which
	// keeps the wet level independent of the decay time.
	NormalizePeak float64
}

// DefaultConfig returns the reverb IR used for a one second decay.
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		DecayS:      1.0,
		Seed:        1,
		Curve:       2.5,
		StereoWidth: 1.0,
	}
}

func (c *Config) Validate() error {
	if c.SampleRate < 8000 {
		return fmt.Errorf("sample rate too low: %d", c.SampleRate)
	}
	if c.DecayS <= 0 {
		return fmt.Errorf("decay must be > 0")
	}
	if c.Curve <= 0 {
		return fmt.Errorf("curve must be > 0")
	}
	if c.EarlyCount < 0 {
		return fmt.Errorf("early count must be >= 0")
	}
	if c.StereoWidth < 0 || c.StereoWidth > 1 {
		return fmt.Errorf("stereo width must be in [0,1]")
	}
	if c.FadeOutS < 0 {
		return fmt.Errorf("fade out must be >= 0")
	}
	if c.NormalizePeak < 0 {
		return fmt.Errorf("normalize peak must be >= 0")
	}
	return nil
}

// Length returns the IR length in samples.
func (c *Config) Length() int {
	n := int(math.Round(c.DecayS * float64(c.SampleRate)))
	if n < 1 {
		n = 1
	}
	return n
}

// GenerateStereo synthesizes a stereo IR according to cfg.
func GenerateStereo(cfg Config) ([]float32, []float32, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	n := cfg.Length()
	left := make([]float64, n)
	right := make([]float64, n)

	rng := rand.New(rand.NewSource(cfg.Seed))

	// Decaying noise tail. With full width the channels are independent;
	// narrower widths blend in a shared component.
	w := cfg.StereoWidth
	for i := 0; i < n; i++ {
		env := math.Pow(1-float64(i)/float64(n), cfg.Curve)
		common := rng.Float64()*2 - 1
		nL := rng.Float64()*2 - 1
		nR := rng.Float64()*2 - 1
		left[i] = env * (w*nL + (1-w)*common)
		right[i] = env * (w*nR + (1-w)*common)
	}

	// Early reflections cluster.
	for i := 0; i < cfg.EarlyCount; i++ {
		t := 0.001 + 0.030*rng.Float64()
		idx := int(t * float64(cfg.SampleRate))
		if idx <= 0 || idx >= n {
			continue
		}
		amp := (0.10 + 0.35*rng.Float64()) * math.Exp(-t*28.0)
		pan := (rng.Float64()*2.0 - 1.0) * cfg.StereoWidth
		left[idx] += amp * (1.0 - 0.5*pan)
		right[idx] += amp * (1.0 + 0.5*pan)
	}

	// Remove tiny DC drift.
	highpassDC(left, 0.995)
	highpassDC(right, 0.995)
	applyFadeOut(left, cfg.FadeOutS, cfg.SampleRate)
	applyFadeOut(right, cfg.FadeOutS, cfg.SampleRate)

	if cfg.Reverse {
		reverse(left)
		reverse(right)
	}

	var sL, sR float64
	if cfg.NormalizePeak > 0 {
		peak := math.Max(maxAbs(left), maxAbs(right))
		if peak < 1e-12 {
			peak = 1e-12
		}
		sL = cfg.NormalizePeak / peak
		sR = sL
	} else {
		sL = 1 / math.Max(math.Sqrt(energy(left)), 1e-12)
		sR = 1 / math.Max(math.Sqrt(energy(right)), 1e-12)
	}
	outL := make([]float32, n)
	outR := make([]float32, n)
	for i := 0; i < n; i++ {
		outL[i] = float32(left[i] * sL)
		outR[i] = float32(right[i] * sR)
	}
	return outL, outR, nil
}

func highpassDC(x []float64, r float64) {
	if len(x) == 0 {
		return
	}
	prevIn := 0.0
	prevOut := 0.0
	for i := range x {
		y := x[i] - prevIn + r*prevOut
		prevIn = x[i]
		prevOut = y
		x[i] = y
	}
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func energy(x []float64) float64 {
	e := 0.0
	for _, v := range x {
		e += v * v
	}
	return e
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// applyFadeOut applies a cosine fade-out to the last fadeS seconds of buf.
func applyFadeOut(buf []float64, fadeS float64, sampleRate int) {
	if fadeS <= 0 || len(buf) == 0 {
		return
	}
	fadeSamples := int(math.Round(fadeS * float64(sampleRate)))
	if fadeSamples > len(buf) {
		fadeSamples = len(buf)
	}
	start := len(buf) - fadeSamples
	for i := 0; i < fadeSamples; i++ {
		t := float64(i) / float64(fadeSamples) // 0..1
		gain := 0.5 * (1.0 + math.Cos(t*math.Pi))
		buf[start+i] *= gain
	}
}
