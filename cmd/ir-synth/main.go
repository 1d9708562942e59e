package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-sfx/internal/wavio"
	"github.com/cwbudde/algo-sfx/irsynth"
)

func main() {
	cfg := irsynth.DefaultConfig()

	output := flag.String("output", "reverb_ir.wav", "Output WAV path")
	flag.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "Output sample rate")
	flag.Float64Var(&cfg.DecayS, "decay", cfg.DecayS, "IR length in seconds")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.Float64Var(&cfg.Curve, "curve", cfg.Curve, "Decay envelope exponent (>0)")
	flag.BoolVar(&cfg.Reverse, "reverse", cfg.Reverse, "Reverse the IR")
	flag.IntVar(&cfg.EarlyCount, "early", cfg.EarlyCount, "Number of early reflections")
	flag.Float64Var(&cfg.StereoWidth, "stereo-width", cfg.StereoWidth, "Stereo decorrelation width in [0,1]")
	flag.Float64Var(&cfg.FadeOutS, "fade-out", cfg.FadeOutS, "Cosine fade-out length in seconds")
	flag.Float64Var(&cfg.NormalizePeak, "normalize", cfg.NormalizePeak, "Peak normalization target (0 = unit energy)")
	flag.Parse()

	left, right, err := irsynth.GenerateStereo(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ir-synth error: %v\n", err)
		os.Exit(1)
	}

	// Unit-energy IRs can exceed full scale; keep the file unclipped.
	peak, rms := stats(left, right)
	if peak > 1 {
		scale := float32(1 / peak)
		for i := range left {
			left[i] *= scale
			right[i] *= scale
		}
		peak, rms = stats(left, right)
	}

	if err := wavio.WriteStereoLR(*output, left, right, cfg.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "wav write error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", *output)
	fmt.Printf("SampleRate: %d Hz, Duration: %.3f s, Samples: %d\n", cfg.SampleRate, cfg.DecayS, len(left))
	fmt.Printf("Peak: %.6f, RMS: %.6f\n", peak, rms)
}

func stats(left []float32, right []float32) (peak float64, rms float64) {
	if len(left) == 0 || len(right) == 0 {
		return 0, 0
	}
	var sum float64
	n := len(left) * 2
	for i := 0; i < len(left); i++ {
		lv := float64(left[i])
		rv := float64(right[i])
		peak = math.Max(peak, math.Max(math.Abs(lv), math.Abs(rv)))
		sum += lv*lv + rv*rv
	}
	return peak, math.Sqrt(sum / float64(n))
}
