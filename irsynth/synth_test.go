package irsynth

import (
	"math"
	"testing"
)

func TestGenerateStereoBasic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 48000
	cfg.DecayS = 0.5
	cfg.Seed = 42
	cfg.NormalizePeak = 0.8

	l, r, err := GenerateStereo(cfg)
	if err != nil {
		t.Fatalf("GenerateStereo: %v", err)
	}
	if len(l) != int(0.5*48000) || len(r) != len(l) {
		t.Fatalf("unexpected output lengths: L=%d R=%d", len(l), len(r))
	}

	maxAbs := 0.0
	energy := 0.0
	for i := range l {
		if math.IsNaN(float64(l[i])) || math.IsInf(float64(l[i]), 0) || math.IsNaN(float64(r[i])) || math.IsInf(float64(r[i]), 0) {
			t.Fatalf("non-finite sample at %d", i)
		}
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(float64(l[i])), math.Abs(float64(r[i]))))
		energy += float64(l[i]*l[i] + r[i]*r[i])
	}
	if energy <= 1e-8 {
		t.Fatalf("expected non-zero energy")
	}
	if maxAbs > 0.81 || maxAbs < 0.79 {
		t.Fatalf("unexpected normalization peak: %.6f", maxAbs)
	}
}

func TestGenerateStereoDeterministicForSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 32000
	cfg.DecayS = 0.2
	cfg.Seed = 99

	l1, r1, err := GenerateStereo(cfg)
	if err != nil {
		t.Fatalf("first GenerateStereo: %v", err)
	}
	l2, r2, err := GenerateStereo(cfg)
	if err != nil {
		t.Fatalf("second GenerateStereo: %v", err)
	}
	for i := range l1 {
		if l1[i] != l2[i] || r1[i] != r2[i] {
			t.Fatalf("non-deterministic output at index %d", i)
		}
	}

	cfg.Seed = 100
	l3, _, err := GenerateStereo(cfg)
	if err != nil {
		t.Fatalf("third GenerateStereo: %v", err)
	}
	same := true
	for i := range l1 {
		if l1[i] != l3[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical output")
	}
}

func TestTailDecays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 16000
	l, _, err := GenerateStereo(cfg)
	if err != nil {
		t.Fatalf("GenerateStereo: %v", err)
	}
	head := windowEnergy(l[:len(l)/10])
	tail := windowEnergy(l[len(l)*9/10:])
	if tail >= head*0.01 {
		t.Fatalf("tail energy %.6g not well below head energy %.6g", tail, head)
	}

	// Unit energy when no peak normalization is requested.
	if e := windowEnergy(l); math.Abs(e-1) > 1e-3 {
		t.Fatalf("energy = %.6f, want 1", e)
	}
}

func TestReverseSwells(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 16000
	cfg.Reverse = true
	l, _, err := GenerateStereo(cfg)
	if err != nil {
		t.Fatalf("GenerateStereo: %v", err)
	}
	head := windowEnergy(l[:len(l)/10])
	tail := windowEnergy(l[len(l)*9/10:])
	if head >= tail {
		t.Fatalf("reversed IR should build up: head %.6g tail %.6g", head, tail)
	}
}

func TestEarlyReflectionsAndWidth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 16000
	cfg.StereoWidth = 0
	l, r, err := GenerateStereo(cfg)
	if err != nil {
		t.Fatalf("GenerateStereo: %v", err)
	}
	for i := range l {
		if math.Abs(float64(l[i]-r[i])) > 1e-6 {
			t.Fatalf("zero width should give identical channels, differ at %d", i)
		}
	}

	cfg.EarlyCount = 16
	cfg.NormalizePeak = 0.9
	cfg.StereoWidth = 0.5
	if _, _, err := GenerateStereo(cfg); err != nil {
		t.Fatalf("GenerateStereo with reflections: %v", err)
	}
}

func TestValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.SampleRate = 100 },
		func(c *Config) { c.DecayS = 0 },
		func(c *Config) { c.Curve = 0 },
		func(c *Config) { c.EarlyCount = -1 },
		func(c *Config) { c.StereoWidth = 2 },
		func(c *Config) { c.FadeOutS = -1 },
		func(c *Config) { c.NormalizePeak = -1 },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func windowEnergy(x []float32) float64 {
	e := 0.0
	for _, v := range x {
		e += float64(v) * float64(v)
	}
	return e
}
