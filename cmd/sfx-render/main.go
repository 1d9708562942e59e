package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/cwbudde/algo-sfx/analysis"
	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/command"
	"github.com/cwbudde/algo-sfx/internal/wavio"
	"github.com/cwbudde/algo-sfx/preset"
	"github.com/cwbudde/algo-sfx/synth"
)

const blockSize = 128

func main() {
	line := flag.String("line", "", "Command line to render (default: remaining arguments)")
	duration := flag.Float64("duration", 0, "Duration in seconds (0 = natural length including effect tails)")
	decayDBFS := flag.Float64("decay-dbfs", math.Inf(1), "Auto-stop when stereo block RMS falls below this dBFS (e.g. -90). Disabled by default")
	decayHoldBlocks := flag.Int("decay-hold-blocks", 6, "Consecutive below-threshold blocks required to stop in auto-decay mode")
	minDuration := flag.Float64("min-duration", 0.1, "Minimum render duration in seconds when using -decay-dbfs")
	maxDuration := flag.Float64("max-duration", 20.0, "Maximum render duration in seconds")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	gain := flag.Float64("gain", 1.0, "Output gain")
	seed := flag.Int64("seed", 1, "Noise and IR seed")
	presetPath := flag.String("presets", "", "User preset JSON file (optional)")
	output := flag.String("output", "output.wav", "Output WAV file path")
	input := flag.String("analyze", "", "Analyze this WAV file instead of rendering")
	asJSON := flag.Bool("json", false, "Print statistics as JSON")
	flag.Parse()

	if *input != "" {
		stats, err := analyzeFile(*input, *sampleRate)
		if err != nil {
			fatalf("Error analyzing %q: %v", *input, err)
		}
		printStats(stats, *asJSON)
		return
	}

	text := *line
	if text == "" {
		text = strings.Join(flag.Args(), " ")
	}
	if strings.TrimSpace(text) == "" {
		fatalf("Nothing to render: pass -line or a command line, e.g. sfx-render raw sine freq:440 reverb")
	}

	lib := preset.Builtin()
	if *presetPath != "" {
		var err error
		if lib, err = preset.LoadJSON(*presetPath); err != nil {
			fatalf("Error loading presets %q: %v", *presetPath, err)
		}
	}

	// Blueprints are collected rather than played so substituted commands
	// render together with the outer one.
	rec := &recorder{}
	proc := command.NewProcessor(command.WithEngine(rec), command.WithPresets(lib))
	res := proc.Process(text)
	if res.Output != "" {
		fmt.Println(res.Output)
	}
	if len(rec.blueprints) == 0 {
		fatalf("%q produced no sound", text)
	}

	graphs := make([]*synth.Graph, 0, len(rec.blueprints))
	natural := 0
	for i, bp := range rec.blueprints {
		g, err := synth.Compile(bp, *sampleRate, *seed+int64(i))
		if err != nil {
			fatalf("Error compiling blueprint %d: %v", i, err)
		}
		graphs = append(graphs, g)
		natural = max(natural, g.Len())
	}

	maxFrames := int(float64(*sampleRate) * (*maxDuration))
	totalFrames := natural
	if *duration > 0 {
		totalFrames = int(float64(*sampleRate) * (*duration))
	}
	totalFrames = max(1, min(totalFrames, maxFrames))

	autoStop := !math.IsInf(*decayDBFS, 1)
	var detector *analysis.DecayDetector
	if autoStop {
		detector = analysis.NewDecayDetector(*decayDBFS, *decayHoldBlocks, int(float64(*sampleRate)*(*minDuration)))
	}

	fmt.Printf("Rendering %d voice(s), %.3f seconds at %d Hz...\n", len(graphs), float64(totalFrames)/float64(*sampleRate), *sampleRate)

	samples := make([]float32, 0, totalFrames*2)
	framesRendered := 0
	for framesRendered < totalFrames {
		n := min(blockSize, totalFrames-framesRendered)
		block, err := mixBlock(graphs, n, float32(*gain))
		if err != nil {
			fatalf("Error rendering: %v", err)
		}
		samples = append(samples, block...)
		framesRendered += n

		if detector != nil && detector.Observe(block) {
			fmt.Printf("Auto-stop at %d frames (%.3fs), threshold %.1f dBFS\n", framesRendered, float64(framesRendered)/float64(*sampleRate), *decayDBFS)
			break
		}
	}

	if err := wavio.WriteStereo(*output, samples, *sampleRate); err != nil {
		fatalf("Error writing WAV file: %v", err)
	}
	fmt.Printf("Successfully wrote %s (%d frames)\n", *output, framesRendered)
	printStats(analysis.Analyze(analysis.Mono(samples), *sampleRate), *asJSON)
}

// recorder is a command.Engine that keeps every blueprint it is asked to play.
type recorder struct {
	blueprints []blueprint.Blueprint
}

func (r *recorder) PlayBlueprint(bp blueprint.Blueprint) error {
	r.blueprints = append(r.blueprints, bp.Clone())
	return nil
}

func (r *recorder) Reset() error {
	r.blueprints = nil
	return nil
}

func mixBlock(graphs []*synth.Graph, n int, gain float32) ([]float32, error) {
	out := make([]float32, n*2)
	for _, g := range graphs {
		if g.Done() {
			continue
		}
		block, err := g.Process(n)
		if err != nil {
			return nil, err
		}
		for i, v := range block {
			out[i] += v
		}
	}
	for i := range out {
		out[i] = max(-1, min(1, out[i]*gain))
	}
	return out, nil
}

func analyzeFile(path string, sampleRate int) (analysis.Stats, error) {
	clip, err := wavio.Read(path)
	if err != nil {
		return analysis.Stats{}, err
	}
	mono, err := wavio.Resample(clip.Mono(), clip.SampleRate, sampleRate)
	if err != nil {
		return analysis.Stats{}, err
	}
	return analysis.Analyze(mono, sampleRate), nil
}

func printStats(s analysis.Stats, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newJSONStats(s)); err != nil {
			fatalf("Error encoding stats: %v", err)
		}
		return
	}
	fmt.Printf("Frames: %d (%.3fs at %d Hz)\n", s.Frames, float64(s.Frames)/float64(s.SampleRate), s.SampleRate)
	fmt.Printf("Peak: %.6f (%.1f dBFS), RMS: %.6f (%.1f dBFS)\n", s.Peak, s.PeakDBFS, s.RMS, s.RMSDBFS)
	fmt.Printf("Dominant frequency: %.1f Hz\n", s.DominantHz)
	if !math.IsNaN(s.DecayDBPerS) {
		fmt.Printf("Decay: %.1f dB/s\n", s.DecayDBPerS)
	}
}

// jsonStats reports an unknown decay slope as null.
type jsonStats struct {
	analysis.Stats
	DecayDBPerS *float64 `json:"decay_db_per_s"`
}

func newJSONStats(s analysis.Stats) jsonStats {
	out := jsonStats{Stats: s}
	if !math.IsNaN(s.DecayDBPerS) {
		out.DecayDBPerS = &s.DecayDBPerS
	}
	return out
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
