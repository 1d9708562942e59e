package dsp

import "math/rand"

// NoiseSeconds is the length of a looped noise buffer.
const NoiseSeconds = 2

// Noise colors understood by NoiseBuffer.
const (
	White = "white"
	Pink  = "pink"
	Brown = "brown"
)

// NoiseBuffer fills a NoiseSeconds long buffer at sampleRate with noise of
// the given color. Unknown colors give white noise.
func NoiseBuffer(color string, sampleRate int, rng *rand.Rand) []float64 {
	out := make([]float64, sampleRate*NoiseSeconds)
	white := func() float64 { return rng.Float64()*2 - 1 }

	switch color {
	case Pink:
		// Paul Kellet's refined pink filter.
		var b0, b1, b2, b3, b4, b5, b6 float64
		for i := range out {
			w := white()
			b0 = 0.99886*b0 + w*0.0555179
			b1 = 0.99332*b1 + w*0.0750759
			b2 = 0.969*b2 + w*0.153852
			b3 = 0.8665*b3 + w*0.3104856
			b4 = 0.55*b4 + w*0.5329522
			b5 = -0.7616*b5 - w*0.016898
			out[i] = (b0 + b1 + b2 + b3 + b4 + b5 + b6 + w*0.5362) * 0.11
			b6 = w * 0.115926
		}
	case Brown:
		last := 0.0
		for i := range out {
			last = (last + 0.02*white()) / 1.02
			out[i] = last * 3.5
		}
	default:
		for i := range out {
			out[i] = white()
		}
	}
	return out
}
