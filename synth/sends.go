package synth

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/delay"
	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/irsynth"
)

// maxSendTail bounds how long a voice keeps rendering after its sources
// stop.
const maxSendTail = 10.0

// tailFloor is the level at which a feedback echo is considered gone.
const tailFloor = 1e-4

// delaySend is a feedback delay per channel. Output is wet only.
type delaySend struct {
	left, right *delay.Line
	samples     float64
	feedback    float64
	mix         float64
}

func newDelaySend(d blueprint.Delay, sampleRate int) (*delaySend, error) {
	samples := math.Max(d.Time*float64(sampleRate), 1)
	size := int(math.Ceil(samples)) + 4
	left, err := delay.New(size)
	if err != nil {
		return nil, err
	}
	right, err := delay.New(size)
	if err != nil {
		return nil, err
	}
	return &delaySend{
		left:     left,
		right:    right,
		samples:  samples,
		feedback: d.Feedback,
		mix:      d.Mix,
	}, nil
}

// tail returns the frames needed for the echoes to fall below tailFloor.
func (s *delaySend) tail(sampleRate int) int {
	repeats := 1.0
	if s.feedback > 0 {
		repeats = math.Ceil(math.Log(tailFloor)/math.Log(s.feedback)) + 1
	}
	return capTail(s.samples*repeats, sampleRate)
}

func (s *delaySend) process(l, r float64) (float64, float64) {
	yl := s.left.ReadFractional(s.samples)
	yr := s.right.ReadFractional(s.samples)
	s.left.Write(l + s.feedback*yl)
	s.right.Write(r + s.feedback*yr)
	return s.mix * yl, s.mix * yr
}

// reverbSend convolves its input with a synthetic stereo IR. Input is
// collected per block and convolved with overlap-add; the tail carries the
// part of each block's response that extends past it.
type reverbSend struct {
	irL, irR []float32
	mix      float32

	inL, inR     []float32
	tailL, tailR []float32
}

func newReverbSend(r blueprint.Reverb, sampleRate int, seed int64) (*reverbSend, error) {
	cfg := irsynth.DefaultConfig()
	cfg.SampleRate = sampleRate
	cfg.DecayS = r.Decay
	cfg.Reverse = r.Reverse
	cfg.Seed = seed
	irL, irR, err := irsynth.GenerateStereo(cfg)
	if err != nil {
		return nil, err
	}
	return &reverbSend{irL: irL, irR: irR, mix: float32(r.Mix)}, nil
}

func (s *reverbSend) tail() int {
	return len(s.irL)
}

// begin resets the block input buffers for n frames.
func (s *reverbSend) begin(n int) {
	s.inL = resize(s.inL, n)
	s.inR = resize(s.inR, n)
}

func (s *reverbSend) write(i int, l, r float64) {
	s.inL[i] = float32(l)
	s.inR[i] = float32(r)
}

// finish convolves the collected block and adds the wet signal to the
// interleaved out buffer.
func (s *reverbSend) finish(out []float32) error {
	n := len(s.inL)
	wetL, tailL, err := s.convolve(s.inL, s.irL, s.tailL)
	if err != nil {
		return err
	}
	wetR, tailR, err := s.convolve(s.inR, s.irR, s.tailR)
	if err != nil {
		return err
	}
	s.tailL, s.tailR = tailL, tailR
	for i := 0; i < n; i++ {
		out[2*i] += s.mix * wetL[i]
		out[2*i+1] += s.mix * wetR[i]
	}
	return nil
}

func (s *reverbSend) convolve(in, ir, tail []float32) ([]float32, []float32, error) {
	if silent(in) {
		return overlapAddBlock(nil, tail, len(in)), shift(tail, len(in)), nil
	}
	full := make([]float32, len(in)+len(ir)-1)
	if err := algofft.ConvolveReal(full, in, ir); err != nil {
		return nil, nil, err
	}
	for i := 0; i < len(tail) && i < len(full); i++ {
		full[i] += tail[i]
	}
	if len(tail) > len(full) {
		full = append(full, tail[len(full):]...)
	}
	return overlapAddBlock(full, nil, len(in)), shift(full, len(in)), nil
}

// overlapAddBlock returns the first blockLen samples of convOut plus tail.
func overlapAddBlock(convOut, tail []float32, blockLen int) []float32 {
	out := make([]float32, blockLen)
	copy(out, convOut)
	for i := 0; i < blockLen && i < len(tail); i++ {
		out[i] += tail[i]
	}
	return out
}

// shift drops the first n samples.
func shift(x []float32, n int) []float32 {
	if n >= len(x) {
		return nil
	}
	return append([]float32(nil), x[n:]...)
}

func silent(x []float32) bool {
	for _, v := range x {
		if v != 0 {
			return false
		}
	}
	return true
}

func resize(x []float32, n int) []float32 {
	if cap(x) < n {
		return make([]float32, n)
	}
	x = x[:n]
	clear(x)
	return x
}

func capTail(frames float64, sampleRate int) int {
	limit := maxSendTail * float64(sampleRate)
	if frames > limit {
		frames = limit
	}
	return int(math.Ceil(frames))
}
