package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/dsp"
)

// NodeKind names a stage of a compiled graph.
type NodeKind string

const (
	NodeMaster     NodeKind = "master"
	NodeEnvelope   NodeKind = "envelope"
	NodeCompressor NodeKind = "compressor"
	NodePanner     NodeKind = "panner"
	NodeDistortion NodeKind = "distortion"
	NodeFilter     NodeKind = "filter"
	NodeOscillator NodeKind = "oscillator"
	NodeNoise      NodeKind = "noise"
	NodeDelay      NodeKind = "delay"
	NodeReverb     NodeKind = "reverb"
	NodeLFO        NodeKind = "lfo"
)

// Node is one stage of a graph.
type Node struct {
	ID   int
	Kind NodeKind
}

// Edge connects two nodes. Param is set when the edge modulates a
// parameter of To instead of feeding its audio input.
type Edge struct {
	From, To int
	Param    string
}

// Graph is a compiled blueprint. It renders one voice: sources run for
// the blueprint duration, sends keep ringing for their tail.
type Graph struct {
	sampleRate int
	nodes      []Node
	edges      []Edge

	sources []source
	filter  *filterStage
	shaper  *dsp.Shaper
	panner  *panStage
	comp    *compStage
	env     envelope
	lfo     *lfo
	delay   *delaySend
	reverb  *reverbSend

	sourceFrames int
	length       int
	pos          int
}

// Compile validates bp and builds its graph. All timing is relative to
// the first frame returned by Process.
func Compile(bp blueprint.Blueprint, sampleRate int, seed int64) (*Graph, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0")
	}

	g := &Graph{sampleRate: sampleRate}
	g.sourceFrames = int(math.Round(bp.Duration * float64(sampleRate)))
	g.env = newEnvelope(bp.Envelope, bp.Duration, sampleRate)

	master := g.add(NodeMaster)
	env := g.add(NodeEnvelope)
	g.connect(env, master, "")

	// The insert chain is built from the envelope outwards so that the
	// filter ends up nearest the sources.
	entry := env
	var filterID, pannerID int
	if bp.Compressor != nil {
		comp, err := newCompStage(*bp.Compressor, sampleRate)
		if err != nil {
			return nil, err
		}
		g.comp = comp
		entry = g.chain(NodeCompressor, entry)
	}
	if bp.Panner != nil {
		p, err := newPanStage(bp.Panner)
		if err != nil {
			return nil, err
		}
		g.panner = p
		entry = g.chain(NodePanner, entry)
		pannerID = entry
	}
	if d := bp.Distortion; d != nil {
		g.shaper = dsp.NewShaper(dsp.Curve(d.Amount, dsp.CurveSize), d.Oversample.Factor(), float64(sampleRate))
		entry = g.chain(NodeDistortion, entry)
	}
	if bp.Filter != nil {
		f, err := newFilterStage(bp.Filter, sampleRate)
		if err != nil {
			return nil, err
		}
		g.filter = f
		entry = g.chain(NodeFilter, entry)
		filterID = entry
	}

	rng := rand.New(rand.NewSource(seed))
	var oscIDs []int
	for i, s := range bp.Sources {
		src, err := newSource(s, sampleRate, rng)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		g.sources = append(g.sources, src)
		kind := NodeNoise
		if _, ok := s.(blueprint.Oscillator); ok {
			kind = NodeOscillator
		}
		id := g.add(kind)
		g.connect(id, entry, "")
		if kind == NodeOscillator {
			oscIDs = append(oscIDs, id)
		}
	}

	tail := 0
	if bp.Delay != nil {
		d, err := newDelaySend(*bp.Delay, sampleRate)
		if err != nil {
			return nil, err
		}
		g.delay = d
		id := g.add(NodeDelay)
		g.connect(env, id, "")
		g.connect(id, master, "")
		tail = max(tail, d.tail(sampleRate))
	}
	if bp.Reverb != nil {
		r, err := newReverbSend(*bp.Reverb, sampleRate, seed)
		if err != nil {
			return nil, err
		}
		g.reverb = r
		id := g.add(NodeReverb)
		g.connect(env, id, "")
		g.connect(id, master, "")
		tail = max(tail, r.tail())
	}
	g.length = g.sourceFrames + tail

	if bp.LFO != nil {
		g.lfo = newLFO(*bp.LFO, sampleRate)
		id := g.add(NodeLFO)
		switch bp.LFO.Target {
		case blueprint.SourceFrequency:
			for _, osc := range oscIDs {
				g.connect(id, osc, "frequency")
			}
		case blueprint.FilterFrequency:
			if filterID != 0 {
				g.connect(id, filterID, "frequency")
			}
		case blueprint.FilterQ:
			if filterID != 0 {
				g.connect(id, filterID, "q")
			}
		case blueprint.Amplitude:
			g.connect(id, env, "gain")
		case blueprint.Pan:
			if pannerID != 0 {
				g.connect(id, pannerID, "pan")
			}
		}
	}
	return g, nil
}

func (g *Graph) add(kind NodeKind) int {
	id := len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Kind: kind})
	return id
}

func (g *Graph) connect(from, to int, param string) {
	g.edges = append(g.edges, Edge{From: from, To: to, Param: param})
}

func (g *Graph) chain(kind NodeKind, next int) int {
	id := g.add(kind)
	g.connect(id, next, "")
	return id
}

// Nodes returns the graph's nodes in creation order.
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Edges returns audio and modulation connections.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Find returns the first node of kind.
func (g *Graph) Find(kind NodeKind) (Node, bool) {
	for _, n := range g.nodes {
		if n.Kind == kind {
			return n, true
		}
	}
	return Node{}, false
}

// Kinds returns the kinds of nodes present, excluding sources.
func (g *Graph) Kinds() []NodeKind {
	var out []NodeKind
	for _, n := range g.nodes {
		if n.Kind != NodeOscillator && n.Kind != NodeNoise {
			out = append(out, n.Kind)
		}
	}
	return out
}

// Len is the total voice length in frames including send tails.
func (g *Graph) Len() int { return g.length }

// Done reports whether every frame has been rendered.
func (g *Graph) Done() bool { return g.pos >= g.length }

// Process renders the next numFrames frames as interleaved stereo. Frames
// past the end are silent.
func (g *Graph) Process(numFrames int) ([]float32, error) {
	out := make([]float32, numFrames*2)
	if g.reverb != nil {
		g.reverb.begin(numFrames)
	}
	for i := 0; i < numFrames; i++ {
		n := g.pos + i
		var l, r float64
		if n < g.sourceFrames {
			l, r = g.dry(n)
		}
		out[2*i] = float32(l)
		out[2*i+1] = float32(r)
		if g.delay != nil {
			wl, wr := g.delay.process(l, r)
			out[2*i] += float32(wl)
			out[2*i+1] += float32(wr)
		}
		if g.reverb != nil {
			g.reverb.write(i, l, r)
		}
	}
	if g.reverb != nil {
		if err := g.reverb.finish(out); err != nil {
			return nil, err
		}
	}
	g.pos += numFrames
	return out, nil
}

// dry computes the envelope output for frame n.
func (g *Graph) dry(n int) (float64, float64) {
	var m modulation
	if g.lfo != nil {
		m = g.lfo.next()
	}
	x := 0.0
	for _, s := range g.sources {
		x += s.next(m.sourceFreq)
	}
	if g.filter != nil {
		g.filter.modulate(m.filterFreq, m.filterQ)
		x = g.filter.process(x)
	}
	if g.shaper != nil {
		x = g.shaper.Process(x)
	}
	l, r := x, x
	if g.panner != nil {
		l, r = g.panner.process(x, m.pan)
	}
	if g.comp != nil {
		l, r = g.comp.process(l, r)
	}
	gain := g.env.at(n) + m.amplitude
	return l * gain, r * gain
}

// Render processes every remaining frame.
func (g *Graph) Render() ([]float32, error) {
	return g.Process(max(g.length-g.pos, 0))
}
