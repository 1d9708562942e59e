package blueprint

import "strings"

// TargetNode names the graph node an LFO drives.
type TargetNode string

const (
	TargetSource    TargetNode = "source"
	TargetFilter    TargetNode = "filter"
	TargetAmplitude TargetNode = "amplitude"
	TargetPan       TargetNode = "pan"
)

// TargetParam names the parameter on the target node. Amplitude and pan
// targets have no parameter.
type TargetParam string

const (
	ParamNone      TargetParam = ""
	ParamFrequency TargetParam = "frequency"
	ParamQ         TargetParam = "q"
)

// LFOTarget addresses one modulatable parameter.
type LFOTarget struct {
	Node  TargetNode
	Param TargetParam
}

var (
	SourceFrequency = LFOTarget{Node: TargetSource, Param: ParamFrequency}
	FilterFrequency = LFOTarget{Node: TargetFilter, Param: ParamFrequency}
	FilterQ         = LFOTarget{Node: TargetFilter, Param: ParamQ}
	Amplitude       = LFOTarget{Node: TargetAmplitude}
	Pan             = LFOTarget{Node: TargetPan}
)

// Valid reports whether t is one of the addressable targets.
func (t LFOTarget) Valid() bool {
	switch t {
	case SourceFrequency, FilterFrequency, FilterQ, Amplitude, Pan:
		return true
	}
	return false
}

func (t LFOTarget) String() string {
	if t.Param == ParamNone {
		return string(t.Node)
	}
	return string(t.Node) + "." + string(t.Param)
}

// ParseLFOTarget accepts the structured form ("source.frequency",
// "filter.frequency", "filter.q", "amplitude", "pan") and the older flat
// names ("frequency", "filterCutoff", "filterQ"). Matching ignores case.
func ParseLFOTarget(s string) (LFOTarget, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frequency", "source.frequency", "source":
		return SourceFrequency, true
	case "filtercutoff", "filter.frequency", "filter":
		return FilterFrequency, true
	case "filterq", "filter.q":
		return FilterQ, true
	case "amplitude", "gain":
		return Amplitude, true
	case "pan", "panner", "panner.pan":
		return Pan, true
	}
	return LFOTarget{}, false
}
