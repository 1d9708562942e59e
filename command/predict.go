package command

import (
	"strings"
	"unicode"
)

// Prediction is the outcome of one completion request. Candidates is set
// when more than one completion matches; Line is the input to show.
type Prediction struct {
	Line       string
	Candidates []string
}

// Predictor completes the last token of an input line. The first token is
// completed against command names, later tokens against the command's
// declared arguments. Repeating Predict on an ambiguous input cycles through
// the candidates.
type Predictor struct {
	registry *Registry

	cycling bool
	index   int
	query   string
}

func NewPredictor(r *Registry) *Predictor {
	return &Predictor{registry: r}
}

// Predict completes input. The host must call Reset whenever the input is
// edited by anything other than a repeated Predict.
func (p *Predictor) Predict(input string) Prediction {
	source := input
	if p.cycling {
		source = p.query
	}
	cands := p.candidates(source)

	switch {
	case len(cands) == 0:
		p.Reset()
		return Prediction{Line: input}
	case len(cands) == 1:
		p.Reset()
		return Prediction{Line: replaceLast(source, cands[0])}
	case !p.cycling:
		p.cycling = true
		p.index = 0
		p.query = input
		return Prediction{Line: input, Candidates: cands}
	}
	p.index = (p.index + 1) % len(cands)
	return Prediction{Line: replaceLast(source, cands[p.index]), Candidates: cands}
}

// Reset leaves the cycling state.
func (p *Predictor) Reset() {
	p.cycling = false
	p.index = 0
	p.query = ""
}

func (p *Predictor) candidates(input string) []string {
	fields := strings.Fields(input)
	last := ""
	if len(fields) > 0 && !endsInSpace(input) {
		last = fields[len(fields)-1]
		fields = fields[:len(fields)-1]
	}

	if len(fields) == 0 {
		if last == "" {
			return nil
		}
		var out []string
		for _, name := range p.registry.Names() {
			if strings.HasPrefix(strings.ToLower(name), strings.ToLower(last)) {
				out = append(out, name)
			}
		}
		return out
	}

	def, ok := p.registry.Lookup(fields[0])
	if !ok {
		return nil
	}
	return suggestArgs(def.Args, fields[1:], last)
}

func endsInSpace(s string) bool {
	return s != "" && unicode.IsSpace(rune(s[len(s)-1]))
}

func replaceLast(s, with string) string {
	if endsInSpace(s) {
		return s + with
	}
	start := strings.LastIndexFunc(s, unicode.IsSpace) + 1
	return s[:start] + with
}
