package command

import (
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/preset"
)

// Engine plays the blueprints produced by commands.
type Engine interface {
	PlayBlueprint(bp blueprint.Blueprint) error
	Reset() error
}

// LatencyReporter is implemented by engines that can describe their
// output latency.
type LatencyReporter interface {
	LatencyReport() string
}

// Processor turns input lines into results. It owns the session variables
// and the local input history. It is not safe for concurrent use.
type Processor struct {
	registry *Registry
	engine   Engine
	presets  *preset.Library
	history  *History
	vars     map[string]string
	log      zerolog.Logger
}

type Option func(*Processor)

// WithEngine plays every result blueprint on e.
func WithEngine(e Engine) Option {
	return func(p *Processor) { p.engine = e }
}

func WithLogger(l zerolog.Logger) Option {
	return func(p *Processor) { p.log = l }
}

// WithPresets replaces the built-in preset library.
func WithPresets(l *preset.Library) Option {
	return func(p *Processor) { p.presets = l }
}

func WithHistory(h *History) Option {
	return func(p *Processor) { p.history = h }
}

// NewProcessor returns a processor with the built-in command set.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		presets: preset.Builtin(),
		history: NewHistory(DefaultHistoryLimit),
		vars:    make(map[string]string),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.registry = NewRegistry()
	for _, d := range p.builtins() {
		if err := p.registry.Register(d); err != nil {
			panic(err)
		}
	}
	return p
}

func (p *Processor) Registry() *Registry { return p.registry }

func (p *Processor) History() *History { return p.history }

func (p *Processor) Presets() *preset.Library { return p.presets }

// Variables returns a copy of the session variables.
func (p *Processor) Variables() map[string]string {
	return maps.Clone(p.vars)
}

// ResetSession drops all session variables.
func (p *Processor) ResetSession() {
	clear(p.vars)
}

// Process runs one input line: it records the line, parses it against the
// session variables, dispatches the command and plays the resulting
// blueprint, if any.
func (p *Processor) Process(line string) Result {
	p.history.Add(line)
	res, err := p.evaluate(line, p.vars, 0)
	if err != nil {
		res = Result{Output: "Error: " + err.Error(), Blueprint: ErrorBlueprint()}
	}
	p.play(res)
	return res
}

// Execute runs the inner line of a $(...) substitution. It has the same
// side effects as Process, applied before the outer command runs.
func (p *Processor) Execute(line string, vars map[string]string, depth int) (string, error) {
	p.history.Add(line)
	res, err := p.evaluate(line, vars, depth)
	if err != nil {
		return "", err
	}
	p.play(res)
	return res.Output, nil
}

func (p *Processor) evaluate(line string, vars map[string]string, depth int) (Result, error) {
	parsed, err := parse(line, vars, p, depth)
	if err != nil {
		return Result{}, err
	}
	maps.Copy(vars, parsed.Variables)

	if parsed.Name == "" {
		return Result{Output: strings.TrimSpace(line)}, nil
	}

	name, args := parsed.Name, parsed.Args
	if slices.Contains(args, "-h") {
		args = append([]string{name}, args...)
		name = "help"
	}

	def, ok := p.registry.Lookup(name)
	if !ok {
		p.log.Debug().Str("command", name).Msg("command not found")
		return Result{
			Output:    "Command not found: " + name + "\n" + p.helpIndex(),
			Blueprint: ErrorBlueprint(),
		}, nil
	}

	res := def.Execute(args)
	res.Actions = append(slices.Clone(def.StaticActions), res.Actions...)
	if res.Blueprint == nil && def.Blueprint != nil {
		bp := def.Blueprint.Clone()
		res.Blueprint = &bp
	}
	return res, nil
}

func (p *Processor) play(res Result) {
	if res.Blueprint == nil || p.engine == nil {
		return
	}
	if err := p.engine.PlayBlueprint(*res.Blueprint); err != nil {
		p.log.Error().Err(err).Msg("play blueprint")
	}
}
