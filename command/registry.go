package command

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-sfx/blueprint"
)

// Action is a UI side effect requested by a command. The host decides
// what it means.
type Action string

const (
	ClearHistory        Action = "clearHistory"
	ToggleLatencyWidget Action = "toggleLatencyWidget"
	Reboot              Action = "reboot"
)

// Arg describes one argument position of a command for help output and
// completion. An Arg is either a Literal subcommand, possibly with its own
// Args, or a Placeholder. A Placeholder ending in "..." takes any number
// of values.
type Arg struct {
	Literal     string
	Placeholder string
	Description string
	Required    bool
	Suggest     func(current string) []string
	Args        []Arg
}

func (a Arg) variadic() bool {
	return a.Literal == "" && strings.HasSuffix(a.Placeholder, "...")
}

func (a Arg) usage() string {
	if a.Literal != "" {
		return a.Literal
	}
	if a.Required {
		return "<" + a.Placeholder + ">"
	}
	return "[" + a.Placeholder + "]"
}

// Result is the outcome of running one command line.
type Result struct {
	Output    string
	Actions   []Action
	Blueprint *blueprint.Blueprint
}

// Definition is a registered command. StaticActions and Blueprint apply on
// every run; a Blueprint returned by Execute takes precedence. Help, when
// set, replaces the generated usage text of "help <name>".
type Definition struct {
	Name          string
	Description   string
	Help          string
	Args          []Arg
	StaticActions []Action
	Blueprint     *blueprint.Blueprint
	Execute       func(args []string) Result
}

// Usage renders a one-line synopsis from the argument list.
func (d *Definition) Usage() string {
	parts := []string{d.Name}
	var literals []string
	for _, a := range d.Args {
		if a.Literal != "" {
			literals = append(literals, a.Literal)
			continue
		}
		parts = append(parts, a.usage())
	}
	if len(literals) > 0 {
		parts = append(parts, "["+strings.Join(literals, "|")+"]")
	}
	return strings.Join(parts, " ")
}

// Registry maps case-insensitive names to definitions and keeps
// registration order.
type Registry struct {
	defs  map[string]*Definition
	order []*Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds d. Names must be unique ignoring case.
func (r *Registry) Register(d Definition) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("command name must not be empty")
	}
	if d.Execute == nil {
		return fmt.Errorf("command %q has no Execute func", d.Name)
	}
	key := strings.ToLower(d.Name)
	if _, dup := r.defs[key]; dup {
		return fmt.Errorf("command %q already registered", d.Name)
	}
	def := d
	r.defs[key] = &def
	r.order = append(r.order, &def)
	return nil
}

func (r *Registry) Lookup(name string) (*Definition, bool) {
	d, ok := r.defs[strings.ToLower(name)]
	return d, ok
}

// Names returns command names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	for i, d := range r.order {
		out[i] = d.Name
	}
	return out
}

func (r *Registry) Definitions() []*Definition {
	return append([]*Definition(nil), r.order...)
}

// suggestArgs completes the argument being typed. prev are the complete
// arguments before it; they select literal branches or are consumed by
// placeholders.
func suggestArgs(args []Arg, prev []string, current string) []string {
	for _, p := range prev {
		next, ok := advance(args, p)
		if !ok {
			return nil
		}
		args = next
	}
	var out []string
	for _, a := range args {
		switch {
		case a.Literal != "":
			if strings.HasPrefix(strings.ToLower(a.Literal), strings.ToLower(current)) {
				out = append(out, a.Literal)
			}
		case a.Suggest != nil:
			out = append(out, a.Suggest(current)...)
		}
	}
	return out
}

func advance(args []Arg, value string) ([]Arg, bool) {
	for _, a := range args {
		if a.Literal != "" && strings.EqualFold(a.Literal, value) {
			return a.Args, true
		}
	}
	for _, a := range args {
		if a.variadic() {
			return args, true
		}
		if a.Literal == "" {
			return a.Args, true
		}
	}
	return nil, false
}
