package command

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-sfx/blueprint"
	"github.com/cwbudde/algo-sfx/keyword"
	"github.com/cwbudde/algo-sfx/preset"
)

const presetsHelp = `Usage: presets [subcommand] [query]
Access and play pre-defined sounds from the preset library.

Subcommands:
  list              List all available presets, grouped by category. (Default)
  play "<name>"     Play a preset by its full name in quotes.
  search <term>     Search for presets by name, description or category.
  categories        List the preset categories.

Examples:
  presets
  presets play "Kick Drum (Tight)"
  presets search laser`

func (p *Processor) builtins() []Definition {
	return []Definition{
		{
			Name:        "help",
			Description: "Displays a list of available commands, or details for one.",
			Args: []Arg{{
				Placeholder: "command",
				Description: "The command to describe.",
				Suggest:     p.suggestCommands,
			}},
			Blueprint: blipBlueprint(blueprint.Sine, 880),
			Execute:   p.help,
		},
		{
			Name:          "clear",
			Description:   "Clears the terminal output.",
			StaticActions: []Action{ClearHistory},
			Blueprint:     swooshBlueprint(),
			Execute:       func([]string) Result { return Result{} },
		},
		{
			Name:        "echo",
			Description: "Return the provided args back.",
			Args:        []Arg{{Placeholder: "text...", Description: "Text to print."}},
			Blueprint:   echoBlueprint(),
			Execute: func(args []string) Result {
				return Result{Output: strings.Join(args, " ")}
			},
		},
		{
			Name:        "raw",
			Description: "Generates a sound on-the-fly from keyword arguments.",
			Help:        keyword.HelpText,
			Args: []Arg{{
				Placeholder: "keywords...",
				Description: `A space-separated list of sound-building keywords (e.g., osc:sine:440, preset:"808 Kick").`,
				Suggest: func(current string) []string {
					return keyword.Suggest(current, p.presets)
				},
			}},
			Execute: p.raw,
		},
		{
			Name:        "presets",
			Description: "Lists and plays pre-defined sound presets.",
			Help:        presetsHelp,
			Args: []Arg{
				{Literal: "list", Description: "List all available presets, grouped by category. (Default)"},
				{Literal: "play", Description: "Play a preset by its full name.", Args: []Arg{{
					Placeholder: "preset_name",
					Description: "The name of the preset, in quotes if it contains spaces.",
					Required:    true,
					Suggest:     p.suggestPresets,
				}}},
				{Literal: "search", Description: "Search for presets by name, description or category.", Args: []Arg{{
					Placeholder: "search_term",
					Description: "A term to search for.",
					Required:    true,
				}}},
				{Literal: "categories", Description: "List the preset categories."},
			},
			Execute: p.presetsCommand,
		},
		{
			Name:        "test",
			Description: "Triggers a complex diagnostic sound to test the audio engine.",
			Execute: func([]string) Result {
				return Result{
					Output:    "Executing audio diagnostics... A complex sound should play.",
					Blueprint: zenGardenBlueprint(),
				}
			},
		},
		{
			Name:        "test:error",
			Description: "Plays the error sound.",
			Execute: func([]string) Result {
				return Result{Output: "Error: This is a test error.", Blueprint: ErrorBlueprint()}
			},
		},
		{
			Name:          "toggle:latency",
			Description:   "Shows or hides the audio latency diagnostic widget.",
			StaticActions: []Action{ToggleLatencyWidget},
			Blueprint:     blipBlueprint(blueprint.Triangle, 600),
			Execute:       p.toggleLatency,
		},
		{
			Name:        "play:seagull",
			Description: "Plays a seagull call over a distant ocean rumble.",
			Execute: func([]string) Result {
				return Result{Output: "Playing seagull...", Blueprint: seagullBlueprint()}
			},
		},
		{
			Name:        "stop",
			Description: "Stop any currently playing audio.",
			Execute:     p.stop,
		},
		{
			Name:          "reboot",
			Description:   "Restarts the terminal session.",
			StaticActions: []Action{Reboot},
			Blueprint:     rebootBlueprint(),
			Execute: func([]string) Result {
				return Result{Output: "Rebooting..."}
			},
		},
		{
			Name:        "history",
			Description: "Shows previously entered commands.",
			Execute:     p.historyCommand,
		},
		{
			Name:        "vars",
			Description: "Shows the session variables.",
			Execute:     p.varsCommand,
		},
	}
}

func (p *Processor) help(args []string) Result {
	if len(args) == 0 {
		return Result{Output: p.helpIndex()}
	}
	def, ok := p.registry.Lookup(args[0])
	if !ok {
		return Result{Output: "No help for unknown command: " + args[0], Blueprint: ErrorBlueprint()}
	}
	if def.Help != "" {
		return Result{Output: def.Help}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\nUsage: %s", def.Name, def.Description, def.Usage())
	if len(def.Args) > 0 {
		b.WriteString("\n")
		w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		writeArgs(w, def.Args, "  ")
		w.Flush()
	}
	return Result{Output: strings.TrimRight(b.String(), "\n")}
}

func writeArgs(w *tabwriter.Writer, args []Arg, indent string) {
	for _, a := range args {
		fmt.Fprintf(w, "%s%s\t%s\n", indent, a.usage(), a.Description)
		writeArgs(w, a.Args, indent+"  ")
	}
}

func (p *Processor) helpIndex() string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, d := range p.registry.Definitions() {
		fmt.Fprintf(w, "  %s\t%s\n", d.Name, d.Description)
	}
	w.Flush()
	b.WriteString("Type '<command> -h' for details.")
	return b.String()
}

func (p *Processor) suggestCommands(current string) []string {
	var out []string
	for _, name := range p.registry.Names() {
		if strings.HasPrefix(name, strings.ToLower(current)) {
			out = append(out, name)
		}
	}
	return out
}

func (p *Processor) suggestPresets(current string) []string {
	search := strings.ToLower(strings.TrimPrefix(current, `"`))
	var out []string
	for _, pr := range p.presets.All() {
		if strings.HasPrefix(strings.ToLower(pr.Name), search) {
			out = append(out, `"`+pr.Name+`"`)
		}
	}
	return out
}

func (p *Processor) raw(args []string) Result {
	if len(args) == 0 {
		return Result{Output: keyword.HelpText}
	}
	res := keyword.Build(args, p.presets)
	report := res.Report
	if err := res.Blueprint.Validate(); err != nil {
		report = append(report, "! Invalid blueprint: "+err.Error())
		return Result{
			Output:    "Generating sound with blueprint:\n" + strings.Join(report, "\n"),
			Blueprint: ErrorBlueprint(),
		}
	}
	bp := res.Blueprint
	return Result{
		Output:    "Generating sound with blueprint:\n" + strings.Join(report, "\n"),
		Blueprint: &bp,
	}
}

func (p *Processor) presetsCommand(args []string) Result {
	sub := "list"
	if len(args) > 0 {
		sub = strings.ToLower(args[0])
	}
	arg := ""
	if len(args) > 1 {
		arg = strings.Join(args[1:], " ")
	}

	switch sub {
	case "list":
		return Result{Output: p.listPresets()}
	case "play":
		return p.playPreset(arg)
	case "search":
		return p.searchPresets(arg)
	case "categories":
		var b strings.Builder
		b.WriteString("Preset categories:")
		for _, c := range p.presets.Categories() {
			fmt.Fprintf(&b, "\n  %s (%d)", c, len(p.presets.ByCategory(c)))
		}
		return Result{Output: b.String()}
	}
	return Result{Output: presetsHelp}
}

func (p *Processor) listPresets() string {
	var b strings.Builder
	b.WriteString("Available Presets:")
	for _, c := range p.presets.Categories() {
		fmt.Fprintf(&b, "\n\n--- %s ---", strings.ToUpper(string(c)))
		for _, pr := range p.presets.ByCategory(c) {
			b.WriteString("\n" + presetLine(pr))
		}
	}
	b.WriteString("\n\nUse 'presets play \"<name>\"' to play a sound.")
	return b.String()
}

func presetLine(pr preset.Preset) string {
	return fmt.Sprintf("  - %q: %s", pr.Name, pr.Description)
}

func (p *Processor) playPreset(name string) Result {
	if strings.TrimSpace(name) == "" {
		return Result{Output: `Error: Missing preset name. Usage: presets play "<name>"`}
	}
	pr, ok := p.presets.Find(name)
	if !ok {
		return Result{Output: "! Preset not found: " + name, Blueprint: ErrorBlueprint()}
	}
	res := keyword.Build(pr.Keywords(), p.presets)
	if err := res.Blueprint.Validate(); err != nil {
		return Result{Output: fmt.Sprintf("! Invalid blueprint for preset %s: %v", pr.Name, err), Blueprint: ErrorBlueprint()}
	}
	bp := res.Blueprint
	return Result{Output: "Playing preset: " + pr.Name, Blueprint: &bp}
}

func (p *Processor) searchPresets(term string) Result {
	if strings.TrimSpace(term) == "" {
		return Result{Output: "Error: Missing search term. Usage: presets search <term>"}
	}
	found := p.presets.Search(term)
	if len(found) == 0 {
		return Result{Output: fmt.Sprintf("No presets found matching %q.", term)}
	}
	lines := make([]string, len(found))
	for i, pr := range found {
		lines[i] = presetLine(pr)
	}
	return Result{Output: fmt.Sprintf("Found %d presets:\n%s", len(found), strings.Join(lines, "\n"))}
}

func (p *Processor) toggleLatency([]string) Result {
	out := "Toggling audio latency widget..."
	if lr, ok := p.engine.(LatencyReporter); ok {
		out += "\n" + lr.LatencyReport()
	}
	return Result{Output: out}
}

func (p *Processor) stop([]string) Result {
	if p.engine == nil {
		return Result{Output: "No audio engine attached."}
	}
	if err := p.engine.Reset(); err != nil {
		return Result{Output: "Error: " + err.Error(), Blueprint: ErrorBlueprint()}
	}
	return Result{Output: "Audio engine reset."}
}

func (p *Processor) historyCommand([]string) Result {
	entries := p.history.Entries()
	if len(entries) == 0 {
		return Result{Output: "History is empty."}
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%4d  %s", i+1, e)
	}
	return Result{Output: strings.Join(lines, "\n")}
}

func (p *Processor) varsCommand([]string) Result {
	if len(p.vars) == 0 {
		return Result{Output: "No variables set."}
	}
	names := make([]string, 0, len(p.vars))
	for name := range p.vars {
		names = append(names, name)
	}
	slices.Sort(names)
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = name + "=" + p.vars[name]
	}
	return Result{Output: strings.Join(lines, "\n")}
}
