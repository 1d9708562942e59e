package command

import (
	"errors"
	"maps"
	"regexp"
	"strings"
)

// MaxDepth bounds nested $(...) substitution. A line nested deeper fails to
// parse with ErrSubstitutionDepth.
const MaxDepth = 10

// ErrSubstitutionDepth is returned when $(...) substitution nests deeper
// than MaxDepth.
var ErrSubstitutionDepth = errors.New("too many levels of command substitution")

var (
	assignPattern = regexp.MustCompile(`(?s)^[^=\s]+=.+$`)
	varPattern    = regexp.MustCompile(`\$(\w+)|\$\{(\w+)\}`)
)

// Parsed is one tokenized and substituted command line.
type Parsed struct {
	// Variables holds the carried-over bindings merged with the line's own
	// NAME=value assignments and those made by substituted commands.
	Variables map[string]string
	Name      string
	Args      []string
}

// Executor runs the inner text of a $(...) substitution as a full command
// and returns its output. Bindings made by the inner command are written
// into vars.
type Executor interface {
	Execute(line string, vars map[string]string, depth int) (string, error)
}

// Parse tokenizes line, consumes leading NAME=value assignments and
// resolves $(...) and $NAME references in the command name and arguments.
// With a nil exec, substituted commands are parsed but not run, and their
// resolved text is substituted.
func Parse(line string, vars map[string]string, exec Executor) (Parsed, error) {
	return parse(line, vars, exec, 0)
}

func parse(line string, vars map[string]string, exec Executor, depth int) (Parsed, error) {
	if depth > MaxDepth {
		return Parsed{}, ErrSubstitutionDepth
	}
	merged := maps.Clone(vars)
	if merged == nil {
		merged = make(map[string]string)
	}
	toks := tokenize(strings.TrimSpace(line))
	if len(toks) == 0 {
		return Parsed{}, nil
	}

	i := 0
	for ; i < len(toks) && !toks[i].quoted && assignPattern.MatchString(toks[i].text); i++ {
		name, value, _ := strings.Cut(toks[i].text, "=")
		merged[name] = value
	}

	s := &substituter{vars: merged, exec: exec, depth: depth}
	out := Parsed{Variables: merged}
	if i == len(toks) {
		return out, nil
	}
	name, err := s.resolve(toks[i].text)
	if err != nil {
		return Parsed{}, err
	}
	out.Name = name
	for _, t := range toks[i+1:] {
		arg, err := s.resolve(t.text)
		if err != nil {
			return Parsed{}, err
		}
		out.Args = append(out.Args, arg)
	}
	return out, nil
}

type token struct {
	text string
	// quoted is set when the token starts with a double quote; such a token
	// is never an assignment.
	quoted bool
}

// tokenize splits s on whitespace outside double quotes and outside
// $(...) spans. Quotes are removed and \" inside them is unescaped;
// substitution spans are kept verbatim for the inner parse.
func tokenize(s string) []token {
	var (
		toks   []token
		b      strings.Builder
		inTok  bool
		quoted bool
	)
	flush := func() {
		if inTok {
			toks = append(toks, token{text: b.String(), quoted: quoted})
		}
		b.Reset()
		inTok, quoted = false, false
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			if !inTok {
				quoted = true
			}
			inTok = true
			i++
			for i < len(s) && s[i] != '"' {
				if s[i] == '\\' && i+1 < len(s) && s[i+1] == '"' {
					b.WriteByte('"')
					i += 2
					continue
				}
				b.WriteByte(s[i])
				i++
			}
			i++
		case c == '$' && i+1 < len(s) && s[i+1] == '(':
			end, _ := closeParen(s, i+2)
			b.WriteString(s[i:end])
			inTok = true
			i = end
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
			i++
		default:
			b.WriteByte(c)
			inTok = true
			i++
		}
	}
	flush()
	return toks
}

// closeParen scans from start, just past a "$(", to the matching ")". It
// returns the index after it and whether the span was balanced.
func closeParen(s string, start int) (int, bool) {
	depth := 1
	j := start
	for j < len(s) && depth > 0 {
		switch {
		case s[j] == '$' && j+1 < len(s) && s[j+1] == '(':
			depth++
			j++
		case s[j] == ')':
			depth--
		}
		j++
	}
	return j, depth == 0
}

type substituter struct {
	vars  map[string]string
	exec  Executor
	depth int
}

// resolve runs command substitution to a fixed point, then expands
// variables.
func (s *substituter) resolve(text string) (string, error) {
	cur := text
	for n := 0; n < MaxDepth; n++ {
		next, err := s.commands(cur)
		if err != nil {
			return "", err
		}
		if next == cur {
			break
		}
		cur = next
	}
	return s.variables(cur), nil
}

func (s *substituter) commands(text string) (string, error) {
	if !strings.Contains(text, "$(") {
		return text, nil
	}
	var b strings.Builder
	for i := 0; i < len(text); {
		if text[i] == '$' && i+1 < len(text) && text[i+1] == '(' {
			end, ok := closeParen(text, i+2)
			if ok {
				out, err := s.run(text[i+2 : end-1])
				if err != nil {
					return "", err
				}
				b.WriteString(out)
				i = end
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String(), nil
}

func (s *substituter) run(inner string) (string, error) {
	if s.exec != nil {
		out, err := s.exec.Execute(inner, s.vars, s.depth+1)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(out, "\n"), nil
	}
	p, err := parse(inner, s.vars, nil, s.depth+1)
	if err != nil {
		return "", err
	}
	maps.Copy(s.vars, p.Variables)
	return strings.TrimSpace(strings.Join(append([]string{p.Name}, p.Args...), " ")), nil
}

func (s *substituter) variables(text string) string {
	if !strings.Contains(text, "$") {
		return text
	}
	return varPattern.ReplaceAllStringFunc(text, func(m string) string {
		sm := varPattern.FindStringSubmatch(m)
		name := sm[1]
		if name == "" {
			name = sm[2]
		}
		return s.vars[name]
	})
}
