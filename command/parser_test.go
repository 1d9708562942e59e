package command

import (
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoExec runs every substituted command as echo.
type echoExec struct {
	calls []string
}

func (e *echoExec) Execute(line string, vars map[string]string, depth int) (string, error) {
	p, err := parse(line, vars, e, depth)
	if err != nil {
		return "", err
	}
	maps.Copy(vars, p.Variables)
	e.calls = append(e.calls, line)
	return strings.Join(p.Args, " "), nil
}

func TestParseBasics(t *testing.T) {
	tests := []struct {
		line string
		vars map[string]string
		name string
		args []string
		bind map[string]string
	}{
		{line: `echo "user=test"`, name: "echo", args: []string{"user=test"}},
		{line: `USER=josh echo $USER`, name: "echo", args: []string{"josh"}, bind: map[string]string{"USER": "josh"}},
		{line: `echo $USER ${USER}x`, vars: map[string]string{"USER": "alice"}, name: "echo", args: []string{"alice", "alicex"}, bind: map[string]string{"USER": "alice"}},
		{line: `echo "hello world" $USER`, vars: map[string]string{"USER": "bob"}, name: "echo", args: []string{"hello world", "bob"}, bind: map[string]string{"USER": "bob"}},
		{line: `echo $MISSING.`, name: "echo", args: []string{"."}},
		{line: `echo "say \"hi\""`, name: "echo", args: []string{`say "hi"`}},
		{line: `A="x y" echo $A`, name: "echo", args: []string{"x y"}, bind: map[string]string{"A": "x y"}},
		{line: `A=1 B=a=b`, bind: map[string]string{"A": "1", "B": "a=b"}},
		{line: `  raw   osc:sine:440  `, name: "raw", args: []string{"osc:sine:440"}},
		{line: `raw preset:"808 Kick" dur:1`, name: "raw", args: []string{"preset:808 Kick", "dur:1"}},
		{line: `echo A=1`, name: "echo", args: []string{"A=1"}},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			p, err := Parse(tc.line, tc.vars, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.name, p.Name)
			assert.Equal(t, tc.args, p.Args)
			want := tc.bind
			if want == nil {
				want = map[string]string{}
			}
			assert.Equal(t, want, p.Variables)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, line := range []string{"", "   ", "\t\n"} {
		p, err := Parse(line, map[string]string{"A": "1"}, nil)
		require.NoError(t, err)
		assert.Empty(t, p.Name)
		assert.Empty(t, p.Args)
		assert.Empty(t, p.Variables, "carried variables are not echoed for %q", line)
	}
}

func TestParseDoesNotMutateCarriedVariables(t *testing.T) {
	vars := map[string]string{"A": "1"}
	p, err := Parse("A=2 B=3 echo", vars, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1"}, vars)
	assert.Equal(t, map[string]string{"A": "2", "B": "3"}, p.Variables)
}

func TestNestedSubstitutionRunsInnermostFirst(t *testing.T) {
	exec := &echoExec{}
	p, err := Parse("echo $(echo a $(echo b)) c", nil, exec)
	require.NoError(t, err)
	assert.Equal(t, []string{"a b", "c"}, p.Args)
	assert.Equal(t, []string{"echo b", "echo a $(echo b)"}, exec.calls)
}

func TestSubstitutionBindingsAreVisibleToLaterTokens(t *testing.T) {
	p, err := Parse("echo $(X=5 echo) $X", nil, &echoExec{})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "5"}, p.Args)
	assert.Equal(t, "5", p.Variables["X"])
}

func TestSubstitutionWithoutExecutor(t *testing.T) {
	p, err := Parse("echo $(raw osc:sine:$F)", map[string]string{"F": "220"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"raw osc:sine:220"}, p.Args)
}

func TestUnbalancedSubstitutionIsLiteral(t *testing.T) {
	p, err := Parse("echo $(echo", nil, &echoExec{})
	require.NoError(t, err)
	assert.Equal(t, []string{"$(echo"}, p.Args)
}

func TestSubstitutionDepthLimit(t *testing.T) {
	nest := func(n int) string {
		s := "x"
		for i := 0; i < n; i++ {
			s = "echo $(" + s + ")"
		}
		return s
	}

	_, err := Parse(nest(MaxDepth), nil, &echoExec{})
	require.NoError(t, err)

	_, err = Parse(nest(MaxDepth+1), nil, &echoExec{})
	require.ErrorIs(t, err, ErrSubstitutionDepth)

	_, err = Parse(nest(MaxDepth+1), nil, nil)
	require.ErrorIs(t, err, ErrSubstitutionDepth)
}
