package preset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresetsAreValid(t *testing.T) {
	lib := Builtin()
	require.Equal(t, 25, lib.Len())
	for _, p := range lib.All() {
		require.NoError(t, p.Validate(), p.Name)
		assert.True(t, strings.HasPrefix(p.Command, "raw "), p.Name)
		assert.NotEmpty(t, p.Keywords(), p.Name)
	}
}

func TestFindIgnoresCaseAndQuotes(t *testing.T) {
	lib := Builtin()
	for _, name := range []string{"808 Kick", "808 kick", `"808 KICK"`, "  808 Kick  "} {
		p, ok := lib.Find(name)
		require.True(t, ok, name)
		assert.Equal(t, "808 Kick", p.Name)
	}
	_, ok := lib.Find("808")
	assert.False(t, ok, "lookup must be exact")
	_, ok = lib.Find("")
	assert.False(t, ok)
}

func TestKeywordsDropCommandName(t *testing.T) {
	p := Preset{Command: "raw osc:sine:880 dur:1"}
	assert.Equal(t, []string{"osc:sine:880", "dur:1"}, p.Keywords())
	assert.Nil(t, Preset{}.Keywords())
}

func TestSearchAndCategories(t *testing.T) {
	lib := Builtin()
	hits := lib.Search("kick")
	require.Len(t, hits, 2)
	assert.Equal(t, "Kick Drum (Tight)", hits[0].Name)

	assert.NotEmpty(t, lib.Search("pads"), "category text is searchable")
	assert.Empty(t, lib.Search("zzz"))

	assert.Equal(t, []Category{Percussion, SoundEffects, Instruments, PadsAndDrones, Abstract}, lib.Categories())
	assert.Len(t, lib.ByCategory(Percussion), 7)
}

func TestAddValidates(t *testing.T) {
	lib := NewLibrary()
	require.Error(t, lib.Add(Preset{Name: "x", Command: "osc:sine"}))
	require.NoError(t, lib.Add(Preset{Name: "x", Command: "raw osc:sine"}))
	p, ok := lib.Find("X")
	require.True(t, ok)
	assert.Equal(t, User, p.Category)
}
