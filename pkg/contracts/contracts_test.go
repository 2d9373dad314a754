package contracts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conditions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRegistry(t, `{
		"externalMethods": [
			{
				"name": "push",
				"preconditions": ["self.len() < cap"],
				"postconditions": ["self.len() == old(self.len()) + 1"]
			},
			{
				"name": "vec!",
				"preconditions": [],
				"postconditions": ["result.len() == args.len()"]
			}
		]
	}`)

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	push, ok := reg.Lookup("push")
	require.True(t, ok)
	assert.Equal(t, []string{"self.len() < cap"}, push.Preconditions)
	assert.Equal(t, []string{"self.len() == old(self.len()) + 1"}, push.Postconditions)

	vec, ok := reg.Lookup("vec!")
	require.True(t, ok)
	assert.Empty(t, vec.Preconditions)
	assert.Len(t, vec.Postconditions, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeRegistry(t, `{"externalMethods": [`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLookup_Miss(t *testing.T) {
	reg := New([]ExternalMethod{{Name: "push"}})

	_, ok := reg.Lookup("pop")
	assert.False(t, ok)

	// macro names are registered with the bang; the bare name does not match
	_, ok = reg.Lookup("vec")
	assert.False(t, ok)
}

func TestNew_DuplicateNamesFirstWins(t *testing.T) {
	reg := New([]ExternalMethod{
		{Name: "push", Preconditions: []string{"first"}},
		{Name: "push", Preconditions: []string{"second"}},
	})

	m, ok := reg.Lookup("push")
	require.True(t, ok)
	assert.Equal(t, []string{"first"}, m.Preconditions)
	assert.Equal(t, 2, reg.Len())
}

func TestEmpty(t *testing.T) {
	reg := Empty()
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Methods())

	_, ok := reg.Lookup("anything")
	assert.False(t, ok)
}
