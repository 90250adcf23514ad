package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func mapEnv(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestParseOverridesDefaultsAndEarlierLines(t *testing.T) {
	input := `
# comment
REGISTRY = registry.example.com
DOCKER_TAG=v1
DOCKER_TAG=v2
`
	bindings, err := Parse(strings.NewReader(input), map[string]string{
		"REGISTRY":   "registry.up42.com",
		"DOCKER_TAG": "latest",
		"UID":        "acme",
	}, noEnv)
	require.NoError(t, err)

	require.Equal(t, "registry.example.com", bindings.Get("REGISTRY"))
	require.Equal(t, "v2", bindings.Get("DOCKER_TAG"))
	require.Equal(t, "acme", bindings.Get("UID"))
}

func TestParseExpandsReferences(t *testing.T) {
	input := `
REGISTRY=registry.example.com
UID=acme
IMAGE=${REGISTRY}/${UID}/${DOCKER_TAG}
DOCKER_TAG=v1
`
	bindings, err := Parse(strings.NewReader(input), nil, noEnv)
	require.NoError(t, err)
	require.Equal(t, "registry.example.com/acme/v1", bindings.Get("IMAGE"))
}

func TestParseReferenceCycle(t *testing.T) {
	input := "A=${B}\nB=${A}\n"
	_, err := Parse(strings.NewReader(input), nil, noEnv)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSettingsCycle)
}

func TestParseSelfReferenceCycle(t *testing.T) {
	_, err := Parse(strings.NewReader("A=${A}\n"), nil, noEnv)
	require.ErrorIs(t, err, ErrSettingsCycle)
}

func TestParseEnvironmentFallback(t *testing.T) {
	input := "LOGIN=${USER}@${REGISTRY}\nREGISTRY=registry.example.com\n"
	bindings, err := Parse(strings.NewReader(input), nil, mapEnv(map[string]string{"USER": "jane"}))
	require.NoError(t, err)
	require.Equal(t, "jane@registry.example.com", bindings.Get("LOGIN"))

	// Environment consulted directly for undefined keys too.
	v, ok := bindings.Lookup("USER")
	require.True(t, ok)
	require.Equal(t, "jane", v)
}

func TestParseMalformedLine(t *testing.T) {
	_, err := Parse(strings.NewReader("NOT A BINDING\n"), nil, noEnv)
	require.Error(t, err)
	require.Contains(t, err.Error(), "KEY=value")
}

func TestExpandUnboundVariable(t *testing.T) {
	bindings, err := Parse(strings.NewReader("A=1\n"), nil, noEnv)
	require.NoError(t, err)

	_, err = bindings.Expand("${MISSING}")
	require.ErrorIs(t, err, ErrUnboundVariable)
	require.Contains(t, err.Error(), "MISSING")
}

func TestExpandLeavesBareDollarAlone(t *testing.T) {
	bindings, err := Parse(strings.NewReader("A=1\n"), nil, noEnv)
	require.NoError(t, err)

	out, err := bindings.Expand("cost is $5 for ${A}")
	require.NoError(t, err)
	require.Equal(t, "cost is $5 for 1", out)
}

func TestExpandUnresolvedReferenceInValue(t *testing.T) {
	// X references an undefined key. Loading succeeds; using X does not.
	bindings, err := Parse(strings.NewReader("X=${MISSING}/path\n"), nil, noEnv)
	require.NoError(t, err)

	_, err = bindings.Expand("${X}")
	require.ErrorIs(t, err, ErrUnboundVariable)
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	bindings, err := Parse(strings.NewReader("A=1\n"), nil, noEnv)
	require.NoError(t, err)

	extended := bindings.With(map[string]string{"A": "2", "B": "3"})
	require.Equal(t, "2", extended.Get("A"))
	require.Equal(t, "3", extended.Get("B"))
	require.Equal(t, "1", bindings.Get("A"))
	_, ok := bindings.Lookup("B")
	require.False(t, ok)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.settings")
	require.NoError(t, os.WriteFile(path, []byte("UID=acme\n"), 0o644))

	bindings, err := Load(path, map[string]string{"DOCKER_TAG": "v1"})
	require.NoError(t, err)
	require.Equal(t, "acme", bindings.Get("UID"))
	require.Equal(t, "v1", bindings.Get("DOCKER_TAG"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.settings"), nil)
	require.Error(t, err)
}
