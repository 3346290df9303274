package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigHelpers(t *testing.T) {
	data := map[string]interface{}{
		"registry": map[string]interface{}{
			"name": "Web Code Editor",
		},
	}
	value, ok := getConfigValue(data, "registry.name")
	require.True(t, ok)
	require.Equal(t, "Web Code Editor", value)

	require.NoError(t, setConfigValue(data, "registry.name", "Docs Portal"))
	value, ok = getConfigValue(data, "registry.name")
	require.True(t, ok)
	require.Equal(t, "Docs Portal", value)

	require.NoError(t, setConfigValue(data, "sequence.length", 12))
	value, ok = getConfigValue(data, "sequence.length")
	require.True(t, ok)
	require.Equal(t, 12, value)

	_, ok = getConfigValue(data, "registry.name.deeper")
	require.False(t, ok)
	require.Error(t, setConfigValue(data, "registry..name", "x"))
}

func TestParseAndPrettyValue(t *testing.T) {
	require.Equal(t, true, parseValue("true"))
	require.Equal(t, int64(42), parseValue("42"))
	require.Equal(t, 1.5, parseValue("1.5"))
	require.Equal(t, "1.0.0", parseValue("1.0.0"))
	require.Equal(t, "[a, 1]", prettyValue([]interface{}{"a", 1}))
	require.Equal(t, "k: v", prettyValue(map[string]interface{}{"k": "v"}))
}
