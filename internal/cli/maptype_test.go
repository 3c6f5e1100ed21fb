package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapTypeOpts(format string) *RootOptions {
	opts := testOpts(format)
	opts.Config = gtadConfig
	return opts
}

func TestMapTypeText(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "literal format",
			args: []string{"integer", "int64"},
			want: "base_name: int64\nrule: integer #0, format #0\n",
		},
		{
			name: "regex format",
			args: []string{"integer", "uint16"},
			want: "base_name: uint16\nunsigned: \"\"\nrule: integer #0, format #1\n",
		},
		{
			name: "wildcard without format",
			args: []string{"integer"},
			want: "base_name: integer\nrule: integer #0, format #2\n",
		},
		{
			name: "unknown type",
			args: []string{"object", "json"},
			want: "base_name: json\nrule: none (fallback)\n",
		},
		{
			name: "requested base name wins",
			args: []string{"object", "json", "--base-name", "RoomEvent"},
			want: "base_name: RoomEvent\nrule: none (fallback)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, NewMapTypeCommand(mapTypeOpts("text")), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestMapTypeJSON(t *testing.T) {
	out, _, err := execute(t, NewMapTypeCommand(mapTypeOpts("json")), "string", "date")
	require.NoError(t, err)

	var result TypeResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, result.Matched)
	assert.Equal(t, 1, result.Rule)
	assert.Equal(t, 0, result.Format)
	assert.Equal(t, "date", result.Usage["base_name"])
	assert.Equal(t, map[string]any{"imports": "<QtCore/QDate>"}, result.Usage["attributes"])
	assert.Equal(t, []string{"<QtCore/QDate>"}, result.Imports)
}

func TestMapTypeMissJSON(t *testing.T) {
	out, _, err := execute(t, NewMapTypeCommand(mapTypeOpts("json")), "object")
	require.NoError(t, err)

	var result TypeResult
	decodeResponse(t, out, &result)
	assert.False(t, result.Matched)
	assert.Equal(t, -1, result.Rule)
	assert.Equal(t, map[string]any{"base_name": "object"}, result.Usage)
	assert.Empty(t, result.Imports)
}

func TestMapTypeParams(t *testing.T) {
	out, _, err := execute(t, NewMapTypeCommand(mapTypeOpts("json")),
		"array", "--param", "string", "--param", "string:date")
	require.NoError(t, err)

	var result TypeResult
	decodeResponse(t, out, &result)
	assert.Equal(t, []string{"<QtCore/QDate>", "<QtCore/QString>", "<QtCore/QVector>"}, result.Imports)

	params, ok := result.Usage["param_types"].([]any)
	require.True(t, ok)
	require.Len(t, params, 2)
	assert.Equal(t, "string", params[0].(map[string]any)["base_name"])
	assert.Equal(t, "date", params[1].(map[string]any)["base_name"])
}

func TestMapTypeParamsText(t *testing.T) {
	out, _, err := execute(t, NewMapTypeCommand(mapTypeOpts("text")), "array", "--param", "integer:int64")
	require.NoError(t, err)
	assert.Contains(t, out, "param 0:\n  base_name: int64\n")
}

func TestMapTypeArgs(t *testing.T) {
	_, _, err := execute(t, NewMapTypeCommand(mapTypeOpts("text")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts between 1 and 2 arg(s)")
}

func TestMapTypeNeedsConfig(t *testing.T) {
	out, _, err := execute(t, NewMapTypeCommand(testOpts("text")), "integer")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}
