package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "apigen", cmd.Use)
	assert.Contains(t, cmd.Long, "rule document")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"compile", "validate", "map-type", "map-id", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	policyFlag := cmd.PersistentFlags().Lookup("policy")
	require.NotNil(t, policyFlag)
	assert.Equal(t, "first-regex", policyFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	require.NotNil(t, cmd.PersistentFlags().Lookup("settings"))
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		command string
		flag    string
	}{
		{"compile", "output"},
		{"validate", "strict"},
		{"map-type", "base-name"},
		{"map-type", "param"},
		{"test", "update"},
		{"test", "filter"},
		{"test", "golden-dir"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.flag, func(t *testing.T) {
			cmd := NewRootCommand()
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)
			assert.NotNil(t, sub.Flags().Lookup(tt.flag))
		})
	}
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	_, _, err := execute(t, NewRootCommand(), "--format", "xml", "validate", gtadConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRootRejectsUnknownPolicy(t *testing.T) {
	_, _, err := execute(t, NewRootCommand(), "--policy", "greedy", "map-id", "signed", "-c", gtadConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown identifier policy "greedy"`)
}

func TestRootEndToEnd(t *testing.T) {
	out, _, err := execute(t, NewRootCommand(), "map-id", "signed", "-c", gtadConfig)
	require.NoError(t, err)
	assert.Equal(t, "isSigned\n", out)
}

func TestRootSettingsFile(t *testing.T) {
	// settings.yaml selects JSON output and points config at gtad.yaml
	out, _, err := execute(t, NewRootCommand(), "--settings", "testdata/settings.yaml", "map-id", "userId", "Room")
	require.NoError(t, err)

	var result IdentifierResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "userID", result.Identifier)
	assert.Equal(t, "Room/userId", result.Scoped)
}

func TestRootVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, NewRootCommand(), "-v", "validate", gtadConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, errOut, "rules loaded")
	assert.Contains(t, errOut, "load_id=")
}
