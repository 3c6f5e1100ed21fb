package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/apigen/internal/engine"
)

const (
	gtadConfig     = "testdata/gtad.yaml"
	gtadCUEConfig  = "testdata/gtad.cue"
	warningsConfig = "testdata/warnings.yaml"
	brokenConfig   = "testdata/broken.yaml"
)

// testOpts returns options as the root command would set them, with
// engine logs discarded.
func testOpts(format string) *RootOptions {
	return &RootOptions{
		Format: format,
		Policy: engine.PolicyFirstRegex,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// execute runs cmd with args and returns its stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// decodeResponse decodes a JSON response and re-decodes its data into data.
func decodeResponse(t *testing.T, raw string, data any) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	if data != nil && resp.Data != nil {
		b, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, data))
	}
	return resp
}
