package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"qt_types", "first_regex"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestTraceSnapshotCanonicalMap(t *testing.T) {
	snapshot := TraceSnapshot{
		ScenarioName: "s",
		LoadID:       "l",
		Trace: []TraceEvent{
			{Kind: KindMapIdentifier, Seq: 1, Query: map[string]string{"name": "a", "scope": "b"}, Identifier: "a", Rule: -1},
		},
	}

	m := snapshot.toCanonicalMap()
	assert.Equal(t, []string{}, m["warnings"])

	trace := m["trace"].([]any)
	require.Len(t, trace, 1)
	event := trace[0].(map[string]any)
	assert.Equal(t, "a", event["identifier"])
	assert.Equal(t, -1, event["rule"])
	assert.NotContains(t, event, "format")
	assert.NotContains(t, event, "usage")
}
