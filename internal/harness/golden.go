package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/apigen/internal/ir"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	LoadID       string       `json:"load_id"`
	Fingerprint  string       `json:"fingerprint"`
	Warnings     []string     `json:"warnings"`
	Trace        []TraceEvent `json:"trace"`
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical
// JSON serialization.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"kind":  event.Kind,
			"seq":   event.Seq,
			"query": event.Query,
			"rule":  event.Rule,
		}
		switch event.Kind {
		case KindMapType:
			eventMap["format"] = event.Format
			if event.Usage != nil {
				eventMap["usage"] = event.Usage.Canonical()
			}
		case KindMapIdentifier:
			eventMap["identifier"] = event.Identifier
		}
		traceList[i] = eventMap
	}

	warnings := s.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"load_id":       s.LoadID,
		"fingerprint":   s.Fingerprint,
		"warnings":      warnings,
		"trace":         traceList,
	}
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Snapshot renders a result as the canonical JSON stored in golden files.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		LoadID:       result.LoadID,
		Fingerprint:  result.Fingerprint,
		Warnings:     result.Warnings,
		Trace:        result.Trace,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// AssertGolden compares the given result's trace against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
