package harness

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/roach88/apigen/internal/compiler"
	"github.com/roach88/apigen/internal/engine"
	"github.com/roach88/apigen/internal/testutil"
)

// Harness is the test execution engine.
// It runs scenarios with a fixed load ID and a deterministic sequence.
type Harness struct {
	engine *engine.Engine
	seq    *testutil.Sequence
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Load the scenario's config with a fixed load ID
// 2. Check the load error or warning count, if expected
// 3. Run type queries, then identifier queries, in order
// 4. Return result with pass/fail, trace, and errors
func Run(scenario *Scenario) (*Result, error) {
	policy, err := engine.PolicyByName(scenario.Policy)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	eng, err := engine.Load(scenario.Config,
		engine.WithLogger(logger),
		engine.WithIDGenerator(testutil.NewFixedIDGenerator(scenario.LoadID)),
		engine.WithIdentifierPolicy(policy),
	)

	result := NewResult()
	if scenario.LoadError != nil {
		if aerr := checkLoadError(scenario.LoadError, err); aerr != nil {
			result.AddError(aerr.Error())
		}
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	h := &Harness{
		engine: eng,
		seq:    testutil.NewSequence(),
		logger: logger,
	}

	if err := h.describeLoad(result); err != nil {
		return nil, err
	}
	if scenario.Warnings != nil && *scenario.Warnings != len(result.Warnings) {
		result.AddError(fmt.Sprintf("expected %d pattern warnings, got %d: %v",
			*scenario.Warnings, len(result.Warnings), result.Warnings))
	}

	h.runTypes(scenario.Types, result)
	h.runIdentifiers(scenario.Identifiers, result)

	return result, nil
}

// describeLoad records the load ID, fingerprint and warnings.
func (h *Harness) describeLoad(result *Result) error {
	fp, err := h.engine.Ruleset().Fingerprint()
	if err != nil {
		return fmt.Errorf("failed to fingerprint rules: %w", err)
	}
	result.LoadID = h.engine.LoadID()
	result.Fingerprint = fp
	for _, w := range h.engine.Warnings() {
		result.Warnings = append(result.Warnings, traceWarning(w))
	}
	return nil
}

// traceWarning renders w with the file reduced to its base name, so a trace
// is the same whatever directory the scenario was run from.
func traceWarning(w compiler.PatternWarning) string {
	if w.Pos.File != "" {
		w.Pos.File = filepath.Base(w.Pos.File)
	}
	return w.Error()
}

func (h *Harness) runTypes(queries []TypeQuery, result *Result) {
	for _, q := range queries {
		m := h.engine.ExplainType(q.Type, q.Format, q.BaseName)
		result.AddTypeTrace(q, m.Usage, m.Rule, m.Format, h.seq.Next())
		for _, err := range checkType(q, m) {
			result.AddError(err.Error())
		}
		h.logger.Debug("type query", "query", q.String(), "base_name", m.Usage.BaseName, "rule", m.Rule)
	}
}

func (h *Harness) runIdentifiers(queries []IdentifierQuery, result *Result) {
	for _, q := range queries {
		m := h.engine.ExplainIdentifier(q.Name, q.Scope)
		result.AddIdentifierTrace(q, m.Name, m.Rule, h.seq.Next())
		if err := checkIdentifier(q, m); err != nil {
			result.AddError(err.Error())
		}
		h.logger.Debug("identifier query", "query", q.String(), "identifier", m.Name, "rule", m.Rule)
	}
}
