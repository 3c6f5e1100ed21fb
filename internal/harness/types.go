package harness

import "github.com/roach88/apigen/internal/ir"

// Trace event kinds.
const (
	KindMapType       = "map_type"
	KindMapIdentifier = "map_identifier"
)

// TraceEvent records one query and the engine's answer.
type TraceEvent struct {
	Kind string `json:"kind"`
	Seq  int    `json:"seq"`

	// Query holds the call's arguments by name.
	Query map[string]string `json:"query"`

	// Usage is the MapType result.
	Usage *ir.TypeUsage `json:"usage,omitempty"`

	// Identifier is the MapIdentifier result.
	Identifier string `json:"identifier,omitempty"`

	// Rule and Format locate the rule that decided the answer; -1 if none.
	Rule   int `json:"rule"`
	Format int `json:"format,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// LoadID and Fingerprint identify the loaded rules.
	LoadID      string `json:"load_id,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`

	// Warnings are the rendered pattern warnings of the load.
	Warnings []string `json:"warnings,omitempty"`

	// Trace contains every query in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Warnings: []string{},
		Trace:    []TraceEvent{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTypeTrace records a MapType call.
func (r *Result) AddTypeTrace(q TypeQuery, usage ir.TypeUsage, rule, format, seq int) {
	r.Trace = append(r.Trace, TraceEvent{
		Kind: KindMapType,
		Seq:  seq,
		Query: map[string]string{
			"type":      q.Type,
			"format":    q.Format,
			"base_name": q.BaseName,
		},
		Usage:  &usage,
		Rule:   rule,
		Format: format,
	})
}

// AddIdentifierTrace records a MapIdentifier call.
func (r *Result) AddIdentifierTrace(q IdentifierQuery, name string, rule, seq int) {
	r.Trace = append(r.Trace, TraceEvent{
		Kind: KindMapIdentifier,
		Seq:  seq,
		Query: map[string]string{
			"name":  q.Name,
			"scope": q.Scope,
		},
		Identifier: name,
		Rule:       rule,
	})
}
