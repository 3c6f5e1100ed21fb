package ir

// Version constants for the compiled table format and the tool.
const (
	// RulesetVersion is bumped when the canonical dump layout changes.
	RulesetVersion = "1"

	// ToolVersion is the apigen version.
	ToolVersion = "0.1.0"
)
