package ir

import (
	"github.com/roach88/apigen/internal/doctree"
	"github.com/roach88/apigen/internal/pattern"
)

// TypeUsage describes one occurrence of a target-language type.
// Rules contribute Attributes and Lists; the emitted BaseName is decided by
// the resolver's fallback chain.
type TypeUsage struct {
	BaseName   string              `json:"base_name,omitempty"`
	Attributes map[string]string   `json:"attributes,omitempty"`
	Lists      map[string][]string `json:"lists,omitempty"`

	// ParamTypes is filled by Specialize for parameterized types.
	ParamTypes []TypeUsage `json:"param_types,omitempty"`
}

// FormatRule maps a source format pattern to a usage.
// An empty format key in the document compiles to the wildcard pattern.
type FormatRule = pattern.Entry[TypeUsage]

// TypeRule holds the ordered format alternatives for one source type name.
type TypeRule struct {
	SourceType string
	Formats    pattern.Table[TypeUsage]
	Pos        doctree.Pos
}

// Rename is the value side of an identifier or substitution entry.
type Rename struct {
	// Replacement is the text as written in the document. For regex
	// entries it may reference groups as $1, $& or $$.
	Replacement string
}

// RenameTable is an ordered (pattern, replacement) table.
type RenameTable = pattern.Table[Rename]

// Ruleset is the complete set of compiled analyzer tables.
type Ruleset struct {
	Types         []TypeRule
	Identifiers   RenameTable
	Substitutions RenameTable
}
