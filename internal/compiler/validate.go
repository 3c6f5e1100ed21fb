package compiler

import (
	"fmt"

	"github.com/roach88/apigen/internal/ir"
	"github.com/roach88/apigen/internal/pattern"
)

// Lint finding codes (W100-W199)
const (
	// Type rules (W101-W109)
	WarnUnreachableFormat = "W101" // format alternative after a wildcard
	WarnDuplicateFormat   = "W102" // literal format already listed in the same rule
	WarnShadowedTypeRule  = "W103" // an earlier rule for the same type always matches

	// Rename tables (W110-W119)
	WarnDuplicatePattern = "W110" // literal pattern already listed in the same table
	WarnAfterFirstRegex  = "W111" // identifier rule never reached under first-regex
)

// Finding is a rule that loads fine but can never take effect.
type Finding struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (f Finding) Error() string {
	if f.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", f.Code, f.Line, f.Field, f.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Code, f.Field, f.Message)
}

// Lint reports rules that are dead under the resolution order. It returns
// every finding; an empty result means each rule can decide some query.
// stopAtRegex says identifier scans end at the first regex rule.
func Lint(rs *ir.Ruleset, stopAtRegex bool) []Finding {
	var findings []Finding
	findings = append(findings, lintTypes(rs.Types)...)
	findings = append(findings, lintRenames(rs.Identifiers, IdentifiersTable, stopAtRegex)...)
	findings = append(findings, lintRenames(rs.Substitutions, SubstTable, false)...)
	return findings
}

func lintTypes(rules []ir.TypeRule) []Finding {
	var findings []Finding
	// Source types whose earlier rule ends in a wildcard.
	closed := make(map[string]int)

	for i, rule := range rules {
		if first, ok := closed[rule.SourceType]; ok {
			// W103: the scan never continues past a rule with a wildcard
			findings = append(findings, Finding{
				Field:   fmt.Sprintf("types[%d]", i),
				Message: fmt.Sprintf("rule for %q is shadowed by types[%d], which matches every format", rule.SourceType, first),
				Code:    WarnShadowedTypeRule,
				Line:    rule.Pos.Line,
			})
			continue
		}

		literals := make(map[string]int)
		wildcard := -1
		for j, f := range rule.Formats {
			field := fmt.Sprintf("types[%d].formats[%d]", i, j)
			if wildcard >= 0 {
				// W101: nothing after a wildcard is consulted
				findings = append(findings, Finding{
					Field:   field,
					Message: fmt.Sprintf("format %q follows the wildcard at formats[%d] and is unreachable", f.Pattern, wildcard),
					Code:    WarnUnreachableFormat,
					Line:    rule.Pos.Line,
				})
				continue
			}

			switch p := f.Pattern.(type) {
			case pattern.Literal:
				if prev, dup := literals[string(p)]; dup {
					// W102: duplicate literal format
					findings = append(findings, Finding{
						Field:   field,
						Message: fmt.Sprintf("format %q is already mapped at formats[%d]", string(p), prev),
						Code:    WarnDuplicateFormat,
						Line:    rule.Pos.Line,
					})
					continue
				}
				literals[string(p)] = j
			case *pattern.Regex:
				if p.IsWildcard() {
					wildcard = j
				}
			}
		}
		if wildcard >= 0 {
			closed[rule.SourceType] = i
		}
	}
	return findings
}

func lintRenames(table ir.RenameTable, name string, stopAtRegex bool) []Finding {
	var findings []Finding
	literals := make(map[string]int)
	firstRegexAt := -1

	for i, e := range table {
		field := fmt.Sprintf("%s[%d]", name, i)
		if stopAtRegex && firstRegexAt >= 0 {
			// W111: the first regex rule ends every identifier scan
			findings = append(findings, Finding{
				Field:   field,
				Message: fmt.Sprintf("rule %q is never reached with the first-regex policy: %s[%d] is a regex", e.Pattern, name, firstRegexAt),
				Code:    WarnAfterFirstRegex,
			})
			continue
		}

		switch p := e.Pattern.(type) {
		case pattern.Literal:
			if prev, dup := literals[string(p)]; dup {
				// W110: duplicate literal pattern
				findings = append(findings, Finding{
					Field:   field,
					Message: fmt.Sprintf("pattern %q is already listed at %s[%d]", string(p), name, prev),
					Code:    WarnDuplicatePattern,
				})
				continue
			}
			literals[string(p)] = i
		case *pattern.Regex:
			if firstRegexAt < 0 {
				firstRegexAt = i
			}
		}
	}
	return findings
}
