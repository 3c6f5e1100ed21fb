package engine

import (
	"fmt"

	"github.com/roach88/apigen/internal/ir"
	"github.com/roach88/apigen/internal/pattern"
)

// Policy names accepted by PolicyByName.
const (
	PolicyFirstRegex = "first-regex"
	PolicyContinue   = "continue"
)

// IdentifierMatch is the outcome of an identifier lookup.
type IdentifierMatch struct {
	// Name is the identifier to emit.
	Name string
	// Scoped is the "scope/name" string regex rules are applied to.
	Scoped string
	// Rule is the index of the rule that decided Name, or -1 when the name
	// passed through unchanged.
	Rule int
	// Matched is false when a regex rule decided Name without matching.
	Matched bool
}

// IdentifierPolicy decides how the identifier table is scanned.
type IdentifierPolicy interface {
	Resolve(rules ir.RenameTable, baseName, scope string) IdentifierMatch
	// StopsAtFirstRegex reports whether rules after the first regex rule
	// are never consulted.
	StopsAtFirstRegex() bool
}

// FirstRegexPolicy is the default policy.
//
// Rules are scanned in order. The first regex rule encountered ends the scan:
// its substitution is applied to "scope/name" and the result returned, even
// when the expression does not match (the scoped name then comes back
// unchanged). A literal rule before it that equals the bare or the scoped
// name returns its replacement. With no applicable rule the bare name is
// returned.
type FirstRegexPolicy struct{}

func (FirstRegexPolicy) StopsAtFirstRegex() bool { return true }

func (FirstRegexPolicy) Resolve(rules ir.RenameTable, baseName, scope string) IdentifierMatch {
	scoped := scope + "/" + baseName
	for i, r := range rules {
		if re, ok := r.Pattern.(*pattern.Regex); ok {
			return IdentifierMatch{
				Name:    re.Substitute(scoped, r.Value.Replacement),
				Scoped:  scoped,
				Rule:    i,
				Matched: re.Match(scoped),
			}
		}
		if r.Pattern.Match(baseName) || r.Pattern.Match(scoped) {
			return IdentifierMatch{Name: r.Value.Replacement, Scoped: scoped, Rule: i, Matched: true}
		}
	}
	return IdentifierMatch{Name: baseName, Scoped: scoped, Rule: -1}
}

// ContinuePolicy skips regex rules that do not match the scoped name and
// keeps scanning. The first rule that matches decides the result.
type ContinuePolicy struct{}

func (ContinuePolicy) StopsAtFirstRegex() bool { return false }

func (ContinuePolicy) Resolve(rules ir.RenameTable, baseName, scope string) IdentifierMatch {
	scoped := scope + "/" + baseName
	for i, r := range rules {
		if re, ok := r.Pattern.(*pattern.Regex); ok {
			if !re.Match(scoped) {
				continue
			}
			return IdentifierMatch{
				Name:    re.Substitute(scoped, r.Value.Replacement),
				Scoped:  scoped,
				Rule:    i,
				Matched: true,
			}
		}
		if r.Pattern.Match(baseName) || r.Pattern.Match(scoped) {
			return IdentifierMatch{Name: r.Value.Replacement, Scoped: scoped, Rule: i, Matched: true}
		}
	}
	return IdentifierMatch{Name: baseName, Scoped: scoped, Rule: -1}
}

// PolicyByName returns the policy registered under name.
func PolicyByName(name string) (IdentifierPolicy, error) {
	switch name {
	case "", PolicyFirstRegex:
		return FirstRegexPolicy{}, nil
	case PolicyContinue:
		return ContinuePolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown identifier policy %q (want %q or %q)", name, PolicyFirstRegex, PolicyContinue)
	}
}
