package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/apigen/internal/ir"
	"github.com/roach88/apigen/internal/pattern"
)

func lintCodes(findings []Finding) []string {
	codes := make([]string, len(findings))
	for i, f := range findings {
		codes[i] = f.Code
	}
	return codes
}

func TestLintCleanRuleset(t *testing.T) {
	rs, _ := compileDoc(t, `
analyzer:
  subst:
    "%RELEASE%": r0
  identifiers:
    signed: isSigned
    /^(.*)Id$/: $1ID
  types:
    - integer:
        - int64: qint64
        - /^u/: quint32
        - "": int
    - string: QString
`)
	assert.Empty(t, Lint(rs, true), "every rule can decide some query")
}

func TestLintUnreachableFormat(t *testing.T) {
	rs, _ := compileDoc(t, `
analyzer:
  types:
    - integer:
        - "": int
        - int64: qint64
        - /^u/: quint32
`)
	findings := Lint(rs, true)
	require.Len(t, findings, 2)
	assert.Equal(t, []string{WarnUnreachableFormat, WarnUnreachableFormat}, lintCodes(findings))
	assert.Equal(t, "types[0].formats[1]", findings[0].Field)
	assert.Equal(t, "types[0].formats[2]", findings[1].Field)
	assert.Contains(t, findings[0].Message, `format "int64" follows the wildcard at formats[0]`)
	assert.Equal(t, 4, findings[0].Line)
}

func TestLintDuplicateFormat(t *testing.T) {
	rs, _ := compileDoc(t, `
analyzer:
  types:
    - string:
        - +on:
            - byte: QByteArray
          +set: { imports: [ "<QtCore/QByteArray>" ] }
        - byte: QString
`)
	findings := Lint(rs, true)
	require.Len(t, findings, 1)
	assert.Equal(t, WarnDuplicateFormat, findings[0].Code)
	assert.Equal(t, "types[0].formats[1]", findings[0].Field)
}

func TestLintShadowedTypeRule(t *testing.T) {
	rs, _ := compileDoc(t, `
analyzer:
  types:
    - integer:
        - int64: qint64
    - integer: int
    - integer:
        - int32: qint32
    - number: double
`)
	findings := Lint(rs, true)
	require.Len(t, findings, 1)
	assert.Equal(t, WarnShadowedTypeRule, findings[0].Code)
	assert.Equal(t, "types[2]", findings[0].Field)
	assert.Contains(t, findings[0].Message, "shadowed by types[1]")
}

func TestLintDuplicatePattern(t *testing.T) {
	// YAML and CUE reject duplicate keys, so build the table directly.
	rename := func(p, r string) pattern.Entry[ir.Rename] {
		return pattern.Entry[ir.Rename]{Pattern: pattern.MustParse(p), Value: ir.Rename{Replacement: r}}
	}
	rs := &ir.Ruleset{
		Substitutions: ir.RenameTable{rename("a", "b"), rename("/x/", "y"), rename("a", "c")},
	}

	findings := Lint(rs, true)
	require.Len(t, findings, 1)
	assert.Equal(t, WarnDuplicatePattern, findings[0].Code)
	assert.Equal(t, "subst[2]", findings[0].Field)
	assert.Contains(t, findings[0].Message, `pattern "a" is already listed at subst[0]`)
}

func TestLintIdentifierRules(t *testing.T) {
	rs, _ := compileDoc(t, `
analyzer:
  identifiers:
    signed: isSigned
    /^Get(.*)/: $1
    id: ID
    /Id$/: ID
`)

	tests := []struct {
		name        string
		stopAtRegex bool
		want        []string
	}{
		{"first-regex", true, []string{WarnAfterFirstRegex, WarnAfterFirstRegex}},
		{"continue", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Lint(rs, tt.stopAtRegex)
			if tt.want == nil {
				assert.Empty(t, findings)
				return
			}
			assert.Equal(t, tt.want, lintCodes(findings))
			assert.Equal(t, "identifiers[2]", findings[0].Field)
			assert.Contains(t, findings[0].Message, "identifiers[1] is a regex")
		})
	}
}

func TestFindingError(t *testing.T) {
	withLine := Finding{Field: "types[0].formats[1]", Message: "unreachable", Code: WarnUnreachableFormat, Line: 4}
	assert.Equal(t, "[W101] line 4: types[0].formats[1]: unreachable", withLine.Error())

	noLine := Finding{Field: "identifiers[2]", Message: "never reached", Code: WarnAfterFirstRegex}
	assert.Equal(t, "[W111] identifiers[2]: never reached", noLine.Error())
}
