package harness

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/apigen/internal/compiler"
	"github.com/roach88/apigen/internal/engine"
)

// AssertionError is returned when an expectation fails.
type AssertionError struct {
	Query    string // The query as written, e.g. mapType(integer, int64, "")
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Query)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

func (q TypeQuery) String() string {
	return fmt.Sprintf("mapType(%q, %q, %q)", q.Type, q.Format, q.BaseName)
}

func (q IdentifierQuery) String() string {
	return fmt.Sprintf("mapIdentifier(%q, %q)", q.Name, q.Scope)
}

// checkType compares a MapType answer with the query's expectation.
func checkType(q TypeQuery, m engine.TypeMatch) []error {
	if q.Expect == nil {
		return nil
	}
	want := q.Expect
	got := m.Usage
	var errs []error

	fail := func(expected, actual string) {
		errs = append(errs, &AssertionError{Query: q.String(), Expected: expected, Actual: actual})
	}

	if want.BaseName != "" && want.BaseName != got.BaseName {
		fail(fmt.Sprintf("base name %q", want.BaseName), fmt.Sprintf("base name %q", got.BaseName))
	}

	for _, name := range sortedKeys(want.Attributes) {
		v, ok := got.Attributes[name]
		switch {
		case !ok:
			fail(fmt.Sprintf("attribute %s=%q", name, want.Attributes[name]), fmt.Sprintf("no attribute %s", name))
		case v != want.Attributes[name]:
			fail(fmt.Sprintf("attribute %s=%q", name, want.Attributes[name]), fmt.Sprintf("attribute %s=%q", name, v))
		}
	}

	for _, name := range want.Absent {
		if v, ok := got.Attributes[name]; ok {
			fail(fmt.Sprintf("no attribute %s", name), fmt.Sprintf("attribute %s=%q", name, v))
		}
	}

	for _, name := range sortedKeys(want.Lists) {
		if v := got.Lists[name]; !slices.Equal(v, want.Lists[name]) {
			fail(fmt.Sprintf("list %s=%v", name, want.Lists[name]), fmt.Sprintf("list %s=%v", name, v))
		}
	}

	if want.Matched != nil && *want.Matched != m.Matched() {
		fail(fmt.Sprintf("matched=%t", *want.Matched), fmt.Sprintf("matched=%t", m.Matched()))
	}

	return errs
}

// checkIdentifier compares a MapIdentifier answer with the expectation.
func checkIdentifier(q IdentifierQuery, m engine.IdentifierMatch) error {
	if m.Name == q.Expect {
		return nil
	}
	return &AssertionError{
		Query:    q.String(),
		Expected: fmt.Sprintf("%q", q.Expect),
		Actual:   fmt.Sprintf("%q (rule %d)", m.Name, m.Rule),
	}
}

// checkLoadError compares a load failure with the expectation.
func checkLoadError(want *LoadErrorExpect, err error) error {
	if err == nil {
		return &AssertionError{
			Query:    "load",
			Expected: fmt.Sprintf("load error %s %q", want.Code, want.Contains),
			Actual:   "document loaded",
		}
	}

	if want.Code != "" {
		var loadErr *compiler.LoadError
		if !errors.As(err, &loadErr) {
			return &AssertionError{
				Query:    "load",
				Expected: fmt.Sprintf("load error code %s", want.Code),
				Actual:   err.Error(),
			}
		}
		if loadErr.Code != want.Code {
			return &AssertionError{
				Query:    "load",
				Expected: fmt.Sprintf("load error code %s", want.Code),
				Actual:   fmt.Sprintf("code %s: %v", loadErr.Code, err),
			}
		}
	}

	if want.Contains != "" && !strings.Contains(err.Error(), want.Contains) {
		return &AssertionError{
			Query:    "load",
			Expected: fmt.Sprintf("error containing %q", want.Contains),
			Actual:   err.Error(),
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
