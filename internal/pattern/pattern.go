// Package pattern implements the ordered pattern tables shared by every rule
// table in a configuration document.
//
// A pattern is a regular expression if it starts with '/'. A matching
// trailing '/' is dropped, so "/^Get/" and "/^Get" are the same pattern.
// Everything else is a literal compared for exact equality. Regular
// expressions use the ECMAScript dialect (lookaround and backreferences
// included) and are searched for anywhere in the subject, case-sensitively.
//
// Dispatch is decided once when an entry is parsed; lookups never re-parse.
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Dialect is the regexp2 option set every rule expression is compiled with.
const Dialect = regexp2.ECMAScript

var (
	// ErrEmpty is returned for an empty pattern.
	ErrEmpty = errors.New("empty pattern")
	// ErrMalformed is returned for a pattern that ends with '/' but does not
	// start with one.
	ErrMalformed = errors.New("invalid regular expression (use a regex with \\/ to match strings beginning with /)")
	// ErrBadRegex wraps regular expression compilation failures.
	ErrBadRegex = errors.New("invalid regular expression")
)

// Pattern is either a Literal or a *Regex.
type Pattern interface {
	// Match reports whether s is selected by the pattern.
	Match(s string) bool
	// IsRegex reports whether the pattern is a regular expression.
	IsRegex() bool
	// String returns the pattern in configuration syntax.
	String() string
	pattern()
}

// Literal matches a single string exactly.
type Literal string

func (Literal) pattern()              {}
func (Literal) IsRegex() bool         { return false }
func (l Literal) Match(s string) bool { return string(l) == s }
func (l Literal) String() string      { return string(l) }

// Regex is a compiled regular expression pattern.
type Regex struct {
	body string
	re   *regexp2.Regexp
}

func (*Regex) pattern()      {}
func (*Regex) IsRegex() bool { return true }

// Match reports whether the expression is found anywhere in s.
func (r *Regex) Match(s string) bool {
	ok, err := r.re.MatchString(s)
	return err == nil && ok
}

// Body returns the expression without slashes.
func (r *Regex) Body() string {
	return r.body
}

// IsWildcard reports whether the expression is empty and so matches anything.
func (r *Regex) IsWildcard() bool {
	return r.body == ""
}

func (r *Regex) String() string {
	if r.IsWildcard() {
		return ""
	}
	return "/" + r.body + "/"
}

// Substitute replaces every match of the expression in s with repl.
// repl follows the ECMAScript convention: $1..$99 are groups, $& is the
// whole match and $$ is a dollar sign. If nothing matches, s is returned
// unchanged.
func (r *Regex) Substitute(s, repl string) string {
	out, err := r.re.Replace(s, repl, -1, -1)
	if err != nil {
		return s
	}
	return out
}

// Wildcard returns the pattern that matches every string.
func Wildcard() *Regex {
	return &Regex{body: "", re: regexp2.MustCompile("", Dialect)}
}

// Parse turns raw configuration text into a Pattern.
func Parse(raw string) (Pattern, error) {
	if raw == "" {
		return nil, ErrEmpty
	}

	if raw[0] != '/' {
		if strings.HasSuffix(raw, "/") {
			return nil, ErrMalformed
		}
		return Literal(raw), nil
	}

	body := strings.TrimSuffix(raw[1:], "/")
	re, err := regexp2.Compile(body, Dialect)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRegex, err)
	}
	return &Regex{body: body, re: re}, nil
}

// ParseFormat is Parse for format keys, where the empty key is the wildcard.
func ParseFormat(raw string) (Pattern, error) {
	if raw == "" {
		return Wildcard(), nil
	}
	return Parse(raw)
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level tables.
func MustParse(raw string) Pattern {
	p, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("pattern.MustParse(%q): %v", raw, err))
	}
	return p
}
