// Package naming provides the case helpers used to derive target-language
// identifiers from schema names. They are exposed to templates as lambdas.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// camelSeparators are dropped by CamelCase and the following letter is
// capitalized.
const camelSeparators = "/_ .-:"

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

// ToUpper upper-cases s.
func ToUpper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// ToLower lower-cases s.
func ToLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// CamelCase joins the words of s into one capitalized identifier:
// "request-body" becomes "RequestBody", "user/id" becomes "UserId".
// An underscore at the very start or end of s is kept. Characters that are
// not letters, digits or underscores are removed.
func CamelCase(s string) string {
	if s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	upNext := true
	for i, r := range s {
		if strings.ContainsRune(camelSeparators, r) {
			if r == '_' && (i == 0 || i == len(s)-1) {
				b.WriteRune(r)
				upNext = true
				continue
			}
			upNext = true
			continue
		}
		if !isIdentRune(r) {
			upNext = false
			continue
		}
		if upNext {
			b.WriteString(Capitalize(string(r)))
			upNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
