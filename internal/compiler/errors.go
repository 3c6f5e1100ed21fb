package compiler

import (
	"fmt"

	"github.com/roach88/apigen/internal/doctree"
)

// Load error codes (E200-E299)
const (
	ErrWrongKind       = "E201" // node has the wrong kind for its position
	ErrEmptyEntry      = "E202" // rule entry with no keys
	ErrAmbiguousEntry  = "E203" // rule entry with more than one key that is not +on/+set
	ErrMalformedAttr   = "E204" // attribute value is a mapping or a list of non-scalars
	ErrMissingSection  = "E205" // required section absent
	ErrMalformedConfig = "E206" // renderer configuration is malformed
)

// LoadError is a fatal structural error in a configuration document.
// Nothing built before the error is kept.
type LoadError struct {
	Pos     doctree.Pos
	Path    string
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() || e.Pos.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// wrongKind reports a node that is not one of the wanted kinds.
func wrongKind(n doctree.Node, path, what string, want ...doctree.Kind) *LoadError {
	expected := ""
	for i, k := range want {
		switch {
		case i == 0:
			expected = k.String()
		case i == len(want)-1:
			expected += " or " + k.String()
		default:
			expected += ", " + k.String()
		}
	}
	return &LoadError{
		Pos:     n.Pos(),
		Path:    path,
		Code:    ErrWrongKind,
		Message: fmt.Sprintf("%s must be a %s, got %s", what, expected, n.Kind()),
	}
}

// PatternWarning records a pattern that was dropped from a table.
// Loading continues without the entry.
type PatternWarning struct {
	Pos     doctree.Pos
	Table   string
	Pattern string
	Err     error
}

func (w PatternWarning) Error() string {
	return fmt.Sprintf("%s: %s: skipping pattern %q: %v", w.Pos, w.Table, w.Pattern, w.Err)
}

func (w PatternWarning) Unwrap() error {
	return w.Err
}
