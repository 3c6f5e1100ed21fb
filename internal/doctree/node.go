package doctree

import "fmt"

// Pos is a location in a source document.
// Line and Column are 1-based; a Pos with Line 0 is unknown.
type Pos struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// IsValid reports whether the position has line information.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	switch {
	case !p.IsValid() && p.File == "":
		return "-"
	case !p.IsValid():
		return p.File
	case p.File == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Kind identifies which variant a Node is.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a sealed interface; only *Null, *Scalar, *Mapping and *Sequence
// implement it.
type Node interface {
	Kind() Kind
	Pos() Pos
	node()
}

// Null is an explicit null (`~`, `null`) or a key with no value.
type Null struct {
	At Pos
}

func (*Null) node()      {}
func (*Null) Kind() Kind { return KindNull }
func (n *Null) Pos() Pos { return n.At }

// Scalar holds the source text of a string, number or boolean.
type Scalar struct {
	Value string
	At    Pos
}

func (*Scalar) node()      {}
func (*Scalar) Kind() Kind { return KindScalar }
func (s *Scalar) Pos() Pos { return s.At }

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key    string
	KeyPos Pos
	Value  Node
}

// Mapping is an ordered set of entries with unique keys.
type Mapping struct {
	Entries []Entry
	At      Pos
}

func (*Mapping) node()      {}
func (*Mapping) Kind() Kind { return KindMapping }
func (m *Mapping) Pos() Pos { return m.At }

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.Entries)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in document order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Sequence is an ordered list of nodes.
type Sequence struct {
	Items []Node
	At    Pos
}

func (*Sequence) node()      {}
func (*Sequence) Kind() Kind { return KindSequence }
func (s *Sequence) Pos() Pos { return s.At }

// Len returns the number of items.
func (s *Sequence) Len() int {
	return len(s.Items)
}

// ParseError reports a document that could not be turned into a tree:
// a syntax error, a non-scalar mapping key, or a duplicate key.
type ParseError struct {
	Pos     Pos
	Message string
}

func (e *ParseError) Error() string {
	if e.Pos.IsValid() || e.Pos.File != "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}
