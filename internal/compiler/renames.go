package compiler

import (
	"github.com/roach88/apigen/internal/doctree"
	"github.com/roach88/apigen/internal/ir"
	"github.com/roach88/apigen/internal/pattern"
)

// Table names used in warnings.
const (
	SubstTable       = "subst"
	IdentifiersTable = "identifiers"
)

// CompileRenames builds an ordered (pattern, replacement) table from a
// mapping. A nil or null node yields an empty table. Entries with empty or
// malformed patterns are dropped and reported through warn.
func CompileRenames(n doctree.Node, table, path string, warn func(PatternWarning)) (ir.RenameTable, error) {
	out := ir.RenameTable{}
	if n == nil || n.Kind() == doctree.KindNull {
		return out, nil
	}
	m, ok := n.(*doctree.Mapping)
	if !ok {
		return nil, wrongKind(n, path, table, doctree.KindMapping)
	}

	for _, e := range m.Entries {
		p, err := pattern.Parse(e.Key)
		if err != nil {
			warn(PatternWarning{Pos: e.KeyPos, Table: table, Pattern: e.Key, Err: err})
			continue
		}

		var replacement string
		switch v := e.Value.(type) {
		case *doctree.Scalar:
			replacement = v.Value
		case *doctree.Null:
		default:
			return nil, wrongKind(e.Value, path+"."+e.Key, "replacement", doctree.KindScalar)
		}

		out = append(out, pattern.Entry[ir.Rename]{Pattern: p, Value: ir.Rename{Replacement: replacement}})
	}
	return out, nil
}
