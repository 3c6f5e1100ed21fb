package compiler

import (
	"fmt"

	"github.com/roach88/apigen/internal/doctree"
	"github.com/roach88/apigen/internal/ir"
	"github.com/roach88/apigen/internal/pattern"
)

// TypesTable is the name used for type rules in warnings.
const TypesTable = "types"

// CompileTypes builds the type table from a sequence of rule entries.
// Each entry maps a source type name to a target type spec:
//
//	types:
//	  - string: String                       # scalar: base name
//	  - object: { type: Object, avoidCopy: }  # mapping: base name + attributes
//	  - integer:                              # sequence: format alternatives
//	      - int64: qint64
//	      - /^u/: { type: quint32 }
//	      - "": int                           # empty key: any format
//
// Format keys that fail to parse are dropped and reported through warn.
func CompileTypes(seq *doctree.Sequence, path string, warn func(PatternWarning)) ([]ir.TypeRule, error) {
	var rules []ir.TypeRule
	err := Walk(seq, Attrs{}, path, func(b Binding) error {
		formats, err := compileTypeEntry(b, warn)
		if err != nil {
			return err
		}
		rules = append(rules, ir.TypeRule{
			SourceType: b.Key,
			Formats:    formats,
			Pos:        b.KeyPos,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func compileTypeEntry(b Binding, warn func(PatternWarning)) (pattern.Table[ir.TypeUsage], error) {
	seq, ok := b.Value.(*doctree.Sequence)
	if !ok {
		tu, err := parseTarget(b.Value, b.Inherited, b.Path)
		if err != nil {
			return nil, err
		}
		return pattern.Table[ir.TypeUsage]{{Pattern: pattern.Wildcard(), Value: tu}}, nil
	}

	formats := pattern.Table[ir.TypeUsage]{}
	err := Walk(seq, b.Inherited, b.Path, func(fb Binding) error {
		p, err := pattern.ParseFormat(fb.Key)
		if err != nil {
			warn(PatternWarning{Pos: fb.KeyPos, Table: TypesTable, Pattern: fb.Key, Err: err})
			return nil
		}
		if _, nested := fb.Value.(*doctree.Sequence); nested {
			return wrongKind(fb.Value, fb.Path, "format target", doctree.KindNull, doctree.KindScalar, doctree.KindMapping)
		}
		tu, err := parseTarget(fb.Value, fb.Inherited, fb.Path)
		if err != nil {
			return err
		}
		formats = append(formats, ir.FormatRule{Pattern: p, Value: tu})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formats, nil
}

// parseTarget converts a null, scalar or mapping target spec into a usage.
// Explicit attributes win over inherited ones.
func parseTarget(n doctree.Node, inherited Attrs, path string) (ir.TypeUsage, error) {
	switch v := n.(type) {
	case *doctree.Null:
		return inherited.Usage(""), nil
	case *doctree.Scalar:
		return inherited.Usage(v.Value), nil
	case *doctree.Mapping:
		baseName := ""
		if t, ok := v.Get(typeKey); ok {
			switch tv := t.(type) {
			case *doctree.Scalar:
				baseName = tv.Value
			case *doctree.Null:
			default:
				return ir.TypeUsage{}, wrongKind(t, path+"."+typeKey, "type", doctree.KindScalar)
			}
		}
		explicit, err := parseAttrs(v, path)
		if err != nil {
			return ir.TypeUsage{}, err
		}
		return inherited.Overlay(explicit).Usage(baseName), nil
	default:
		return ir.TypeUsage{}, &LoadError{
			Pos:     n.Pos(),
			Path:    path,
			Code:    ErrWrongKind,
			Message: fmt.Sprintf("malformed type entry: unexpected %s", n.Kind()),
		}
	}
}
