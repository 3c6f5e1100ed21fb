package compiler

import (
	"fmt"
	"maps"
	"slices"

	"github.com/roach88/apigen/internal/doctree"
	"github.com/roach88/apigen/internal/ir"
)

// typeKey supplies a usage's base name and is never stored as an attribute.
const typeKey = "type"

// Attrs is an immutable layer of attributes and lists. The walker passes
// one down the recursion; every +set block produces a new layer.
type Attrs struct {
	attributes map[string]string
	lists      map[string][]string
}

// Len returns the number of attributes and lists in the layer.
func (a Attrs) Len() int {
	return len(a.attributes) + len(a.lists)
}

// Attribute returns a scalar attribute of the layer.
func (a Attrs) Attribute(name string) (string, bool) {
	v, ok := a.attributes[name]
	return v, ok
}

// List returns a list attribute of the layer.
func (a Attrs) List(name string) ([]string, bool) {
	v, ok := a.lists[name]
	return slices.Clone(v), ok
}

// Overlay returns a new layer holding a's entries with top's entries on
// top. Attributes and lists are overlaid independently.
func (a Attrs) Overlay(top Attrs) Attrs {
	if top.Len() == 0 {
		return a
	}
	if a.Len() == 0 {
		return top
	}
	out := Attrs{
		attributes: make(map[string]string, len(a.attributes)+len(top.attributes)),
		lists:      make(map[string][]string, len(a.lists)+len(top.lists)),
	}
	maps.Copy(out.attributes, a.attributes)
	maps.Copy(out.attributes, top.attributes)
	maps.Copy(out.lists, a.lists)
	maps.Copy(out.lists, top.lists)
	return out
}

// Usage builds a TypeUsage from the layer. The usage owns its maps.
func (a Attrs) Usage(baseName string) ir.TypeUsage {
	tu := ir.NewTypeUsage(baseName)
	maps.Copy(tu.Attributes, a.attributes)
	for k, v := range a.lists {
		tu.Lists[k] = slices.Clone(v)
	}
	return tu
}

// parseAttrs reads an attribute mapping: a +set block or the mapping form
// of a target type. The "type" key is skipped. Null values become empty
// attributes; sequences of scalars become lists.
func parseAttrs(m *doctree.Mapping, path string) (Attrs, error) {
	a := Attrs{
		attributes: map[string]string{},
		lists:      map[string][]string{},
	}
	for _, e := range m.Entries {
		if e.Key == typeKey {
			continue
		}
		attrPath := path + "." + e.Key

		switch v := e.Value.(type) {
		case *doctree.Null:
			a.attributes[e.Key] = ""
		case *doctree.Scalar:
			a.attributes[e.Key] = v.Value
		case *doctree.Sequence:
			list := make([]string, 0, len(v.Items))
			for i, item := range v.Items {
				s, ok := item.(*doctree.Scalar)
				if !ok {
					return Attrs{}, &LoadError{
						Pos:     item.Pos(),
						Path:    fmt.Sprintf("%s[%d]", attrPath, i),
						Code:    ErrMalformedAttr,
						Message: fmt.Sprintf("list items must be scalars, got %s", item.Kind()),
					}
				}
				list = append(list, s.Value)
			}
			a.lists[e.Key] = list
		default:
			return Attrs{}, &LoadError{
				Pos:     e.Value.Pos(),
				Path:    attrPath,
				Code:    ErrMalformedAttr,
				Message: "malformed attribute: must be a scalar, null or a list of scalars",
			}
		}
	}
	return a, nil
}
