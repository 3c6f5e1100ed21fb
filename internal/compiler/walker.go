package compiler

import (
	"fmt"

	"github.com/roach88/apigen/internal/doctree"
)

// Override block keys.
const (
	onKey  = "+on"
	setKey = "+set"
)

// Binding is one flattened rule entry produced by the walker.
type Binding struct {
	Key    string
	KeyPos doctree.Pos
	Value  doctree.Node
	// Inherited holds the attributes of every enclosing +set block.
	Inherited Attrs
	// Path locates the entry in the document, e.g. "analyzer.types[2].+on[0]".
	Path string
}

// Walk expands a sequence of rule entries depth-first in document order,
// calling visit for every one-key entry. An entry is either {name: value}
// or {"+on": [entries...], "+set": {attrs...}}; anything else is a
// LoadError. The +set attributes of a block are overlaid on inherited and
// passed to every entry under its +on.
func Walk(seq *doctree.Sequence, inherited Attrs, path string, visit func(Binding) error) error {
	for i, item := range seq.Items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)

		m, ok := item.(*doctree.Mapping)
		if !ok {
			return wrongKind(item, itemPath, "rule entry", doctree.KindMapping)
		}

		if on, set, ok := overrideBlock(m); ok {
			if err := walkOverride(on, set, inherited, itemPath, visit); err != nil {
				return err
			}
			continue
		}

		switch m.Len() {
		case 0:
			return &LoadError{
				Pos:     m.Pos(),
				Path:    itemPath,
				Code:    ErrEmptyEntry,
				Message: "empty rule entry",
			}
		case 1:
			e := m.Entries[0]
			err := visit(Binding{
				Key:       e.Key,
				KeyPos:    e.KeyPos,
				Value:     e.Value,
				Inherited: inherited,
				Path:      itemPath + "." + e.Key,
			})
			if err != nil {
				return err
			}
		default:
			return &LoadError{
				Pos:     m.Pos(),
				Path:    itemPath,
				Code:    ErrAmbiguousEntry,
				Message: fmt.Sprintf("too many entries in the map (%d), check indentation", m.Len()),
			}
		}
	}
	return nil
}

// overrideBlock reports whether m is exactly a {+on, +set} pair.
func overrideBlock(m *doctree.Mapping) (on, set doctree.Node, ok bool) {
	if m.Len() != 2 {
		return nil, nil, false
	}
	on, hasOn := m.Get(onKey)
	set, hasSet := m.Get(setKey)
	return on, set, hasOn && hasSet
}

func walkOverride(on, set doctree.Node, inherited Attrs, path string, visit func(Binding) error) error {
	onSeq, ok := on.(*doctree.Sequence)
	if !ok {
		return wrongKind(on, path+"."+onKey, onKey, doctree.KindSequence)
	}
	setMap, ok := set.(*doctree.Mapping)
	if !ok {
		return wrongKind(set, path+"."+setKey, setKey, doctree.KindMapping)
	}

	layer, err := parseAttrs(setMap, path+"."+setKey)
	if err != nil {
		return err
	}
	return Walk(onSeq, inherited.Overlay(layer), path+"."+onKey, visit)
}
