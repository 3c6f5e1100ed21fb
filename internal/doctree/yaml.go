package doctree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML document into a tree.
// An empty document yields a *Null node.
func ParseYAML(data []byte, filename string) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{
			Pos:     Pos{File: filename},
			Message: fmt.Sprintf("parsing YAML: %v", err),
		}
	}
	if doc.Kind == 0 {
		return &Null{At: Pos{File: filename}}, nil
	}
	return fromYAML(&doc, filename)
}

func yamlPos(n *yaml.Node, filename string) Pos {
	return Pos{File: filename, Line: n.Line, Column: n.Column}
}

func fromYAML(n *yaml.Node, filename string) (Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Null{At: yamlPos(n, filename)}, nil
		}
		return fromYAML(n.Content[0], filename)

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, &ParseError{Pos: yamlPos(n, filename), Message: "unresolved alias"}
		}
		return fromYAML(n.Alias, filename)

	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return &Null{At: yamlPos(n, filename)}, nil
		}
		return &Scalar{Value: n.Value, At: yamlPos(n, filename)}, nil

	case yaml.SequenceNode:
		seq := &Sequence{Items: make([]Node, 0, len(n.Content)), At: yamlPos(n, filename)}
		for _, item := range n.Content {
			child, err := fromYAML(item, filename)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, child)
		}
		return seq, nil

	case yaml.MappingNode:
		return yamlMapping(n, filename)

	default:
		return nil, &ParseError{
			Pos:     yamlPos(n, filename),
			Message: fmt.Sprintf("unsupported YAML node kind %d", n.Kind),
		}
	}
}

func yamlMapping(n *yaml.Node, filename string) (*Mapping, error) {
	m := &Mapping{Entries: make([]Entry, 0, len(n.Content)/2), At: yamlPos(n, filename)}
	seen := make(map[string]Pos, len(n.Content)/2)

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, &ParseError{Pos: yamlPos(keyNode, filename), Message: "mapping keys must be scalars"}
		}
		if keyNode.ShortTag() == "!!merge" {
			return nil, &ParseError{Pos: yamlPos(keyNode, filename), Message: "merge keys (<<) are not supported"}
		}

		keyPos := yamlPos(keyNode, filename)
		key := keyNode.Value
		if keyNode.ShortTag() == "!!null" {
			key = ""
		}
		if first, dup := seen[key]; dup {
			return nil, &ParseError{
				Pos:     keyPos,
				Message: fmt.Sprintf("duplicate key %q (first defined at %s)", key, first),
			}
		}
		seen[key] = keyPos

		value, err := fromYAML(n.Content[i+1], filename)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, Entry{Key: key, KeyPos: keyPos, Value: value})
	}

	return m, nil
}
