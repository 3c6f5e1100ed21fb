package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAMLShapes(t *testing.T) {
	src := `
analyzer:
  subst:
    "%CONFIG%": main
  types:
    - integer: int
    - string:
        - date: QDate
        - "": QString
    - object: ~
`
	root, err := ParseYAML([]byte(src), "gtad.yaml")
	require.NoError(t, err)

	rootMap, ok := root.(*Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"analyzer"}, rootMap.Keys())

	analyzer, ok := rootMap.Get("analyzer")
	require.True(t, ok)
	require.Equal(t, KindMapping, analyzer.Kind())
	assert.Equal(t, []string{"subst", "types"}, analyzer.(*Mapping).Keys())

	typesNode, _ := analyzer.(*Mapping).Get("types")
	types, ok := typesNode.(*Sequence)
	require.True(t, ok)
	require.Equal(t, 3, types.Len())

	integer := types.Items[0].(*Mapping)
	assert.Equal(t, "integer", integer.Entries[0].Key)
	assert.Equal(t, "int", integer.Entries[0].Value.(*Scalar).Value)
	assert.Equal(t, 6, integer.Entries[0].KeyPos.Line)
	assert.Equal(t, "gtad.yaml", integer.Entries[0].KeyPos.File)

	formats := types.Items[1].(*Mapping).Entries[0].Value.(*Sequence)
	require.Equal(t, 2, formats.Len())
	assert.Equal(t, "date", formats.Items[0].(*Mapping).Entries[0].Key)
	assert.Equal(t, "", formats.Items[1].(*Mapping).Entries[0].Key)

	object := types.Items[2].(*Mapping).Entries[0].Value
	assert.Equal(t, KindNull, object.Kind())
}

func TestParseYAMLQuotedNullIsScalar(t *testing.T) {
	root, err := ParseYAML([]byte(`a: "null"`), "x.yaml")
	require.NoError(t, err)

	v, _ := root.(*Mapping).Get("a")
	require.Equal(t, KindScalar, v.Kind())
	assert.Equal(t, "null", v.(*Scalar).Value)
}

func TestParseYAMLEmptyValueIsNull(t *testing.T) {
	root, err := ParseYAML([]byte("a:\nb: 1\n"), "x.yaml")
	require.NoError(t, err)

	v, _ := root.(*Mapping).Get("a")
	assert.Equal(t, KindNull, v.Kind())
	b, _ := root.(*Mapping).Get("b")
	assert.Equal(t, "1", b.(*Scalar).Value)
}

func TestParseYAMLDuplicateKey(t *testing.T) {
	src := "types:\n  a: 1\n  a: 2\n"
	_, err := ParseYAML([]byte(src), "dup.yaml")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Pos.Line)
	assert.Contains(t, perr.Message, `duplicate key "a"`)
}

func TestParseYAMLAliasResolved(t *testing.T) {
	src := `
common: &c
  avoidCopy: "true"
use: *c
`
	root, err := ParseYAML([]byte(src), "alias.yaml")
	require.NoError(t, err)

	use, _ := root.(*Mapping).Get("use")
	require.Equal(t, KindMapping, use.Kind())
	v, ok := use.(*Mapping).Get("avoidCopy")
	require.True(t, ok)
	assert.Equal(t, "true", v.(*Scalar).Value)
}

func TestParseYAMLNonScalarKey(t *testing.T) {
	_, err := ParseYAML([]byte("? [a, b]\n: c\n"), "k.yaml")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "mapping keys must be scalars")
}

func TestParseYAMLSyntaxError(t *testing.T) {
	_, err := ParseYAML([]byte("a: [1, 2\n"), "bad.yaml")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.yaml", perr.Pos.File)
	assert.Contains(t, err.Error(), "parsing YAML")
}

func TestParseYAMLEmptyDocument(t *testing.T) {
	root, err := ParseYAML([]byte(""), "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, KindNull, root.Kind())
}

func TestPosString(t *testing.T) {
	tests := []struct {
		pos  Pos
		want string
	}{
		{Pos{}, "-"},
		{Pos{File: "a.yaml"}, "a.yaml"},
		{Pos{Line: 3, Column: 5}, "3:5"},
		{Pos{File: "a.yaml", Line: 3, Column: 5}, "a.yaml:3:5"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.String())
		})
	}
}
