package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/apigen/internal/doctree"
)

func walkDoc(t *testing.T, src string) ([]Binding, error) {
	t.Helper()
	seq, ok := parseDoc(t, src).(*doctree.Sequence)
	require.True(t, ok, "test document must be a sequence")

	var got []Binding
	err := Walk(seq, Attrs{}, "types", func(b Binding) error {
		got = append(got, b)
		return nil
	})
	return got, err
}

func TestWalkOneKeyEntries(t *testing.T) {
	got, err := walkDoc(t, `
- a: x
- b: y
- c:
`)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, "b", got[1].Key)
	assert.Equal(t, "c", got[2].Key)
	assert.Equal(t, "types[1].b", got[1].Path)
	assert.Equal(t, doctree.KindNull, got[2].Value.Kind())
	assert.Equal(t, 2, got[0].KeyPos.Line)
	assert.Zero(t, got[0].Inherited.Len())
}

func TestWalkOverrideBlock(t *testing.T) {
	got, err := walkDoc(t, `
- first: x
- +on:
    - second: y
    - third: z
  +set:
    avoidCopy: "true"
    imports: [ "<QtCore/QJsonObject>" ]
- fourth: w
`)
	require.NoError(t, err)
	require.Len(t, got, 4)

	keys := []string{got[0].Key, got[1].Key, got[2].Key, got[3].Key}
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, keys)

	for _, b := range got[1:3] {
		v, ok := b.Inherited.Attribute("avoidCopy")
		assert.True(t, ok)
		assert.Equal(t, "true", v)
		l, ok := b.Inherited.List("imports")
		assert.True(t, ok)
		assert.Equal(t, []string{"<QtCore/QJsonObject>"}, l)
	}
	assert.Zero(t, got[0].Inherited.Len())
	assert.Zero(t, got[3].Inherited.Len())
	assert.Equal(t, "types[1].+on[0].second", got[1].Path)
}

func TestWalkNestedOverrideInnerWins(t *testing.T) {
	got, err := walkDoc(t, `
- +set: { a: outer, b: outer }
  +on:
    - x: X
    - +set: { b: inner }
      +on:
        - y: Y
`)
	require.NoError(t, err)
	require.Len(t, got, 2)

	a, _ := got[0].Inherited.Attribute("a")
	b, _ := got[0].Inherited.Attribute("b")
	assert.Equal(t, "outer", a)
	assert.Equal(t, "outer", b)

	a, _ = got[1].Inherited.Attribute("a")
	b, _ = got[1].Inherited.Attribute("b")
	assert.Equal(t, "outer", a)
	assert.Equal(t, "inner", b)
}

func TestWalkStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"empty block", "- {}", ErrEmptyEntry},
		{"three keys", "- {a: x, b: y, c: z}", ErrAmbiguousEntry},
		{"two plain keys", "- {a: x, b: y}", ErrAmbiguousEntry},
		{"two keys, only +on", "- {+on: [], b: y}", ErrAmbiguousEntry},
		{"two keys, misspelled +set", "- {+on: [], +sets: {}}", ErrAmbiguousEntry},
		{"scalar item", "- just-a-string", ErrWrongKind},
		{"sequence item", "- [a, b]", ErrWrongKind},
		{"+on not a sequence", "- {+on: {a: x}, +set: {}}", ErrWrongKind},
		{"+set not a mapping", "- {+on: [], +set: [x]}", ErrWrongKind},
		{"nested empty block", "- {+on: [{}], +set: {}}", ErrEmptyEntry},
		{"+set mapping attribute", "- {+on: [{a: x}], +set: {k: {nested: map}}}", ErrMalformedAttr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := walkDoc(t, tt.src)
			loadErr := requireLoadError(t, err, tt.code)
			assert.True(t, loadErr.Pos.IsValid(), "error should carry a position")
		})
	}
}

func TestWalkStopsOnVisitError(t *testing.T) {
	seq := parseDoc(t, "- a: x\n- b: y\n").(*doctree.Sequence)

	visited := 0
	err := Walk(seq, Attrs{}, "types", func(b Binding) error {
		visited++
		return &LoadError{Path: b.Path, Code: ErrWrongKind, Message: "stop"}
	})

	requireLoadError(t, err, ErrWrongKind)
	assert.Equal(t, 1, visited)
}

func TestAttrsOverlay(t *testing.T) {
	base, err := parseAttrs(parseDoc(t, "{a: 1, l: [x]}").(*doctree.Mapping), "base")
	require.NoError(t, err)
	top, err := parseAttrs(parseDoc(t, "{a: 2, b: 3, type: ignored}").(*doctree.Mapping), "top")
	require.NoError(t, err)

	merged := base.Overlay(top)
	a, _ := merged.Attribute("a")
	b, _ := merged.Attribute("b")
	l, _ := merged.List("l")
	_, hasType := merged.Attribute("type")

	assert.Equal(t, "2", a)
	assert.Equal(t, "3", b)
	assert.Equal(t, []string{"x"}, l)
	assert.False(t, hasType)

	// base is unchanged
	a, _ = base.Attribute("a")
	assert.Equal(t, "1", a)
	assert.Equal(t, 2, base.Len())
}
