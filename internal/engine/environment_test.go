package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/apigen/internal/compiler"
	"github.com/roach88/apigen/internal/doctree"
)

const mustacheDoc = `
analyzer: {}
mustache:
  delimiter: "%| |%"
  constants:
    copyrightName: Kitsune Ral
    refs: { set: }
    withQtCore: { bool: true }
    quiet: { bool: }
    version: { string: "1.2" }
  partials:
    impl: "{{>cpp_impl}}"
    empty:
  templates:
    - "{{base}}.h.mustache"
    - "{{base}}.cpp.mustache"
  outFilesList: files.txt
`

func compileEnv(t *testing.T, src string) (*Environment, error) {
	t.Helper()
	root, err := doctree.ParseYAML([]byte(src), "gtad.yaml")
	require.NoError(t, err)
	return CompileEnvironment(root, "/cfg")
}

func TestCompileEnvironment(t *testing.T) {
	env, err := compileEnv(t, mustacheDoc)
	require.NoError(t, err)

	assert.Equal(t, "/cfg", env.BaseDir)
	assert.Equal(t, "%| |%", env.Delimiter)
	assert.Equal(t, "files.txt", env.OutFilesList)
	assert.Equal(t, []string{"{{base}}.h.mustache", "{{base}}.cpp.mustache"}, env.Templates)

	assert.Equal(t, []Constant{
		{Name: "copyrightName", Kind: ConstString, Value: "Kitsune Ral"},
		{Name: "refs", Kind: ConstSet, Type: "set"},
		{Name: "withQtCore", Kind: ConstBool, Type: "bool", Bool: true},
		{Name: "quiet", Kind: ConstBool, Type: "bool"},
		{Name: "version", Kind: ConstString, Type: "string", Value: "1.2"},
	}, env.Constants)

	assert.Equal(t, []Partial{
		{Name: "impl", Text: "{{>cpp_impl}}"},
		{Name: "empty", Text: ""},
	}, env.Partials)

	c, ok := env.Constant("withQtCore")
	assert.True(t, ok)
	assert.True(t, c.Bool)
	_, ok = env.Constant("absent")
	assert.False(t, ok)
}

func TestCompileEnvironmentMissingSection(t *testing.T) {
	env, err := compileEnv(t, "analyzer: {}\n")
	require.NoError(t, err)

	assert.Empty(t, env.Constants)
	assert.Empty(t, env.Templates)
	assert.Contains(t, env.Lambdas, "_cap")
	assert.Contains(t, env.Lambdas, "_camel")
}

func TestEnvironmentContext(t *testing.T) {
	env, err := compileEnv(t, mustacheDoc)
	require.NoError(t, err)

	ctx := env.Context()
	assert.Equal(t, "Kitsune Ral", ctx["copyrightName"])
	assert.Equal(t, []any{}, ctx["refs"])
	assert.Equal(t, true, ctx["withQtCore"])
	assert.Equal(t, false, ctx["quiet"])
	assert.Equal(t, "{{>cpp_impl}}", ctx["impl"])

	upper, ok := ctx["_toupper"].(Lambda)
	require.True(t, ok)
	assert.Equal(t, "ROOM", upper("room"))

	capitalize := ctx["_cap"].(Lambda)
	assert.Equal(t, "RoomEvent", capitalize("roomEvent"))
	assert.Equal(t, "room", ctx["_tolower"].(Lambda)("ROOM"))
	assert.Equal(t, "RoomEvent", ctx["_camel"].(Lambda)("room-event"))
}

func TestCompileEnvironmentErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
	}{
		{"section is a list", "mustache: [ a ]\n", "mustache"},
		{"constants is a list", "mustache:\n  constants: [ a ]\n", "mustache.constants"},
		{"constant is a list", "mustache:\n  constants:\n    a: [ b ]\n", "mustache.constants.a"},
		{"constant definition empty", "mustache:\n  constants:\n    a: {}\n", "mustache.constants.a"},
		{"bad bool", "mustache:\n  constants:\n    a: { bool: maybe }\n", "mustache.constants.a"},
		{"partial is a mapping", "mustache:\n  partials:\n    p: { a: b }\n", "mustache.partials.p"},
		{"templates is a scalar", "mustache:\n  templates: one\n", "mustache.templates"},
		{"template item is a list", "mustache:\n  templates: [ [ a ] ]\n", "mustache.templates[0]"},
		{"outFilesList is a list", "mustache:\n  outFilesList: [ a ]\n", "mustache.outFilesList"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileEnv(t, tt.src)
			var loadErr *compiler.LoadError
			require.True(t, errors.As(err, &loadErr), "want *compiler.LoadError, got %v", err)
			assert.Equal(t, compiler.ErrMalformedConfig, loadErr.Code)
			assert.Equal(t, tt.path, loadErr.Path)
		})
	}
}

type recordingRenderer struct {
	env *Environment
}

func (r *recordingRenderer) Environment() *Environment { return r.env }

func TestEngineOwnsRenderer(t *testing.T) {
	calls := 0
	e := mustEngine(t, mustacheDoc, WithRenderer(func(env *Environment) (Renderer, error) {
		calls++
		return &recordingRenderer{env: env}, nil
	}))

	assert.Equal(t, 1, calls)
	require.NotNil(t, e.Renderer())
	assert.Same(t, e.Environment(), e.Renderer().Environment())
	assert.Equal(t, []string{"{{base}}.h.mustache", "{{base}}.cpp.mustache"}, e.Renderer().Environment().Templates)
}

func TestEngineWithoutRenderer(t *testing.T) {
	e := mustEngine(t, mustacheDoc)
	assert.Nil(t, e.Renderer())
}

func TestEngineRendererFactoryError(t *testing.T) {
	root, err := doctree.ParseYAML([]byte(mustacheDoc), "gtad.yaml")
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = New(root, WithLogger(discard), WithRenderer(func(*Environment) (Renderer, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)
}
