package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/apigen/internal/doctree"
	"github.com/roach88/apigen/internal/ir"
)

func parseDoc(t *testing.T, src string) doctree.Node {
	t.Helper()
	root, err := doctree.ParseYAML([]byte(src), "test.yaml")
	require.NoError(t, err)
	return root
}

func compileDoc(t *testing.T, src string) (*ir.Ruleset, []PatternWarning) {
	t.Helper()
	rs, warnings, err := CompileAnalyzer(parseDoc(t, src))
	require.NoError(t, err)
	return rs, warnings
}

func requireLoadError(t *testing.T, err error, code string) *LoadError {
	t.Helper()
	require.Error(t, err)
	loadErr, ok := err.(*LoadError)
	require.True(t, ok, "error should be *LoadError, got %T: %v", err, err)
	require.Equal(t, code, loadErr.Code, "unexpected error: %v", err)
	return loadErr
}
