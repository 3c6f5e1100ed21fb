package compiler

import (
	"github.com/roach88/apigen/internal/doctree"
	"github.com/roach88/apigen/internal/ir"
)

// AnalyzerKey is the top-level section holding the rule tables.
const AnalyzerKey = "analyzer"

// CompileAnalyzer builds the rule tables from a document root.
//
// The analyzer section is required. Its subst and identifiers mappings and
// its types sequence are optional and default to empty tables. Pattern
// warnings are returned alongside the ruleset; a LoadError aborts the build.
func CompileAnalyzer(root doctree.Node) (*ir.Ruleset, []PatternWarning, error) {
	rootMap, ok := root.(*doctree.Mapping)
	if !ok {
		return nil, nil, wrongKind(root, "(root)", "document", doctree.KindMapping)
	}
	section, ok := rootMap.Get(AnalyzerKey)
	if !ok {
		return nil, nil, &LoadError{
			Pos:     root.Pos(),
			Path:    AnalyzerKey,
			Code:    ErrMissingSection,
			Message: "analyzer section is required",
		}
	}
	analyzer, ok := section.(*doctree.Mapping)
	if !ok {
		return nil, nil, wrongKind(section, AnalyzerKey, AnalyzerKey, doctree.KindMapping)
	}

	var warnings []PatternWarning
	warn := func(w PatternWarning) { warnings = append(warnings, w) }

	rs := &ir.Ruleset{}
	var err error

	subst, _ := analyzer.Get(SubstTable)
	if rs.Substitutions, err = CompileRenames(subst, SubstTable, AnalyzerKey+"."+SubstTable, warn); err != nil {
		return nil, nil, err
	}

	identifiers, _ := analyzer.Get(IdentifiersTable)
	if rs.Identifiers, err = CompileRenames(identifiers, IdentifiersTable, AnalyzerKey+"."+IdentifiersTable, warn); err != nil {
		return nil, nil, err
	}

	if types, ok := analyzer.Get(TypesTable); ok && types.Kind() != doctree.KindNull {
		seq, ok := types.(*doctree.Sequence)
		if !ok {
			return nil, nil, wrongKind(types, AnalyzerKey+"."+TypesTable, TypesTable, doctree.KindSequence)
		}
		if rs.Types, err = CompileTypes(seq, AnalyzerKey+"."+TypesTable, warn); err != nil {
			return nil, nil, err
		}
	}

	return rs, warnings, nil
}
