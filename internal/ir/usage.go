package ir

import (
	"maps"
	"slices"
)

// ImportsKey is the attribute or list name that carries import directives.
const ImportsKey = "imports"

// NewTypeUsage returns a usage with the given base name and empty
// attribute and list maps.
func NewTypeUsage(baseName string) TypeUsage {
	return TypeUsage{
		BaseName:   baseName,
		Attributes: map[string]string{},
		Lists:      map[string][]string{},
	}
}

// Clone returns a deep copy. The copy's maps are never nil.
func (tu TypeUsage) Clone() TypeUsage {
	out := TypeUsage{
		BaseName:   tu.BaseName,
		Attributes: make(map[string]string, len(tu.Attributes)),
		Lists:      make(map[string][]string, len(tu.Lists)),
	}
	maps.Copy(out.Attributes, tu.Attributes)
	for k, v := range tu.Lists {
		out.Lists[k] = slices.Clone(v)
	}
	if len(tu.ParamTypes) > 0 {
		out.ParamTypes = make([]TypeUsage, len(tu.ParamTypes))
		for i, p := range tu.ParamTypes {
			out.ParamTypes[i] = p.Clone()
		}
	}
	return out
}

// Specialize returns a copy of tu parameterized with params.
// The imports of every parameter are appended to the copy's imports list,
// which exists, possibly empty, as soon as there is one parameter.
func (tu TypeUsage) Specialize(params ...TypeUsage) TypeUsage {
	out := tu.Clone()
	for _, p := range params {
		out.ParamTypes = append(out.ParamTypes, p.Clone())

		imports := out.Lists[ImportsKey]
		if imports == nil {
			imports = []string{}
		}
		if single, ok := p.Attributes[ImportsKey]; ok {
			imports = append(imports, single)
		}
		out.Lists[ImportsKey] = append(imports, p.Lists[ImportsKey]...)
	}
	return out
}

// Imports returns the usage's own import directives: the imports attribute
// (if any) followed by the imports list.
func (tu TypeUsage) Imports() []string {
	var out []string
	if single, ok := tu.Attributes[ImportsKey]; ok {
		out = append(out, single)
	}
	return append(out, tu.Lists[ImportsKey]...)
}

// CollectImports returns the sorted, de-duplicated imports of all usages.
func CollectImports(usages ...TypeUsage) []string {
	set := map[string]struct{}{}
	for _, tu := range usages {
		for _, imp := range tu.Imports() {
			set[imp] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}
