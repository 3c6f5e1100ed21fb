package ir

// Canonical returns the usage as a canonical-JSON-ready map.
// Empty maps and lists are omitted.
func (tu TypeUsage) Canonical() map[string]any {
	out := map[string]any{}
	if tu.BaseName != "" {
		out["base_name"] = tu.BaseName
	}
	if len(tu.Attributes) > 0 {
		out["attributes"] = tu.Attributes
	}
	if len(tu.Lists) > 0 {
		out["lists"] = tu.Lists
	}
	if len(tu.ParamTypes) > 0 {
		params := make([]any, len(tu.ParamTypes))
		for i, p := range tu.ParamTypes {
			params[i] = p.Canonical()
		}
		out["param_types"] = params
	}
	return out
}

// Canonical returns the ruleset as a canonical-JSON-ready map.
func (rs *Ruleset) Canonical() map[string]any {
	types := make([]any, len(rs.Types))
	for i, tr := range rs.Types {
		formats := make([]any, len(tr.Formats))
		for j, f := range tr.Formats {
			formats[j] = map[string]any{
				"format": f.Pattern.String(),
				"usage":  f.Value.Canonical(),
			}
		}
		types[i] = map[string]any{
			"source_type": tr.SourceType,
			"formats":     formats,
		}
	}

	return map[string]any{
		"version":       RulesetVersion,
		"types":         types,
		"identifiers":   renamesCanonical(rs.Identifiers),
		"substitutions": renamesCanonical(rs.Substitutions),
	}
}

func renamesCanonical(t RenameTable) []any {
	out := make([]any, len(t))
	for i, e := range t {
		out[i] = map[string]any{
			"pattern":     e.Pattern.String(),
			"replacement": e.Value.Replacement,
		}
	}
	return out
}
