// Package engine resolves type and identifier queries against the rule
// tables of a configuration document.
//
// An Engine is built once, by Load or New, and is read-only afterwards:
//
//	e, err := engine.Load("gtad.yaml")
//	tu := e.MapType("integer", "int64", "")  // attributes of the int64 rule, BaseName "int64"
//	id := e.MapIdentifier("id", "User")       // "id" unless a rule renames it
//
// Type lookup scans type rules in declaration order and takes the first
// format alternative that matches; the emitted base name always comes from
// the fallback chain (requested name, then format, then type).
//
// Identifier lookup is delegated to an IdentifierPolicy. The default,
// FirstRegexPolicy, stops at the first regex rule whether or not it
// matches. ContinuePolicy skips regex rules that do not match.
//
// The engine also builds the renderer Environment (constants, partials,
// template list, case lambdas) and owns the Renderer made from it.
package engine
