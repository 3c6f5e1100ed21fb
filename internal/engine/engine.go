package engine

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/roach88/apigen/internal/compiler"
	"github.com/roach88/apigen/internal/doctree"
	"github.com/roach88/apigen/internal/ir"
)

// Engine answers type and identifier queries from compiled rule tables.
//
// Thread-safety: an Engine is immutable after New returns; every query
// method is safe for concurrent use.
type Engine struct {
	rules    *ir.Ruleset
	warnings []compiler.PatternWarning
	env      *Environment
	renderer Renderer
	policy   IdentifierPolicy
	loadID   string
}

// Load reads the configuration document at path and builds an Engine.
func Load(path string, opts ...Option) (*Engine, error) {
	cfg := newConfig(opts)
	if cfg.baseDir == "" {
		cfg.baseDir = filepath.Dir(path)
	}

	cfg.logger.Info("using config file", "file", path)
	root, err := doctree.LoadFile(path, doctree.WithReplacePairs(cfg.replaces...))
	if err != nil {
		return nil, err
	}
	return build(root, cfg)
}

// New builds an Engine from an already parsed document.
func New(root doctree.Node, opts ...Option) (*Engine, error) {
	return build(root, newConfig(opts))
}

func build(root doctree.Node, cfg *config) (*Engine, error) {
	loadID := cfg.ids.Generate()
	log := cfg.logger.With("load_id", loadID)

	rules, warnings, err := compiler.CompileAnalyzer(root)
	if err != nil {
		log.Error("loading rules failed", "error", err)
		return nil, err
	}
	for _, w := range warnings {
		log.Warn("pattern skipped",
			"table", w.Table,
			"pattern", w.Pattern,
			"pos", w.Pos.String(),
			"error", w.Err,
		)
	}

	env, err := CompileEnvironment(root, cfg.baseDir)
	if err != nil {
		log.Error("loading renderer environment failed", "error", err)
		return nil, err
	}

	e := &Engine{
		rules:    rules,
		warnings: warnings,
		env:      env,
		policy:   cfg.policy,
		loadID:   loadID,
	}

	if cfg.renderer != nil {
		r, err := cfg.renderer(env)
		if err != nil {
			return nil, fmt.Errorf("creating renderer: %w", err)
		}
		e.renderer = r
	}

	log.Info("rules loaded",
		"types", len(rules.Types),
		"identifiers", len(rules.Identifiers),
		"substitutions", len(rules.Substitutions),
		"templates", len(env.Templates),
		"warnings", len(warnings),
	)
	return e, nil
}

// TypeMatch is the outcome of a type lookup.
type TypeMatch struct {
	Usage ir.TypeUsage
	// Rule and Format index the type rule and format alternative that
	// matched; both are -1 on a miss.
	Rule   int
	Format int
}

// Matched reports whether a rule supplied the usage.
func (m TypeMatch) Matched() bool {
	return m.Rule >= 0
}

// MapType returns the target usage for a source type and format.
//
// The attributes and lists come from the first format alternative that
// matches, scanning type rules named sourceType in declaration order; a miss
// yields an empty usage. The base name is always baseName, else
// sourceFormat, else sourceType.
func (e *Engine) MapType(sourceType, sourceFormat, baseName string) ir.TypeUsage {
	return e.ExplainType(sourceType, sourceFormat, baseName).Usage
}

// ExplainType is MapType that also reports which rule matched.
func (e *Engine) ExplainType(sourceType, sourceFormat, baseName string) TypeMatch {
	m := TypeMatch{Usage: ir.NewTypeUsage(""), Rule: -1, Format: -1}

scan:
	for i, rule := range e.rules.Types {
		if rule.SourceType != sourceType {
			continue
		}
		for j, f := range rule.Formats {
			if f.Pattern.Match(sourceFormat) {
				m = TypeMatch{Usage: f.Value.Clone(), Rule: i, Format: j}
				break scan
			}
		}
	}

	switch {
	case baseName != "":
		m.Usage.BaseName = baseName
	case sourceFormat != "":
		m.Usage.BaseName = sourceFormat
	default:
		m.Usage.BaseName = sourceType
	}
	return m
}

// MapIdentifier returns the identifier to emit for baseName in scope.
func (e *Engine) MapIdentifier(baseName, scope string) string {
	return e.ExplainIdentifier(baseName, scope).Name
}

// ExplainIdentifier is MapIdentifier that also reports which rule applied.
func (e *Engine) ExplainIdentifier(baseName, scope string) IdentifierMatch {
	return e.policy.Resolve(e.rules.Identifiers, baseName, scope)
}

// Substitutions returns the substitution table. The analyzer applies it to
// source names before querying the engine.
func (e *Engine) Substitutions() ir.RenameTable {
	return slices.Clone(e.rules.Substitutions)
}

// Warnings returns the patterns dropped while loading.
func (e *Engine) Warnings() []compiler.PatternWarning {
	return slices.Clone(e.warnings)
}

// Lint reports rules that can never take effect under this engine's
// identifier policy.
func (e *Engine) Lint() []compiler.Finding {
	return compiler.Lint(e.rules, e.policy.StopsAtFirstRegex())
}

// Ruleset returns the compiled tables. Callers must not modify them.
func (e *Engine) Ruleset() *ir.Ruleset {
	return e.rules
}

// Environment returns the renderer environment.
func (e *Engine) Environment() *Environment {
	return e.env
}

// Renderer returns the owned renderer, or nil if no factory was given.
func (e *Engine) Renderer() Renderer {
	return e.renderer
}

// LoadID identifies this engine's load in logs.
func (e *Engine) LoadID() string {
	return e.loadID
}
