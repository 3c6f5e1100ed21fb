package engine

import (
	"log/slog"

	"github.com/roach88/apigen/internal/doctree"
)

type config struct {
	renderer RendererFactory
	policy   IdentifierPolicy
	logger   *slog.Logger
	ids      IDGenerator
	replaces []doctree.Replace
	baseDir  string
}

func newConfig(opts []Option) *config {
	cfg := &config{
		policy: FirstRegexPolicy{},
		logger: slog.Default(),
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures an Engine.
type Option func(*config)

// WithRenderer sets the factory for the renderer the engine owns.
// Without one the engine owns no renderer.
func WithRenderer(factory RendererFactory) Option {
	return func(c *config) {
		c.renderer = factory
	}
}

// WithIdentifierPolicy replaces FirstRegexPolicy for MapIdentifier.
func WithIdentifierPolicy(p IdentifierPolicy) Option {
	return func(c *config) {
		if p != nil {
			c.policy = p
		}
	}
}

// WithLogger sets the logger for load diagnostics. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIDGenerator sets the load ID source. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *config) {
		if g != nil {
			c.ids = g
		}
	}
}

// WithReplacePairs rewrites the raw document text before Load parses it.
func WithReplacePairs(pairs ...doctree.Replace) Option {
	return func(c *config) {
		c.replaces = append(c.replaces, pairs...)
	}
}

// WithBaseDir sets the directory template paths are resolved against.
// Load defaults it to the document's directory.
func WithBaseDir(dir string) Option {
	return func(c *config) {
		c.baseDir = dir
	}
}
