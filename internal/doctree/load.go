package doctree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"
)

// Replace is a regular expression substitution applied to the raw document
// text before it is parsed. Pattern and Replacement use the same ECMAScript
// dialect as rule patterns ($1, $&, $$ in replacements).
type Replace struct {
	Pattern     string
	Replacement string
}

type loadConfig struct {
	replaces []Replace
	format   string
}

// LoadOption configures LoadFile and Parse.
type LoadOption func(*loadConfig)

// WithReplacePairs rewrites the raw text with each pair, in order, before
// parsing.
func WithReplacePairs(pairs ...Replace) LoadOption {
	return func(c *loadConfig) {
		c.replaces = append(c.replaces, pairs...)
	}
}

// WithFormat forces the document format ("yaml" or "cue") instead of
// inferring it from the file extension.
func WithFormat(format string) LoadOption {
	return func(c *loadConfig) {
		c.format = format
	}
}

// LoadFile reads and parses the document at path.
func LoadFile(path string, opts ...LoadOption) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, &ParseError{Pos: Pos{File: path}, Message: "document is empty"}
	}
	return Parse(data, path, opts...)
}

// Parse parses data as a document named filename.
func Parse(data []byte, filename string, opts ...LoadOption) (Node, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.replaces) > 0 {
		text := string(data)
		for _, r := range cfg.replaces {
			re, err := regexp2.Compile(r.Pattern, regexp2.ECMAScript)
			if err != nil {
				return nil, fmt.Errorf("replace pattern %q: %w", r.Pattern, err)
			}
			if text, err = re.Replace(text, r.Replacement, -1, -1); err != nil {
				return nil, fmt.Errorf("replace pattern %q: %w", r.Pattern, err)
			}
		}
		data = []byte(text)
	}

	format := cfg.format
	if format == "" {
		format = FormatOf(filename)
	}

	switch format {
	case "cue":
		return ParseCUE(data, filename)
	case "yaml":
		return ParseYAML(data, filename)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// FormatOf infers the document format from a file name.
// Anything that is not a .cue file is read as YAML.
func FormatOf(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".cue") {
		return "cue"
	}
	return "yaml"
}
