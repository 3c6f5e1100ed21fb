package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/apigen/internal/engine"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is the rule document to load. Relative paths are resolved
	// against the scenario file's directory by LoadScenario.
	Config string `yaml:"config"`

	// Policy selects the identifier policy by name; empty means first-regex.
	Policy string `yaml:"policy,omitempty"`

	// LoadID fixes the engine's load ID for deterministic snapshots.
	LoadID string `yaml:"load_id,omitempty"`

	// Warnings, when set, is the expected number of dropped patterns.
	Warnings *int `yaml:"warnings,omitempty"`

	// Types are MapType queries, run in order.
	Types []TypeQuery `yaml:"types,omitempty"`

	// Identifiers are MapIdentifier queries, run after the type queries.
	Identifiers []IdentifierQuery `yaml:"identifiers,omitempty"`

	// LoadError, when set, expects the document to be rejected.
	LoadError *LoadErrorExpect `yaml:"load_error,omitempty"`
}

// TypeQuery is one MapType call.
type TypeQuery struct {
	Type     string `yaml:"type"`
	Format   string `yaml:"format,omitempty"`
	BaseName string `yaml:"base_name,omitempty"`

	// Expect is optional; a query without it only contributes to the trace.
	Expect *TypeExpect `yaml:"expect,omitempty"`
}

// TypeExpect describes the expected usage.
type TypeExpect struct {
	// BaseName must equal the result's base name when set.
	BaseName string `yaml:"base_name,omitempty"`

	// Attributes is a subset match: every listed attribute must be present
	// with this value.
	Attributes map[string]string `yaml:"attributes,omitempty"`

	// Absent lists attributes that must not be present.
	Absent []string `yaml:"absent,omitempty"`

	// Lists must match exactly, order included, for every listed name.
	Lists map[string][]string `yaml:"lists,omitempty"`

	// Matched, when set, says whether a rule must have supplied the usage.
	Matched *bool `yaml:"matched,omitempty"`
}

// IdentifierQuery is one MapIdentifier call.
type IdentifierQuery struct {
	Name  string `yaml:"name"`
	Scope string `yaml:"scope"`

	// Expect is the identifier the engine must return.
	Expect string `yaml:"expect"`
}

// LoadErrorExpect describes an expected load failure.
type LoadErrorExpect struct {
	// Code is the expected LoadError code, e.g. "E203".
	Code string `yaml:"code,omitempty"`

	// Contains must be a substring of the error message.
	Contains string `yaml:"contains,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the config path relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "identifier:" vs "identifiers:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) && basePath != "" {
		scenario.Config = filepath.Join(basePath, scenario.Config)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Config == "" {
		return fmt.Errorf("config is required")
	}
	if _, err := os.Stat(s.Config); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", s.Config)
	}

	if _, err := engine.PolicyByName(s.Policy); err != nil {
		return err
	}

	if s.LoadError != nil {
		if len(s.Types) > 0 || len(s.Identifiers) > 0 {
			return fmt.Errorf("load_error scenarios cannot have queries")
		}
		if s.LoadError.Code == "" && s.LoadError.Contains == "" {
			return fmt.Errorf("load_error: code or contains is required")
		}
		return nil
	}

	if len(s.Types) == 0 && len(s.Identifiers) == 0 {
		return fmt.Errorf("at least one type or identifier query is required")
	}

	for i, q := range s.Types {
		if q.Type == "" {
			return fmt.Errorf("types[%d]: type is required", i)
		}
	}

	for i, q := range s.Identifiers {
		if q.Name == "" {
			return fmt.Errorf("identifiers[%d]: name is required", i)
		}
		if q.Expect == "" {
			return fmt.Errorf("identifiers[%d]: expect is required", i)
		}
	}

	if s.Warnings != nil && *s.Warnings < 0 {
		return fmt.Errorf("warnings must not be negative")
	}

	return nil
}
