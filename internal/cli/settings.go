package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/roach88/apigen/internal/engine"
)

// Settings defaults and sources.
const (
	SettingsFileName = "apigen.yaml"
	EnvPrefix        = "APIGEN_"
	DefaultFormat    = "text"
)

// Settings are the CLI options after layering.
// Precedence (highest to lowest): flags > env vars > settings file > defaults
type Settings struct {
	Format  string `koanf:"format"`
	Verbose bool   `koanf:"verbose"`
	Policy  string `koanf:"policy"`
	Config  string `koanf:"config"`

	// File is the settings file that was read, if any.
	File string `koanf:"-"`
}

// Apply copies the settings into opts.
func (s *Settings) Apply(opts *RootOptions) {
	opts.Format = s.Format
	opts.Verbose = s.Verbose
	opts.Policy = s.Policy
	opts.Config = s.Config
}

// findSettingsFile returns the explicit path, or apigen.yaml in the working
// directory if it exists.
func findSettingsFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(SettingsFileName); err == nil {
		return SettingsFileName
	}
	return ""
}

// LoadSettings layers defaults, the settings file, APIGEN_* environment
// variables and the changed flags in flags. A relative config path in the
// settings file is resolved against the file's directory.
func LoadSettings(settingsFile string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"format":  DefaultFormat,
		"verbose": false,
		"policy":  engine.PolicyFirstRegex,
		"config":  "",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Settings file
	used := findSettingsFile(settingsFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", used, err)
		}
		if cfg := k.String("config"); cfg != "" && !filepath.IsAbs(cfg) {
			if err := k.Set("config", filepath.Join(filepath.Dir(used), cfg)); err != nil {
				return nil, fmt.Errorf("resolving config path: %w", err)
			}
		}
	}

	// 3. Environment: APIGEN_POLICY -> policy
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "settings" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	s.File = used
	return &s, nil
}
