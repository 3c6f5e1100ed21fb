package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/apigen/internal/engine"
	"github.com/roach88/apigen/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompilationResult is the JSON payload of a successful compile.
type CompilationResult struct {
	Fingerprint string           `json:"fingerprint"`
	Stats       CompilationStats `json:"stats"`
	Ruleset     json.RawMessage  `json:"ruleset"`
	Output      string           `json:"output,omitempty"`
}

// CompilationStats holds summary statistics.
type CompilationStats struct {
	TypeRules     int `json:"type_rules"`
	FormatRules   int `json:"format_rules"`
	Identifiers   int `json:"identifiers"`
	Substitutions int `json:"substitutions"`
	Templates     int `json:"templates"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [rule-document]",
		Short: "Compile a rule document to canonical JSON",
		Long: `Compile the analyzer rule tables of a YAML or CUE document to canonical
JSON, with a fingerprint that changes whenever the effective rules change.

The document defaults to --config (or "config" in apigen.yaml).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	path, err := configPath(opts.RootOptions, args)
	if err != nil {
		return failLoad(formatter, err)
	}
	formatter.VerboseLog("Compiling %s", path)

	eng, err := loadEngine(opts.RootOptions, path)
	if err != nil {
		return failLoad(formatter, err)
	}

	rules := eng.Ruleset()
	fingerprint, err := rules.Fingerprint()
	if err != nil {
		return failLoad(formatter, err)
	}
	dump, err := ir.MarshalCanonical(map[string]any{
		"fingerprint": fingerprint,
		"ruleset":     rules.Canonical(),
	})
	if err != nil {
		return failLoad(formatter, err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, dump, 0o644); err != nil {
			if outErr := formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil); outErr != nil {
				return outErr
			}
			return reportedError(ExitCommandError, ErrCodeWriteFailed, err)
		}
	}

	ruleset, err := ir.MarshalCanonical(rules.Canonical())
	if err != nil {
		return failLoad(formatter, err)
	}
	result := CompilationResult{
		Fingerprint: fingerprint,
		Stats:       calculateStats(eng),
		Ruleset:     ruleset,
		Output:      opts.Output,
	}
	return outputCompileSuccess(formatter, eng, result)
}

// calculateStats computes summary statistics from a loaded engine.
func calculateStats(eng *engine.Engine) CompilationStats {
	rules := eng.Ruleset()
	stats := CompilationStats{
		TypeRules:     len(rules.Types),
		Identifiers:   len(rules.Identifiers),
		Substitutions: len(rules.Substitutions),
		Templates:     len(eng.Environment().Templates),
	}
	for _, tr := range rules.Types {
		stats.FormatRules += len(tr.Formats)
	}
	return stats
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, eng *engine.Engine, result CompilationResult) error {
	warnings := warningStrings(eng)
	if formatter.Format == "json" {
		return formatter.Respond(CLIResponse{
			Status:   "ok",
			Data:     result,
			Warnings: warnings,
			LoadID:   eng.LoadID(),
		})
	}

	for _, w := range warnings {
		fmt.Fprintf(formatter.GetErrWriter(), "warning: %s\n", w)
	}

	s := result.Stats
	w := formatter.Writer
	fmt.Fprintf(w, "✓ Compiled %d type rule(s) with %d format(s), %d identifier rule(s), %d substitution(s)\n",
		s.TypeRules, s.FormatRules, s.Identifiers, s.Substitutions)
	fmt.Fprintf(w, "Fingerprint: %s\n", result.Fingerprint)
	if result.Output != "" {
		fmt.Fprintf(w, "Output written to %s\n", result.Output)
	}
	return nil
}

func warningStrings(eng *engine.Engine) []string {
	warnings := eng.Warnings()
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Error()
	}
	return out
}
