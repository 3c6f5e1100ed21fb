package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/apigen/internal/compiler"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool // skipped patterns fail validation
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	File     string   `json:"file"`
	Warnings []string `json:"warnings,omitempty"`

	// Findings are rules that load but can never take effect.
	Findings []compiler.Finding `json:"findings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate [rule-document]",
		Short: "Check a rule document without printing the tables",
		Long: `Load a rule document and report structural errors with their position.

Patterns that fail to compile are skipped and reported as warnings, as
are rules the resolution order can never reach. With --strict either
fails validation.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat skipped patterns and dead rules as errors")

	return cmd
}

func runValidate(opts *ValidateOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	path, err := configPath(opts.RootOptions, args)
	if err != nil {
		return failLoad(formatter, err)
	}
	formatter.VerboseLog("Validating %s", path)

	eng, err := loadEngine(opts.RootOptions, path)
	if err != nil {
		return failLoad(formatter, err)
	}

	warnings := warningStrings(eng)
	findings := eng.Lint()
	for _, f := range findings {
		formatter.VerboseLog("lint: %s", f.Error())
		warnings = append(warnings, f.Error())
	}

	if opts.Strict && len(warnings) > 0 {
		msg := fmt.Sprintf("%d pattern(s) skipped, %d dead rule(s)", len(warnings)-len(findings), len(findings))
		if err := formatter.Error(ErrCodeWarnings, msg, warnings); err != nil {
			return err
		}
		if formatter.Format != "json" {
			for _, w := range warnings {
				fmt.Fprintf(formatter.Writer, "  %s\n", w)
			}
		}
		return reportedError(ExitFailure, msg, nil)
	}

	if formatter.Format == "json" {
		return formatter.Respond(CLIResponse{
			Status: "ok",
			Data:   ValidationResult{Valid: true, File: path, Warnings: warnings, Findings: findings},
			LoadID: eng.LoadID(),
		})
	}
	return formatter.Respond(CLIResponse{
		Status:   "ok",
		Data:     fmt.Sprintf("✓ %s is valid (%d warning(s))", path, len(warnings)),
		Warnings: warnings,
	})
}
