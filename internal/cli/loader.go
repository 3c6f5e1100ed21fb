package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/apigen/internal/compiler"
	"github.com/roach88/apigen/internal/doctree"
	"github.com/roach88/apigen/internal/engine"
)

// Error code constants - unified across all CLI commands.
// Structural errors in the rule document keep the compiler's E2xx codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNoConfig    = "E002" // No rule document given
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeWarnings    = "E008" // Patterns were skipped and --strict is set
	ErrCodeParse       = "E101" // Document could not be parsed
	ErrCodeTestFailed  = "E301" // One or more scenarios failed
)

// configPath picks the rule document: the positional argument if given,
// else the configured default.
func configPath(opts *RootOptions, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if opts.Config != "" {
		return opts.Config, nil
	}
	return "", &docError{Code: ErrCodeNoConfig, Message: "no rule document given (pass a path or set --config)"}
}

// loadEngine builds an engine for path with the CLI's policy and logger.
func loadEngine(opts *RootOptions, path string) (*engine.Engine, error) {
	policy, err := engine.PolicyByName(opts.Policy)
	if err != nil {
		return nil, err
	}
	return engine.Load(path,
		engine.WithIdentifierPolicy(policy),
		engine.WithLogger(opts.logger()),
	)
}

// docError is a CLI-level error with a code and optional location details.
type docError struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *docError) Error() string {
	return e.Code + ": " + e.Message
}

// describeError maps a load failure to an error code, message and details.
func describeError(err error) *docError {
	var de *docError
	if errors.As(err, &de) {
		return de
	}

	var loadErr *compiler.LoadError
	if errors.As(err, &loadErr) {
		return &docError{
			Code:    loadErr.Code,
			Message: loadErr.Message,
			Details: posDetails(loadErr.Pos, loadErr.Path),
		}
	}

	var parseErr *doctree.ParseError
	if errors.As(err, &parseErr) {
		return &docError{
			Code:    ErrCodeParse,
			Message: parseErr.Message,
			Details: posDetails(parseErr.Pos, ""),
		}
	}

	if errors.Is(err, fs.ErrNotExist) {
		return &docError{Code: ErrCodeNotFound, Message: err.Error()}
	}
	return &docError{Code: ErrCodeGeneric, Message: err.Error()}
}

func posDetails(pos doctree.Pos, path string) map[string]any {
	details := map[string]any{}
	if pos.File != "" {
		details["file"] = pos.File
	}
	if pos.IsValid() {
		details["line"] = pos.Line
		details["column"] = pos.Column
	}
	if path != "" {
		details["path"] = path
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// failLoad reports err through f and returns the matching exit error.
func failLoad(f *OutputFormatter, err error) error {
	de := describeError(err)
	msg := de.Message
	if f.Format != "json" && de.Details != nil {
		msg = err.Error() // carries the position
	}
	if outErr := f.Error(de.Code, msg, de.Details); outErr != nil {
		return outErr
	}
	code := ExitFailure
	if de.Code == ErrCodeNoConfig || de.Code == ErrCodeNotFound {
		code = ExitCommandError
	}
	return reportedError(code, de.Code, err)
}
