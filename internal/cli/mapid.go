package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// IdentifierResult is the JSON payload of map-id.
type IdentifierResult struct {
	Identifier string `json:"identifier"`
	Scoped     string `json:"scoped"`
	Rule       int    `json:"rule"`
	Matched    bool   `json:"matched"`
}

// NewMapIDCommand creates the map-id command.
func NewMapIDCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map-id <name> [scope]",
		Short: "Rename an identifier within a scope",
		Long: `Apply the identifier rules of the rule document given by --config to a
name. Regex rules see "scope/name"; literal rules match the bare or the
scoped name.

Examples:
  apigen map-id signed -c gtad.yaml
  apigen map-id userId Room -c gtad.yaml --policy continue`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMapID(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runMapID(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	path, err := configPath(opts, nil)
	if err != nil {
		return failLoad(formatter, err)
	}
	eng, err := loadEngine(opts, path)
	if err != nil {
		return failLoad(formatter, err)
	}

	name, scope := args[0], ""
	if len(args) > 1 {
		scope = args[1]
	}
	m := eng.ExplainIdentifier(name, scope)
	formatter.VerboseLog("map-id %s: scoped %q, rule %d, matched %t", name, m.Scoped, m.Rule, m.Matched)

	if formatter.Format == "json" {
		return formatter.Respond(CLIResponse{
			Status: "ok",
			Data: IdentifierResult{
				Identifier: m.Name,
				Scoped:     m.Scoped,
				Rule:       m.Rule,
				Matched:    m.Matched,
			},
			LoadID: eng.LoadID(),
		})
	}

	fmt.Fprintln(formatter.Writer, m.Name)
	return nil
}
