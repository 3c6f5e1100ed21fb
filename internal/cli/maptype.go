package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/apigen/internal/ir"
)

// MapTypeOptions holds flags for the map-type command.
type MapTypeOptions struct {
	*RootOptions
	BaseName string
	Params   []string // "type" or "type:format", resolved and specialized in
}

// TypeResult is the JSON payload of map-type.
type TypeResult struct {
	Usage   map[string]any `json:"usage"`
	Matched bool           `json:"matched"`
	Rule    int            `json:"rule"`
	Format  int            `json:"format"`
	Imports []string       `json:"imports"`
}

// NewMapTypeCommand creates the map-type command.
func NewMapTypeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MapTypeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "map-type <type> [format]",
		Short: "Resolve a source type and format to a target type",
		Long: `Resolve a source type and format against the rule document given by
--config and print the resulting usage.

Examples:
  apigen map-type integer int64 -c gtad.yaml
  apigen map-type array -c gtad.yaml --param string --param integer:int32
  apigen map-type object --base-name RoomEvent --format json`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMapType(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.BaseName, "base-name", "", "schema-provided base name")
	cmd.Flags().StringArrayVar(&opts.Params, "param", nil, "parameter type as type[:format] (repeatable)")

	return cmd
}

func runMapType(opts *MapTypeOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	path, err := configPath(opts.RootOptions, nil)
	if err != nil {
		return failLoad(formatter, err)
	}
	eng, err := loadEngine(opts.RootOptions, path)
	if err != nil {
		return failLoad(formatter, err)
	}

	sourceType, sourceFormat := args[0], ""
	if len(args) > 1 {
		sourceFormat = args[1]
	}
	m := eng.ExplainType(sourceType, sourceFormat, opts.BaseName)
	formatter.VerboseLog("map-type %s/%s: rule %d, format %d", sourceType, sourceFormat, m.Rule, m.Format)

	usage := m.Usage
	if len(opts.Params) > 0 {
		params := make([]ir.TypeUsage, len(opts.Params))
		for i, p := range opts.Params {
			t, f, _ := strings.Cut(p, ":")
			params[i] = eng.MapType(t, f, "")
		}
		usage = usage.Specialize(params...)
	}

	result := TypeResult{
		Usage:   usage.Canonical(),
		Matched: m.Matched(),
		Rule:    m.Rule,
		Format:  m.Format,
		Imports: ir.CollectImports(usage),
	}
	if formatter.Format == "json" {
		return formatter.Respond(CLIResponse{Status: "ok", Data: result, LoadID: eng.LoadID()})
	}

	writeUsage(formatter.Writer, usage, "")
	if m.Matched() {
		fmt.Fprintf(formatter.Writer, "rule: %s #%d, format #%d\n", eng.Ruleset().Types[m.Rule].SourceType, m.Rule, m.Format)
	} else {
		fmt.Fprintln(formatter.Writer, "rule: none (fallback)")
	}
	return nil
}

// writeUsage prints a usage as indented key/value lines.
func writeUsage(w io.Writer, tu ir.TypeUsage, indent string) {
	fmt.Fprintf(w, "%sbase_name: %s\n", indent, tu.BaseName)
	for _, k := range slices.Sorted(maps.Keys(tu.Attributes)) {
		fmt.Fprintf(w, "%s%s: %q\n", indent, k, tu.Attributes[k])
	}
	for _, k := range slices.Sorted(maps.Keys(tu.Lists)) {
		fmt.Fprintf(w, "%s%s: [%s]\n", indent, k, strings.Join(tu.Lists[k], ", "))
	}
	for i, p := range tu.ParamTypes {
		fmt.Fprintf(w, "%sparam %d:\n", indent, i)
		writeUsage(w, p, indent+"  ")
	}
}
