package engine

import (
	"fmt"
	"strings"

	"github.com/roach88/apigen/internal/compiler"
	"github.com/roach88/apigen/internal/doctree"
	"github.com/roach88/apigen/internal/naming"
)

// MustacheKey is the top-level section configuring the template renderer.
const MustacheKey = "mustache"

// ConstantKind tells how a renderer constant is typed.
type ConstantKind int

const (
	// ConstString is a text constant.
	ConstString ConstantKind = iota
	// ConstBool is a boolean flag.
	ConstBool
	// ConstSet is an initially empty list that templates may fill.
	ConstSet
)

func (k ConstantKind) String() string {
	switch k {
	case ConstString:
		return "string"
	case ConstBool:
		return "bool"
	case ConstSet:
		return "set"
	default:
		return fmt.Sprintf("ConstantKind(%d)", int(k))
	}
}

// Constant is a named value predefined for every template.
type Constant struct {
	Name string
	Kind ConstantKind
	// Type is the declared type name of a {type: default} constant.
	Type  string
	Value string
	Bool  bool
}

// Partial is a named template snippet.
type Partial struct {
	Name string
	Text string
}

// Lambda transforms rendered section text.
type Lambda func(string) string

// Environment is everything the template renderer needs from the
// configuration document. It is built once and not modified afterwards.
type Environment struct {
	Constants []Constant
	Partials  []Partial
	// Templates lists the template files to instantiate, in order.
	Templates []string
	// OutFilesList names a file to record generated paths in; empty for none.
	OutFilesList string
	// Delimiter replaces the default {{ }} tag delimiters when set.
	Delimiter string
	// BaseDir is the directory template paths are relative to.
	BaseDir string
	Lambdas map[string]Lambda
}

// BuiltinLambdas returns the lambdas available to every template.
func BuiltinLambdas() map[string]Lambda {
	return map[string]Lambda{
		"_cap":     naming.Capitalize,
		"_toupper": naming.ToUpper,
		"_tolower": naming.ToLower,
		"_camel":   naming.CamelCase,
	}
}

// Context returns the environment as a template context: string constants
// map to strings, bool constants to bools, set constants to empty lists,
// partials to their text and lambdas to functions.
func (env *Environment) Context() map[string]any {
	ctx := make(map[string]any, len(env.Constants)+len(env.Partials)+len(env.Lambdas))
	for _, c := range env.Constants {
		switch c.Kind {
		case ConstBool:
			ctx[c.Name] = c.Bool
		case ConstSet:
			ctx[c.Name] = []any{}
		default:
			ctx[c.Name] = c.Value
		}
	}
	for _, p := range env.Partials {
		ctx[p.Name] = p.Text
	}
	for name, fn := range env.Lambdas {
		ctx[name] = fn
	}
	return ctx
}

// Constant returns the constant called name.
func (env *Environment) Constant(name string) (Constant, bool) {
	for _, c := range env.Constants {
		if c.Name == name {
			return c, true
		}
	}
	return Constant{}, false
}

// CompileEnvironment reads the optional mustache section of a document.
// A missing section yields an environment holding only the built-in lambdas.
func CompileEnvironment(root doctree.Node, baseDir string) (*Environment, error) {
	env := &Environment{BaseDir: baseDir, Lambdas: BuiltinLambdas()}

	rootMap, ok := root.(*doctree.Mapping)
	if !ok {
		return env, nil
	}
	section, ok := rootMap.Get(MustacheKey)
	if !ok || section.Kind() == doctree.KindNull {
		return env, nil
	}
	m, ok := section.(*doctree.Mapping)
	if !ok {
		return nil, configError(section, MustacheKey, "mustache must be a mapping, got %s", section.Kind())
	}

	var err error
	if env.Constants, err = compileConstants(m); err != nil {
		return nil, err
	}
	if env.Partials, err = compilePartials(m); err != nil {
		return nil, err
	}
	if env.Templates, err = compileTemplates(m); err != nil {
		return nil, err
	}
	if env.OutFilesList, err = optionalScalar(m, "outFilesList"); err != nil {
		return nil, err
	}
	if env.Delimiter, err = optionalScalar(m, "delimiter"); err != nil {
		return nil, err
	}
	return env, nil
}

func compileConstants(section *doctree.Mapping) ([]Constant, error) {
	m, err := optionalMapping(section, "constants")
	if err != nil || m == nil {
		return nil, err
	}

	constants := make([]Constant, 0, m.Len())
	for _, e := range m.Entries {
		path := MustacheKey + ".constants." + e.Key
		c := Constant{Name: e.Key}

		switch v := e.Value.(type) {
		case *doctree.Scalar:
			c.Value = v.Value
		case *doctree.Mapping:
			if v.Len() == 0 {
				return nil, configError(v, path, "constant definition must be {type: default}")
			}
			def := v.Entries[0]
			c.Type = def.Key
			switch def.Key {
			case "set":
				c.Kind = ConstSet
			case "bool":
				c.Kind = ConstBool
				if c.Bool, err = parseBool(def.Value, path); err != nil {
					return nil, err
				}
			default:
				if c.Value, err = scalarText(def.Value, path+"."+def.Key); err != nil {
					return nil, err
				}
			}
		default:
			return nil, configError(e.Value, path, "constant must be a scalar or a {type: default} mapping, got %s", e.Value.Kind())
		}
		constants = append(constants, c)
	}
	return constants, nil
}

func compilePartials(section *doctree.Mapping) ([]Partial, error) {
	m, err := optionalMapping(section, "partials")
	if err != nil || m == nil {
		return nil, err
	}

	partials := make([]Partial, 0, m.Len())
	for _, e := range m.Entries {
		text, err := scalarText(e.Value, MustacheKey+".partials."+e.Key)
		if err != nil {
			return nil, err
		}
		partials = append(partials, Partial{Name: e.Key, Text: text})
	}
	return partials, nil
}

func compileTemplates(section *doctree.Mapping) ([]string, error) {
	n, ok := section.Get("templates")
	if !ok || n.Kind() == doctree.KindNull {
		return nil, nil
	}
	path := MustacheKey + ".templates"
	seq, ok := n.(*doctree.Sequence)
	if !ok {
		return nil, configError(n, path, "templates must be a sequence, got %s", n.Kind())
	}

	templates := make([]string, 0, seq.Len())
	for i, item := range seq.Items {
		name, err := scalarText(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		templates = append(templates, name)
	}
	return templates, nil
}

func optionalMapping(section *doctree.Mapping, key string) (*doctree.Mapping, error) {
	n, ok := section.Get(key)
	if !ok || n.Kind() == doctree.KindNull {
		return nil, nil
	}
	m, ok := n.(*doctree.Mapping)
	if !ok {
		return nil, configError(n, MustacheKey+"."+key, "%s must be a mapping, got %s", key, n.Kind())
	}
	return m, nil
}

func optionalScalar(section *doctree.Mapping, key string) (string, error) {
	n, ok := section.Get(key)
	if !ok {
		return "", nil
	}
	return scalarText(n, MustacheKey+"."+key)
}

// scalarText returns the text of a scalar; null reads as "".
func scalarText(n doctree.Node, path string) (string, error) {
	switch v := n.(type) {
	case *doctree.Scalar:
		return v.Value, nil
	case *doctree.Null:
		return "", nil
	default:
		return "", configError(n, path, "expected a scalar, got %s", n.Kind())
	}
}

func parseBool(n doctree.Node, path string) (bool, error) {
	text, err := scalarText(n, path)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(text) {
	case "", "false", "no", "n", "off", "0":
		return false, nil
	case "true", "yes", "y", "on", "1":
		return true, nil
	default:
		return false, configError(n, path, "invalid boolean %q", text)
	}
}

func configError(n doctree.Node, path, format string, args ...any) *compiler.LoadError {
	return &compiler.LoadError{
		Pos:     n.Pos(),
		Path:    path,
		Code:    compiler.ErrMalformedConfig,
		Message: fmt.Sprintf(format, args...),
	}
}
