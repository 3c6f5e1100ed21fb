package doctree

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// ParseCUE evaluates a single CUE file and converts the resulting value into
// a tree. Struct fields keep their declaration order; labels that are not
// identifiers, such as "+on", must be quoted in the source.
func ParseCUE(data []byte, filename string) (Node, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, cueParseError(err, filename)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueParseError(err, filename)
	}
	return fromCUE(v, filename)
}

func cuePos(p token.Pos, filename string) Pos {
	if !p.IsValid() {
		return Pos{File: filename}
	}
	return Pos{File: p.Filename(), Line: p.Line(), Column: p.Column()}
}

// cueParseError keeps the first error and its position, as CUE errors may
// carry several.
func cueParseError(err error, filename string) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ParseError{Pos: Pos{File: filename}, Message: err.Error()}
	}

	first := errs[0]
	pos := Pos{File: filename}
	if positions := errors.Positions(first); len(positions) > 0 {
		pos = cuePos(positions[0], filename)
	}
	return &ParseError{Pos: pos, Message: first.Error()}
}

func fromCUE(v cue.Value, filename string) (Node, error) {
	pos := cuePos(v.Pos(), filename)

	switch v.IncompleteKind() {
	case cue.NullKind:
		return &Null{At: pos}, nil

	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, cueParseError(err, filename)
		}
		return &Scalar{Value: s, At: pos}, nil

	case cue.BoolKind, cue.IntKind, cue.FloatKind, cue.NumberKind:
		// JSON text of a concrete number or bool is its canonical scalar form.
		b, err := v.MarshalJSON()
		if err != nil {
			return nil, cueParseError(err, filename)
		}
		return &Scalar{Value: string(b), At: pos}, nil

	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, cueParseError(err, filename)
		}
		seq := &Sequence{At: pos}
		for iter.Next() {
			child, err := fromCUE(iter.Value(), filename)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, child)
		}
		return seq, nil

	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, cueParseError(err, filename)
		}
		m := &Mapping{At: pos}
		for iter.Next() {
			value, err := fromCUE(iter.Value(), filename)
			if err != nil {
				return nil, err
			}
			m.Entries = append(m.Entries, Entry{
				Key:    cueLabel(iter.Selector()),
				KeyPos: cuePos(iter.Value().Pos(), filename),
				Value:  value,
			})
		}
		return m, nil

	default:
		return nil, &ParseError{
			Pos:     pos,
			Message: fmt.Sprintf("value of kind %s is not supported (must be concrete)", v.IncompleteKind()),
		}
	}
}

// cueLabel returns the unquoted field name for string labels.
func cueLabel(sel cue.Selector) string {
	if sel.LabelType() == cue.StringLabel {
		return sel.Unquoted()
	}
	return sel.String()
}
