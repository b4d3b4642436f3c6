package syntax

import (
	"fmt"

	"spreadgen/internal/common"
	"spreadgen/internal/diagnostic"
	"spreadgen/internal/token"
)

// TypedField is `[modifier] name: Type [= default]`, or the receiver
// `[&[mut]] self`.
type TypedField struct {
	Modifier Modifier
	Name     Ident
	// Type is nil for the receiver.
	Type    *Expr
	Default *Expr
}

// IsReceiver reports whether the field is the `self` pseudo-field.
func (f TypedField) IsReceiver() bool {
	return f.Type == nil
}

// Field returns f as a plain Field for modifier rendering.
func (f TypedField) Field() *Field {
	return &Field{Modifier: f.Modifier, Name: f.Name}
}

// ParseTypedField reads one argument of fn_struct!.
func ParseTypedField(c *Cursor) (TypedField, error) {
	var f TypedField

	m, err := parseModifier(c)
	if err != nil {
		return f, err
	}

	f.Modifier = m

	if f.Name, err = c.parseIdent(true); err != nil {
		return f, err
	}

	if f.Name.Name == "self" {
		if !m.AllowedOnReceiver() {
			return f, NewError(diagnostic.CodeReceiverModifier, m.Span.Join(f.Name.Span),
				"only `&`, `&mut` or no modifier is allowed before `self`")
		}

		return f, nil
	}

	if _, err := c.expectPunct(":"); err != nil {
		return f, err
	}

	ty, err := c.scanType("type", ",", "=")
	if err != nil {
		return f, err
	}

	f.Type = &ty

	if _, ok := c.eatPunct("="); ok {
		def, err := c.parseExpr("default value after `=`", ",")
		if err != nil {
			return f, err
		}

		f.Default = &def
	}

	return f, nil
}

// FnStructDecl is one declaration of fn_struct!: *FnStruct or *ClosureStruct.
type FnStructDecl interface {
	DeclSpan() token.Span
	fnStructDecl()
}

// FnStruct describes an argument struct forwarding to a callable:
//
//	[attrs] [vis] [&] Name<G> [where ...] for<G2> [where ...] fn path(args) [-> Ret]
type FnStruct struct {
	Attrs []string
	Vis   string
	// ByRef makes `call` take `&self` instead of `self`.
	ByRef          bool
	Name           Ident
	StructGenerics Generics
	CallGenerics   Generics
	Path           FnPath
	Receiver       *TypedField
	Fields         []TypedField
	Return         *Expr
	// ImplDefault is set when every field has a default value.
	ImplDefault bool
	Span        token.Span
}

// DeclSpan implements FnStructDecl.
func (f *FnStruct) DeclSpan() token.Span { return f.Span }

func (*FnStruct) fnStructDecl() {}

// ClosureStruct is the positional form `[vis] Name(a, b)`: a struct generic
// over every argument whose `call` takes any FnOnce(a, b) -> R.
type ClosureStruct struct {
	Attrs []string
	Vis   string
	Name  Ident
	Args  []Ident
	Span  token.Span
}

// DeclSpan implements FnStructDecl.
func (f *ClosureStruct) DeclSpan() token.Span { return f.Span }

func (*ClosureStruct) fnStructDecl() {}

// ParseFnStructs reads `;`-separated declarations until the end of the window.
func ParseFnStructs(c *Cursor) ([]FnStructDecl, error) {
	var decls []FnStructDecl

	for !c.EOF() {
		d, err := parseFnStructDecl(c)
		if err != nil {
			return nil, err
		}

		decls = append(decls, d)

		if c.EOF() {
			break
		}

		if _, err := c.expectPunct(";"); err != nil {
			return nil, err
		}
	}

	if common.IsEmpty(decls) {
		return nil, NewError(diagnostic.CodeEmptyList, c.span(), "`fn_struct!` needs at least one declaration")
	}

	return decls, nil
}

func parseFnStructDecl(c *Cursor) (FnStructDecl, error) {
	start := c.span()

	attrs, err := parseAttrs(c)
	if err != nil {
		return nil, err
	}

	vis, err := parseVis(c)
	if err != nil {
		return nil, err
	}

	_, byRef := c.eatPunct("&")

	name, err := c.parseIdent(false)
	if err != nil {
		return nil, err
	}

	if !byRef && c.peekPunct("(") {
		return parseClosureStruct(c, start, attrs, vis, name)
	}

	fs := &FnStruct{Attrs: attrs, Vis: vis, ByRef: byRef, Name: name}

	if fs.StructGenerics, err = parseGenerics(c); err != nil {
		return nil, err
	}

	if fs.StructGenerics.Where, err = parseWhere(c, stopAtFor); err != nil {
		return nil, err
	}

	if _, err := c.expectKeyword("for"); err != nil {
		return nil, err
	}

	if fs.CallGenerics, err = parseGenerics(c); err != nil {
		return nil, err
	}

	if fs.CallGenerics.Where, err = parseWhere(c, stopAtFn); err != nil {
		return nil, err
	}

	if _, err := c.expectKeyword("fn"); err != nil {
		return nil, err
	}

	if fs.Path, err = parseFnPath(c); err != nil {
		return nil, err
	}

	args, argsSpan, err := c.group("(")
	if err != nil {
		return nil, err
	}

	if err := fs.parseArgs(args, argsSpan); err != nil {
		return nil, err
	}

	if _, ok := c.eatPunct("->"); ok {
		ret, err := c.scanType("return type after `->`", ";")
		if err != nil {
			return nil, err
		}

		fs.Return = &ret
	}

	fs.Span = start.Join(c.spanOf(c.pos-1, c.pos))

	return fs, nil
}

// parseArgs reads the argument list, extracts the receiver and checks the
// receiver position and the all-or-nothing defaults.
func (fs *FnStruct) parseArgs(c *Cursor, span token.Span) error {
	seen := map[string]token.Span{}

	for i := 0; !c.EOF(); i++ {
		f, err := ParseTypedField(c)
		if err != nil {
			return err
		}

		switch {
		case f.IsReceiver() && i == 0:
			fs.Receiver = &f
		case f.IsReceiver():
			return NewError(diagnostic.CodeReceiverPosition, f.Name.Span,
				"`self` is only allowed once in first position")
		default:
			if first, dup := seen[f.Name.Name]; dup {
				return duplicateField(f.Name, first)
			}

			seen[f.Name.Name] = f.Name.Span
			fs.Fields = append(fs.Fields, f)
		}

		if c.EOF() {
			break
		}

		if _, err := c.expectPunct(","); err != nil {
			return err
		}
	}

	withDefault := 0

	for _, f := range fs.Fields {
		if f.Default != nil {
			withDefault++
		}
	}

	if withDefault != 0 && withDefault != len(fs.Fields) {
		return NewError(diagnostic.CodeMixedDefaults, span,
			"fields must either all have values (`= value`) or none have").
			WithHelp(fmt.Sprintf("%d of %d fields have a default value", withDefault, len(fs.Fields)))
	}

	fs.ImplDefault = withDefault > 0

	return nil
}

func parseClosureStruct(c *Cursor, start token.Span, attrs []string, vis string, name Ident) (*ClosureStruct, error) {
	args, span, err := c.group("(")
	if err != nil {
		return nil, err
	}

	cs := &ClosureStruct{Attrs: attrs, Vis: vis, Name: name, Span: start.Join(span)}
	seen := map[string]token.Span{}

	for !args.EOF() {
		arg, err := args.parseIdent(false)
		if err != nil {
			return nil, err
		}

		if first, dup := seen[arg.Name]; dup {
			return nil, duplicateField(arg, first)
		}

		seen[arg.Name] = arg.Span
		cs.Args = append(cs.Args, arg)

		if args.EOF() {
			break
		}

		if _, err := args.expectPunct(","); err != nil {
			return nil, err
		}
	}

	if common.IsEmpty(cs.Args) {
		return nil, NewError(diagnostic.CodeEmptyList, span, "`%s` must take at least one argument", name.Name)
	}

	return cs, nil
}

// parseAttrs reads outer attributes `#[...]` and doc comments.
func parseAttrs(c *Cursor) ([]string, error) {
	var attrs []string

	for {
		t := c.peek()

		switch {
		case t == nil:
			return attrs, nil
		case t.Kind == token.KindDocComment:
			attrs = append(attrs, c.next().Text)
		case t.IsPunct("#"):
			start := c.pos
			c.next()

			if _, _, err := c.group("["); err != nil {
				return nil, err
			}

			attrs = append(attrs, c.text(start, c.pos))
		default:
			return attrs, nil
		}
	}
}

// parseVis reads `pub`, `pub(crate)`, `pub(in path)` and the like.
func parseVis(c *Cursor) (string, error) {
	start := c.pos
	if _, ok := c.eatKeyword("pub"); !ok {
		return "", nil
	}

	if c.peekPunct("(") {
		if _, _, err := c.group("("); err != nil {
			return "", err
		}
	}

	return c.text(start, c.pos), nil
}
