package syntax

import (
	"fmt"
	"strings"

	"spreadgen/internal/common"
	"spreadgen/internal/diagnostic"
	"spreadgen/internal/match"
	"spreadgen/internal/token"
)

// SpreadItem is one entry of a field list: *Field, *SpreadList or *FinalSpread.
type SpreadItem interface {
	ItemSpan() token.Span
	spreadItem()
}

// Field is `[mut] [modifier] name [: value]`.
type Field struct {
	Mut      bool
	MutSpan  token.Span
	Modifier Modifier
	Name     Ident
	// Value is the explicit `: value`, nil when the field reads the
	// variable of the same name.
	Value *Expr
}

// Source returns the expression the field is built from.
func (f *Field) Source() Expr {
	if f.Value != nil {
		return *f.Value
	}

	return Var(f.Name.Name, f.Name.Span)
}

// Render returns the modifier applied to the field's source.
func (f *Field) Render() string {
	return f.Modifier.Apply(f.Source())
}

// ItemSpan implements SpreadItem.
func (f *Field) ItemSpan() token.Span {
	span := f.Name.Span
	if f.Mut {
		span = span.Join(f.MutSpan)
	}

	if f.Modifier.Kind != ModifierNone {
		span = span.Join(f.Modifier.Span)
	}

	if f.Value != nil {
		span = span.Join(f.Value.Span)
	}

	return span
}

func (*Field) spreadItem() {}

// SpreadList is `{ fields } in source`: a subset of fields read from one
// source expression, which is bound once to Binding.
type SpreadList struct {
	Fields []*Field
	Source Expr
	// Binding names the temporary holding Source. It is unique inside the
	// invocation because it starts with the list's position.
	Binding string
	Index   int
	Span    token.Span
}

// Member returns the expression reading f from the bound source.
func (l *SpreadList) Member(f *Field) Expr {
	return Var(l.Binding+"."+f.Name.Name, f.Name.Span)
}

// ItemSpan implements SpreadItem.
func (l *SpreadList) ItemSpan() token.Span { return l.Span }

func (*SpreadList) spreadItem() {}

// FinalSpread is the trailing `..source`.
type FinalSpread struct {
	DotDot token.Span
	Source Expr
}

// ItemSpan implements SpreadItem.
func (f *FinalSpread) ItemSpan() token.Span { return f.DotDot.Join(f.Source.Span) }

func (*FinalSpread) spreadItem() {}

// ItemList is a parsed top-level field list.
type ItemList struct {
	Items []SpreadItem
	Final *FinalSpread
}

// Fields returns every field, spread-list members included, in input order.
func (l *ItemList) Fields() []*Field {
	var out []*Field

	for _, item := range l.Items {
		switch it := item.(type) {
		case *Field:
			out = append(out, it)
		case *SpreadList:
			out = append(out, it.Fields...)
		}
	}

	return out
}

// FieldNames returns the names of Fields in first-seen order.
func (l *ItemList) FieldNames() []string {
	return common.Uniq(common.Map(l.Fields(), func(f *Field) string { return f.Name.Name }))
}

// Lists returns the spread lists in input order.
func (l *ItemList) Lists() []*SpreadList {
	var out []*SpreadList

	for _, item := range l.Items {
		if sl, ok := item.(*SpreadList); ok {
			out = append(out, sl)
		}
	}

	return out
}

// ParseField reads `[mut] [modifier] name [: value]`.
func ParseField(c *Cursor) (*Field, error) {
	f := &Field{}

	if t, ok := c.eatKeyword("mut"); ok {
		f.Mut, f.MutSpan = true, t.Span
	}

	m, err := parseModifier(c)
	if err != nil {
		return nil, err
	}

	f.Modifier = m

	if f.Name, err = c.parseIdent(false); err != nil {
		return nil, err
	}

	if _, ok := c.eatPunct(":"); ok {
		value, err := c.parseExpr("expression after `:`", ",")
		if err != nil {
			return nil, err
		}

		f.Value = &value
	}

	return f, nil
}

// ParseSpreadList reads `{ field, ... } in source`. index is the list's
// position inside the invocation and feeds the binding name.
func ParseSpreadList(c *Cursor, index int) (*SpreadList, error) {
	inner, braces, err := c.group("{")
	if err != nil {
		return nil, err
	}

	list := &SpreadList{Index: index}
	seen := map[string]token.Span{}

	for !inner.EOF() {
		f, err := ParseField(inner)
		if err != nil {
			return nil, err
		}

		if f.Value != nil {
			return nil, NewError(diagnostic.CodeSyntax, f.Value.Span,
				"a field read from a spread list cannot have an explicit value").
				WithHelp(fmt.Sprintf("move `%s: ...` out of the braces", f.Name.Name))
		}

		if first, dup := seen[f.Name.Name]; dup {
			return nil, duplicateField(f.Name, first)
		}

		seen[f.Name.Name] = f.Name.Span
		list.Fields = append(list.Fields, f)

		if inner.EOF() {
			break
		}

		if _, err := inner.expectPunct(","); err != nil {
			return nil, err
		}
	}

	if common.IsEmpty(list.Fields) {
		return nil, NewError(diagnostic.CodeEmptyList, braces, "spread list must name at least one field")
	}

	if _, ok := c.eatKeyword("in"); !ok {
		err := c.unexpected("`in`")
		if t := c.peek(); t != nil && t.Kind == token.KindIdent {
			if s := match.Suggest(t.Text, []string{"in"}, 1); !common.IsEmpty(s) {
				err.WithHelp("did you mean `in`?")
			}
		}

		return nil, err
	}

	if list.Source, err = c.parseExpr("source expression after `in`", ","); err != nil {
		return nil, err
	}

	names := common.Map(list.Fields, func(f *Field) string { return f.Name.Bare() })
	list.Binding = fmt.Sprintf("__%d_%s", index, strings.Join(names, "_"))
	list.Span = braces.Join(list.Source.Span)

	return list, nil
}

// ParseSpreadItem dispatches on the next token: `{` starts a spread list,
// `..` a final spread, anything that can start a field a field.
func ParseSpreadItem(c *Cursor, listIndex int) (SpreadItem, error) {
	la := c.lookahead()

	switch {
	case la.punct("{"):
		return ParseSpreadList(c, listIndex)
	case la.punct(".."):
		dotdot := c.next()

		src, err := c.parseExpr("expression after `..`", ",")
		if err != nil {
			return nil, err
		}

		return &FinalSpread{DotDot: dotdot.Span, Source: src}, nil
	case la.keyword("mut"), la.punct("&"), la.punct(">"), la.punct("+"), la.punct("["), la.ident():
		return ParseField(c)
	default:
		return nil, la.err()
	}
}

// listOptions tunes ParseItemList for one macro.
type listOptions struct {
	// macro names the form in error messages, e.g. "`anon!`".
	macro      string
	allowFinal bool
	allowMut   bool
	nonEmpty   bool
	// unique rejects a name listed twice anywhere in the list.
	unique bool
}

// parseItemList reads comma separated items until the end of the window.
func parseItemList(c *Cursor, opts listOptions) (*ItemList, error) {
	list := &ItemList{}
	seen := map[string]token.Span{}
	lists := 0
	start := c.span()

	for !c.EOF() {
		item, err := ParseSpreadItem(c, lists)
		if err != nil {
			return nil, err
		}

		switch it := item.(type) {
		case *FinalSpread:
			if !opts.allowFinal {
				return nil, NewError(diagnostic.CodeFinalSpread, it.DotDot,
					"`..remaining` is not allowed in %s", opts.macro)
			}

			if comma, ok := c.eatPunct(","); ok {
				return nil, NewError(diagnostic.CodeFinalSpread, comma.Span,
					"`..remaining` must be the last item and cannot be followed by a comma").
					WithHelp("remove the comma and move `..` after every other field")
			}

			list.Final = it
		case *SpreadList:
			lists++
		}

		list.Items = append(list.Items, item)

		for _, f := range itemFields(item) {
			if f.Mut && !opts.allowMut {
				return nil, NewError(diagnostic.CodeMutNotAllowed, f.MutSpan, "`mut` is not allowed in %s", opts.macro).
					WithHelp("`mut` only makes sense for `slet!` bindings")
			}

			if !opts.unique {
				continue
			}

			if first, dup := seen[f.Name.Name]; dup {
				return nil, duplicateField(f.Name, first)
			}

			seen[f.Name.Name] = f.Name.Span
		}

		if c.EOF() {
			break
		}

		if _, err := c.expectPunct(","); err != nil {
			return nil, err
		}
	}

	if opts.nonEmpty && common.IsEmpty(list.Items) {
		return nil, NewError(diagnostic.CodeEmptyList, start, "%s must have at least one field", opts.macro)
	}

	return list, nil
}

func itemFields(item SpreadItem) []*Field {
	switch it := item.(type) {
	case *Field:
		return []*Field{it}
	case *SpreadList:
		return it.Fields
	default:
		return nil
	}
}
