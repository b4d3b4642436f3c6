package syntax

import (
	"spreadgen/internal/common"
	"spreadgen/internal/diagnostic"
	"spreadgen/internal/token"
)

// AssertFieldsEq is either `left, right, [a, b] [, extra...]` (Right and
// Fields set) or `left, { anon items } [, extra...]` (Anon set).
type AssertFieldsEq struct {
	Left   Expr
	Right  *Expr
	Fields []Ident
	Anon   *ItemList
	// Extra is forwarded to the assert macro after the two sides, without
	// the separating comma. Empty when absent.
	Extra string
}

// FieldNames returns the compared fields in order.
func (a *AssertFieldsEq) FieldNames() []string {
	if a.Anon != nil {
		return a.Anon.FieldNames()
	}

	return common.Map(a.Fields, func(i Ident) string { return i.Name })
}

// ParseAssertFieldsEq reads the body of assert_fields_eq!.
func ParseAssertFieldsEq(c *Cursor) (*AssertFieldsEq, error) {
	left, err := c.parseExpr("left expression", ",")
	if err != nil {
		return nil, err
	}

	if _, err := c.expectPunct(","); err != nil {
		return nil, err
	}

	a := &AssertFieldsEq{Left: left}

	if c.peekPunct("{") {
		inner, _, err := c.group("{")
		if err != nil {
			return nil, err
		}

		a.Anon, err = parseItemList(inner, listOptions{macro: "`assert_fields_eq!`", nonEmpty: true, unique: true})
		if err != nil {
			return nil, err
		}
	} else {
		right, err := c.parseExpr("right expression or `{`", ",")
		if err != nil {
			return nil, err
		}

		a.Right = &right

		if _, err := c.expectPunct(","); err != nil {
			return nil, err
		}

		if a.Fields, err = parseFieldNames(c); err != nil {
			return nil, err
		}
	}

	if !c.EOF() {
		if _, err := c.expectPunct(","); err != nil {
			return nil, err
		}

		a.Extra = c.Rest()
	}

	return a, nil
}

// parseFieldNames reads a non-empty `[a, b, ...]` list of distinct names.
func parseFieldNames(c *Cursor) ([]Ident, error) {
	inner, span, err := c.group("[")
	if err != nil {
		return nil, err
	}

	var names []Ident

	seen := map[string]token.Span{}

	for !inner.EOF() {
		name, err := inner.parseIdent(false)
		if err != nil {
			return nil, err
		}

		if first, dup := seen[name.Name]; dup {
			return nil, duplicateField(name, first)
		}

		seen[name.Name] = name.Span
		names = append(names, name)

		if inner.EOF() {
			break
		}

		if _, err := inner.expectPunct(","); err != nil {
			return nil, err
		}
	}

	if common.IsEmpty(names) {
		return nil, NewError(diagnostic.CodeEmptyList, span, "fields list cannot be empty")
	}

	return names, nil
}
