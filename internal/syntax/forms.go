package syntax

import (
	"spreadgen/internal/token"
)

// StructLit is the body of spread!: `Path { items }`.
type StructLit struct {
	Path  Expr
	Items *ItemList
}

// ParseSpread reads `Path { items [, ..rest] }`.
func ParseSpread(c *Cursor) (*StructLit, error) {
	start, depth := c.pos, 0

	for c.pos < c.end {
		t := c.peek()
		if depth == 0 && t.IsPunct("{") {
			break
		}

		switch {
		case t.IsPunct("<"):
			depth++
		case t.IsPunct(">") && depth > 0:
			depth--
		}

		c.pos = token.Next(c.toks, c.pos)
	}

	if c.pos == start {
		return nil, c.unexpected("struct path")
	}

	lit := &StructLit{Path: Expr{Text: c.text(start, c.pos), Span: c.spanOf(start, c.pos), Atomic: true}}

	body, _, err := c.group("{")
	if err != nil {
		return nil, err
	}

	lit.Items, err = parseItemList(body, listOptions{macro: "`spread!`", allowFinal: true, unique: true})
	if err != nil {
		return nil, err
	}

	if err := c.expectEOF(); err != nil {
		return nil, err
	}

	return lit, nil
}

// ParseAnon reads the items of anon!.
func ParseAnon(c *Cursor) (*ItemList, error) {
	return parseItemList(c, listOptions{macro: "`anon!`", unique: true})
}

// ParseSlet reads the items of slet!, either bare or wrapped in one `{...}`.
func ParseSlet(c *Cursor) (*ItemList, error) {
	c = unwrapBraces(c)

	return parseItemList(c, listOptions{macro: "`slet!`", allowMut: true, nonEmpty: true})
}

// ParseClone reads `[mut] name, ...` for clone!. An empty list is allowed.
func ParseClone(c *Cursor) ([]*Field, error) {
	var fields []*Field

	for !c.EOF() {
		f := &Field{}

		if t, ok := c.eatKeyword("mut"); ok {
			f.Mut, f.MutSpan = true, t.Span
		}

		name, err := c.parseIdent(false)
		if err != nil {
			return nil, err
		}

		f.Name = name
		f.Modifier = Modifier{Kind: ModifierClone, Span: name.Span}
		fields = append(fields, f)

		if c.EOF() {
			break
		}

		if _, err := c.expectPunct(","); err != nil {
			return nil, err
		}
	}

	return fields, nil
}

// unwrapBraces returns a cursor inside the group when the whole window is a
// single `{...}` group.
func unwrapBraces(c *Cursor) *Cursor {
	if !c.peekPunct("{") || c.toks[c.pos].Match != c.end-1 {
		return c
	}

	inner, _, err := c.group("{")
	if err != nil {
		return c
	}

	return inner
}
