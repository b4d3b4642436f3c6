package syntax

import (
	"strings"

	"spreadgen/internal/diagnostic"
	"spreadgen/internal/token"
)

// GenericParamKind distinguishes lifetime, type and const parameters.
type GenericParamKind int

const (
	GenericLifetime GenericParamKind = iota
	GenericType
	GenericConst
)

// GenericParam is one parameter of a generics list, kept as text.
type GenericParam struct {
	Kind GenericParamKind
	Name string
	// Bounds is the text after `:` for lifetimes and types.
	Bounds string
	// ConstType is the type of a const parameter.
	ConstType string
	Default   string
}

// Generics is a generics list plus an optional where clause (without the
// `where` keyword).
type Generics struct {
	Params []GenericParam
	Where  string
}

// IsEmpty reports whether there are no parameters.
func (g Generics) IsEmpty() bool {
	return len(g.Params) == 0
}

// Decl renders the parameters as declared on a type, defaults included.
func (g Generics) Decl() string {
	return g.render(true, true)
}

// Impl renders the parameters for `impl<...>`, without defaults.
func (g Generics) Impl() string {
	return g.render(true, false)
}

// Args renders the parameters as type arguments, `<'a, T, N>`.
func (g Generics) Args() string {
	return g.render(false, false)
}

// WhereClause returns "where ..." or "".
func (g Generics) WhereClause() string {
	if g.Where == "" {
		return ""
	}

	return "where " + g.Where
}

func (g Generics) render(bounds, defaults bool) string {
	if g.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, len(g.Params))

	for _, p := range g.Params {
		var b strings.Builder

		if p.Kind == GenericConst && bounds {
			b.WriteString("const ")
		}

		b.WriteString(p.Name)

		if bounds {
			switch {
			case p.Kind == GenericConst:
				b.WriteString(": " + p.ConstType)
			case p.Bounds != "":
				b.WriteString(": " + p.Bounds)
			}
		}

		if defaults && p.Default != "" {
			b.WriteString(" = " + p.Default)
		}

		parts = append(parts, b.String())
	}

	return "<" + strings.Join(parts, ", ") + ">"
}

// parseGenerics reads an optional `<...>` parameter list.
func parseGenerics(c *Cursor) (Generics, error) {
	var g Generics

	open, ok := c.eatPunct("<")
	if !ok {
		return g, nil
	}

	// find the matching `>`; groups are opaque
	depth, closeIdx := 1, -1
	for i := c.pos; i < c.end && closeIdx < 0; i = token.Next(c.toks, i) {
		switch {
		case c.toks[i].IsPunct("<"):
			depth++
		case c.toks[i].IsPunct(">"):
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
	}

	if closeIdx < 0 {
		return g, NewError(diagnostic.CodeSyntax, open.Span, "unclosed generics list, expected `>`")
	}

	inner := NewCursor(c.src, c.toks, c.pos, closeIdx, c.toks[closeIdx].Span)
	c.pos = closeIdx + 1

	for !inner.EOF() {
		p, err := parseGenericParam(inner)
		if err != nil {
			return g, err
		}

		g.Params = append(g.Params, p)

		if inner.EOF() {
			break
		}

		if _, err := inner.expectPunct(","); err != nil {
			return g, err
		}
	}

	return g, nil
}

func parseGenericParam(c *Cursor) (GenericParam, error) {
	var p GenericParam

	if t := c.peek(); t != nil && t.Kind == token.KindLifetime {
		c.next()
		p.Kind, p.Name = GenericLifetime, t.Text

		if _, ok := c.eatPunct(":"); ok {
			bounds, err := c.scanType("lifetime bounds", ",")
			if err != nil {
				return p, err
			}

			p.Bounds = bounds.Text
		}

		return p, nil
	}

	if _, ok := c.eatKeyword("const"); ok {
		name, err := c.parseIdent(false)
		if err != nil {
			return p, err
		}

		if _, err := c.expectPunct(":"); err != nil {
			return p, err
		}

		ty, err := c.scanType("const parameter type", ",", "=")
		if err != nil {
			return p, err
		}

		p.Kind, p.Name, p.ConstType = GenericConst, name.Name, ty.Text

		return p, parseGenericDefault(c, &p)
	}

	name, err := c.parseIdent(false)
	if err != nil {
		return p, err
	}

	p.Kind, p.Name = GenericType, name.Name

	if _, ok := c.eatPunct(":"); ok {
		bounds, err := c.scanType("type bounds", ",", "=")
		if err != nil {
			return p, err
		}

		p.Bounds = bounds.Text
	}

	return p, parseGenericDefault(c, &p)
}

func parseGenericDefault(c *Cursor, p *GenericParam) error {
	if _, ok := c.eatPunct("="); !ok {
		return nil
	}

	def, err := c.scanType("default value", ",")
	if err != nil {
		return err
	}

	p.Default = def.Text

	return nil
}

// parseWhere reads `where ...` when present. The clause ends at the end of
// the window or at the first depth-zero token for which stop returns true.
func parseWhere(c *Cursor, stop func(c *Cursor, i int) bool) (string, error) {
	kw, ok := c.eatKeyword("where")
	if !ok {
		return "", nil
	}

	start, depth := c.pos, 0

	for ; c.pos < c.end; c.pos = token.Next(c.toks, c.pos) {
		t := &c.toks[c.pos]
		if depth == 0 && stop(c, c.pos) {
			break
		}

		switch {
		case t.IsPunct("<"):
			depth++
		case t.IsPunct(">") && depth > 0:
			depth--
		}
	}

	text := strings.TrimSuffix(strings.TrimSpace(c.text(start, c.pos)), ",")
	if text == "" {
		return "", NewError(diagnostic.CodeSyntax, kw.Span, "empty `where` clause")
	}

	return text, nil
}

// stopAtFor ends a struct where clause at the `for` introducing the call
// generics: a `for` followed by `fn` or `where`, possibly after `<...>`.
// A higher-ranked bound `for<'a> Fn(...)` does not stop it.
func stopAtFor(c *Cursor, i int) bool {
	if !c.toks[i].IsIdent("for") {
		return false
	}

	j := i + 1
	if j < c.end && c.toks[j].IsPunct("<") {
		depth := 0
		for ; j < c.end; j = token.Next(c.toks, j) {
			if c.toks[j].IsPunct("<") {
				depth++
			} else if c.toks[j].IsPunct(">") {
				depth--
				if depth == 0 {
					j++
					break
				}
			}
		}
	}

	return j < c.end && (c.toks[j].IsIdent("fn") || c.toks[j].IsIdent("where"))
}

// stopAtFn ends a call where clause at the `fn` keyword.
func stopAtFn(c *Cursor, i int) bool {
	return c.toks[i].IsIdent("fn")
}
