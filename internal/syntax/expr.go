package syntax

import (
	"slices"
	"strings"

	"spreadgen/internal/diagnostic"
	"spreadgen/internal/token"
)

// Ident is an identifier with its span. Name keeps a raw prefix (`r#type`).
type Ident struct {
	Name string
	Span token.Span
}

// Bare returns the name without a raw-identifier prefix.
func (i Ident) Bare() string {
	return strings.TrimPrefix(i.Name, "r#")
}

func (i Ident) String() string {
	return i.Name
}

// parseIdent reads a non-keyword identifier. With allowSelf the `self`
// keyword is accepted as well.
func (c *Cursor) parseIdent(allowSelf bool) (Ident, error) {
	t := c.peek()
	if t == nil || t.Kind != token.KindIdent || (token.IsKeyword(t.Text) && !(allowSelf && t.Text == "self")) {
		return Ident{}, c.unexpected("identifier")
	}

	c.next()

	return Ident{Name: t.Text, Span: t.Span}, nil
}

// Expr is an opaque Rust expression or type, kept as source text.
type Expr struct {
	Text string
	Span token.Span
	// Atomic is false when a postfix or prefix operator applied to Text
	// would bind to only part of it, e.g. `a + b` or `x as u8`.
	Atomic bool
}

// Var is the expression naming the variable (or field access) text.
func Var(text string, span token.Span) Expr {
	return Expr{Text: text, Span: span, Atomic: true}
}

// Paren returns Text, parenthesised unless the expression is atomic.
func (e Expr) Paren() string {
	if e.Atomic {
		return e.Text
	}

	return "(" + e.Text + ")"
}

func (e Expr) String() string {
	return e.Text
}

// prefixOps start an expression that is never atomic.
var prefixOps = []string{"&", "&&", "*", "-", "!", "..", "..="}

// atomicKeywords may appear in an atomic expression.
var atomicKeywords = map[string]bool{
	"self": true, "Self": true, "super": true, "crate": true,
	"await": true, "true": true, "false": true,
}

// parseExpr reads an expression up to the first top-level punctuation in
// stops (or the end of the window). Delimited groups are opaque, a leading
// closure parameter list `|a, b|` may contain commas, and generic arguments
// are skipped as a whole: a turbofish `::<...>`, a qualified path
// `<T as Trait>::f` and the type of a cast `x as Pair<A, B>`.
func (c *Cursor) parseExpr(what string, stops ...string) (Expr, error) {
	start := c.pos
	i := c.pos
	closure := false

	j := i
	if j < c.end && c.toks[j].IsIdent("move") {
		j++
	}

	if j < c.end && c.toks[j].IsPunct("||") {
		closure, i = true, j+1
	} else if j < c.end && c.toks[j].IsPunct("|") {
		k := j + 1
		for k < c.end && !c.toks[k].IsPunct("|") {
			k = token.Next(c.toks, k)
		}

		if k < c.end {
			closure, i = true, k+1
		}
	}

	prev := -1
	inType := false

	for i < c.end {
		t := &c.toks[i]
		if t.Kind == token.KindPunct && slices.Contains(stops, t.Text) {
			break
		}

		next := c.skipTurbofish(i)

		switch {
		case t.IsPunct("<") && (inType || c.startsOperand(prev)):
			next = c.skipAngles(i)
		case t.IsIdent("as"):
			inType = true
		case inType && !continuesType(t):
			inType = false
		}

		prev, i = i, next
	}

	if i == start {
		return Expr{}, c.unexpected(what)
	}

	c.pos = i

	return Expr{
		Text:   c.text(start, i),
		Span:   c.spanOf(start, i),
		Atomic: !closure && c.isAtomic(start, i),
	}, nil
}

// skipTurbofish returns the index after the token at i, stepping over a
// whole group or a whole `::<...>`.
func (c *Cursor) skipTurbofish(i int) int {
	if !c.toks[i].IsPunct("::") || i+1 >= c.end || !c.toks[i+1].IsPunct("<") {
		return token.Next(c.toks, i)
	}

	return c.skipAngles(i + 1)
}

// skipAngles returns the index after the `>` closing the `<` at i. An
// unclosed `<` is stepped over alone.
func (c *Cursor) skipAngles(i int) int {
	depth := 0
	for k := i; k < c.end; k = token.Next(c.toks, k) {
		switch {
		case c.toks[k].IsPunct("<"):
			depth++
		case c.toks[k].IsPunct(">"):
			depth--
			if depth == 0 {
				return k + 1
			}
		}
	}

	return token.Next(c.toks, i)
}

// startsOperand reports whether a token following prev begins an operand,
// where `<` opens a qualified path rather than a comparison. prev is -1 at
// the start of the expression. A group index stands for the whole group.
func (c *Cursor) startsOperand(prev int) bool {
	if prev < 0 {
		return true
	}

	t := &c.toks[prev]

	return t.Kind == token.KindPunct && !t.IsOpen() && !t.IsClose() && !t.IsPunct("?")
}

// continuesType reports whether t can be part of the type after `as`.
func continuesType(t *token.Token) bool {
	switch t.Kind {
	case token.KindIdent, token.KindLifetime:
		return true
	case token.KindPunct:
		return t.IsPunct("::") || t.IsPunct("&") || t.IsPunct("*") || t.IsOpen()
	default:
		return false
	}
}

func (c *Cursor) isAtomic(from, to int) bool {
	if c.toks[from].Kind == token.KindPunct && slices.Contains(prefixOps, c.toks[from].Text) {
		return false
	}

	i := from
	if c.toks[from].IsPunct("<") {
		i = c.skipAngles(from)
	}

	for ; i < to; i = c.skipTurbofish(i) {
		t := &c.toks[i]

		switch t.Kind {
		case token.KindIdent:
			if token.IsKeyword(t.Text) && !atomicKeywords[t.Text] {
				return false
			}
		case token.KindPunct:
			if t.IsOpen() || t.IsPunct(".") || t.IsPunct("::") || t.IsPunct("?") {
				continue
			}

			// macro call `name!(...)`
			if t.IsPunct("!") && i > from && i+1 < to && c.toks[i+1].IsOpen() {
				continue
			}

			return false
		case token.KindLiteral, token.KindLifetime, token.KindDocComment:
		}
	}

	return true
}

// scanType reads a type (or any angle-bracketed text) up to the first
// punctuation in stops found outside `<...>` and delimited groups.
func (c *Cursor) scanType(what string, stops ...string) (Expr, error) {
	start := c.pos
	depth := 0

	for i := c.pos; i < c.end; i = token.Next(c.toks, i) {
		t := &c.toks[i]

		if depth == 0 && t.Kind == token.KindPunct && slices.Contains(stops, t.Text) {
			break
		}

		switch {
		case t.IsPunct("<"):
			depth++
		case t.IsPunct(">") && depth > 0:
			depth--
		}

		c.pos = token.Next(c.toks, i)
	}

	if c.pos == start {
		return Expr{}, c.unexpected(what)
	}

	return Expr{Text: c.text(start, c.pos), Span: c.spanOf(start, c.pos), Atomic: true}, nil
}

func duplicateField(name Ident, first token.Span) *Error {
	return NewError(diagnostic.CodeDuplicateField, name.Span,
		"field `%s` is listed more than once", name.Name).
		WithHelp("first listed at " + first.Start.String())
}
