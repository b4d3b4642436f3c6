package syntax

import (
	"fmt"
	"strings"

	"spreadgen/internal/diagnostic"
	"spreadgen/internal/token"
)

// Cursor walks the window [pos, end) of a token slice. Sub-cursors created
// for delimited groups share the slice and the source text.
type Cursor struct {
	src  string
	toks []token.Token
	pos  int
	end  int
	// eof is the span reported when the window is exhausted, usually the
	// closing delimiter of the enclosing group.
	eof token.Span
}

// NewCursor returns a cursor over toks[lo:hi]. src is the text the token
// offsets point into.
func NewCursor(src string, toks []token.Token, lo, hi int, eof token.Span) *Cursor {
	return &Cursor{src: src, toks: toks, pos: lo, end: hi, eof: eof}
}

// NewStringCursor lexes src and returns a cursor over all of it.
func NewStringCursor(filename, src string) (*Cursor, error) {
	toks, err := token.Lex(filename, src)
	if err != nil {
		return nil, err
	}

	eof := token.Pos{Filename: filename, Line: 1, Column: 1}
	if len(toks) > 0 {
		eof = toks[len(toks)-1].Span.End
	}

	return NewCursor(src, toks, 0, len(toks), token.Span{Start: eof, End: eof}), nil
}

// EOF reports whether the window is exhausted.
func (c *Cursor) EOF() bool {
	return c.pos >= c.end
}

// Pos returns the index of the current token in the shared slice.
func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) peek() *token.Token {
	return c.peekN(0)
}

func (c *Cursor) peekN(n int) *token.Token {
	if c.pos+n >= c.end {
		return nil
	}

	return &c.toks[c.pos+n]
}

func (c *Cursor) next() token.Token {
	t := c.toks[c.pos]
	c.pos++

	return t
}

// span returns the span of the current token, or the end-of-input span.
func (c *Cursor) span() token.Span {
	if t := c.peek(); t != nil {
		return t.Span
	}

	return c.eof
}

// found describes the current token for "expected X, found Y" messages.
func (c *Cursor) found() string {
	if t := c.peek(); t != nil {
		return t.Describe()
	}

	return "end of input"
}

func (c *Cursor) peekPunct(p string) bool {
	t := c.peek()
	return t != nil && t.IsPunct(p)
}

func (c *Cursor) peekKeyword(k string) bool {
	t := c.peek()
	return t != nil && t.IsIdent(k)
}

func (c *Cursor) eatPunct(p string) (token.Token, bool) {
	if !c.peekPunct(p) {
		return token.Token{}, false
	}

	return c.next(), true
}

func (c *Cursor) eatKeyword(k string) (token.Token, bool) {
	if !c.peekKeyword(k) {
		return token.Token{}, false
	}

	return c.next(), true
}

func (c *Cursor) expectPunct(p string) (token.Token, error) {
	if t, ok := c.eatPunct(p); ok {
		return t, nil
	}

	return token.Token{}, c.unexpected(fmt.Sprintf("`%s`", p))
}

func (c *Cursor) expectKeyword(k string) (token.Token, error) {
	if t, ok := c.eatKeyword(k); ok {
		return t, nil
	}

	return token.Token{}, c.unexpected(fmt.Sprintf("`%s`", k))
}

// expectEOF fails when tokens remain in the window.
func (c *Cursor) expectEOF() error {
	if c.EOF() {
		return nil
	}

	return NewError(diagnostic.CodeSyntax, c.span(), "unexpected %s", c.found())
}

func (c *Cursor) unexpected(what string) *Error {
	return NewError(diagnostic.CodeSyntax, c.span(), "expected %s, found %s", what, c.found())
}

// group enters the delimited group opened by open at the cursor. It returns
// a cursor over the group's interior and the span covering both delimiters.
func (c *Cursor) group(open string) (*Cursor, token.Span, error) {
	if !c.peekPunct(open) {
		return nil, token.Span{}, c.unexpected(fmt.Sprintf("`%s`", open))
	}

	start := c.pos
	closeIdx := c.toks[start].Match
	inner := NewCursor(c.src, c.toks, start+1, closeIdx, c.toks[closeIdx].Span)
	c.pos = closeIdx + 1

	return inner, c.toks[start].Span.Join(c.toks[closeIdx].Span), nil
}

// text returns the source text of toks[from:to].
func (c *Cursor) text(from, to int) string {
	if from >= to {
		return ""
	}

	return c.src[c.toks[from].Span.Start.Offset:c.toks[to-1].Span.End.Offset]
}

// spanOf returns the span covering toks[from:to].
func (c *Cursor) spanOf(from, to int) token.Span {
	if from >= to {
		return c.span()
	}

	return c.toks[from].Span.Join(c.toks[to-1].Span)
}

// Rest returns the remaining source text and exhausts the cursor.
func (c *Cursor) Rest() string {
	out := strings.TrimSpace(c.text(c.pos, c.end))
	c.pos = c.end

	return out
}

// lookahead records every alternative tested at one position so a failed
// dispatch can list them all.
type lookahead struct {
	c        *Cursor
	expected []string
}

func (c *Cursor) lookahead() *lookahead {
	return &lookahead{c: c}
}

func (l *lookahead) punct(p string) bool {
	l.expected = append(l.expected, "`"+p+"`")
	return l.c.peekPunct(p)
}

func (l *lookahead) keyword(k string) bool {
	l.expected = append(l.expected, "`"+k+"`")
	return l.c.peekKeyword(k)
}

// ident matches any identifier-like token, keywords included. Keywords are
// rejected later, where the name is actually parsed.
func (l *lookahead) ident() bool {
	l.expected = append(l.expected, "identifier")
	t := l.c.peek()

	return t != nil && t.Kind == token.KindIdent
}

func (l *lookahead) err() *Error {
	if len(l.expected) == 1 {
		return l.c.unexpected(l.expected[0])
	}

	return l.c.unexpected("one of: " + strings.Join(l.expected, ", "))
}
