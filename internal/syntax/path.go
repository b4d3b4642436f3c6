package syntax

import (
	"strings"

	"spreadgen/internal/diagnostic"
	"spreadgen/internal/token"
)

// FnPath is the callable path of fn_struct!, e.g. `Vec::push`,
// `<T as Trait>::method` or `::std::mem::swap`.
type FnPath struct {
	Text string
	Span token.Span
	// QSelf is `T` in `<T as Trait>::method`.
	QSelf string
	// Global is set for paths starting with `::`.
	Global bool
	// Segments excludes the qualified self part; a turbofish stays attached
	// to its segment (`Vec::<u8>`).
	Segments []string
}

// ReceiverType returns the type a method receiver has when the path names a
// method: the qualified self type, else the path without its last segment.
// ok is false for a single-segment path.
func (p FnPath) ReceiverType() (string, bool) {
	if p.QSelf != "" {
		return p.QSelf, true
	}

	if len(p.Segments) < 2 {
		return "", false
	}

	ty := strings.Join(p.Segments[:len(p.Segments)-1], "::")
	if p.Global {
		ty = "::" + ty
	}

	return ty, true
}

// parseFnPath reads tokens up to the argument group `(`.
func parseFnPath(c *Cursor) (FnPath, error) {
	start := c.pos
	p := FnPath{}

	if open, ok := c.eatPunct("<"); ok {
		qstart, depth := c.pos, 1
		asIdx := -1

		for ; c.pos < c.end; c.pos = token.Next(c.toks, c.pos) {
			t := &c.toks[c.pos]

			if t.IsPunct("<") {
				depth++
			} else if t.IsPunct(">") {
				depth--
				if depth == 0 {
					break
				}
			} else if depth == 1 && t.IsIdent("as") && asIdx < 0 {
				asIdx = c.pos
			}
		}

		if c.pos >= c.end {
			return p, NewError(diagnostic.CodeSyntax, open.Span, "unclosed qualified path, expected `>`")
		}

		qend := c.pos
		if asIdx >= 0 {
			qend = asIdx
		}

		p.QSelf = c.text(qstart, qend)
		c.next()

		if _, err := c.expectPunct("::"); err != nil {
			return p, err
		}
	} else if _, ok := c.eatPunct("::"); ok {
		p.Global = true
	}

	segStart := c.pos

	for c.pos < c.end && !c.peekPunct("(") {
		if c.peekPunct("::") {
			if next := c.peekN(1); next != nil && next.IsPunct("<") {
				c.pos = c.skipTurbofish(c.pos)
				continue
			}

			if c.pos == segStart {
				return p, c.unexpected("path segment")
			}

			p.Segments = append(p.Segments, c.text(segStart, c.pos))
			c.next()
			segStart = c.pos

			continue
		}

		c.pos = token.Next(c.toks, c.pos)
	}

	if c.pos == segStart {
		return p, c.unexpected("function path")
	}

	p.Segments = append(p.Segments, c.text(segStart, c.pos))
	p.Text = c.text(start, c.pos)
	p.Span = c.spanOf(start, c.pos)

	return p, nil
}
