package syntax

import (
	"spreadgen/internal/diagnostic"
	"spreadgen/internal/token"
)

//go:generate go tool stringer -type=ModifierKind -trimprefix=Modifier -output=modifier_string.go

// ModifierKind is the transform applied to a field's source expression.
type ModifierKind int

const (
	ModifierNone         ModifierKind = iota // a
	ModifierRef                              // &a
	ModifierRefMut                           // &mut a
	ModifierInto                             // >a
	ModifierClone                            // +a
	ModifierCloneInto                        // +>a
	ModifierCustom                           // [path]a
	ModifierCustomRef                        // [path]&a
	ModifierCustomRefMut                     // [path]&mut a
)

// Modifier is a parsed field prefix. Path is set for the custom kinds.
type Modifier struct {
	Kind ModifierKind
	Path string
	Span token.Span
}

// Apply renders the modifier applied to src. Clone always comes before
// conversion in CloneInto.
func (m Modifier) Apply(src Expr) string {
	switch m.Kind {
	case ModifierRef:
		return "&" + src.Paren()
	case ModifierRefMut:
		return "&mut " + src.Paren()
	case ModifierInto:
		return src.Paren() + ".into()"
	case ModifierClone:
		return src.Paren() + ".clone()"
	case ModifierCloneInto:
		return src.Paren() + ".clone().into()"
	case ModifierCustom:
		return m.Path + "(" + src.Text + ")"
	case ModifierCustomRef:
		return m.Path + "(&" + src.Paren() + ")"
	case ModifierCustomRefMut:
		return m.Path + "(&mut " + src.Paren() + ")"
	default:
		return src.Text
	}
}

// AllowedOnReceiver reports whether the modifier may prefix `self`.
func (m Modifier) AllowedOnReceiver() bool {
	switch m.Kind {
	case ModifierNone, ModifierRef, ModifierRefMut:
		return true
	default:
		return false
	}
}

// Prefix returns the borrow prefix of Ref and RefMut, "" otherwise.
func (m Modifier) Prefix() string {
	switch m.Kind {
	case ModifierRef:
		return "&"
	case ModifierRefMut:
		return "&mut "
	default:
		return ""
	}
}

// parseModifier reads an optional modifier, trying `&`, `>`, `+`, `[path]`
// in that order. A bare identifier means no modifier and consumes nothing.
func parseModifier(c *Cursor) (Modifier, error) {
	la := c.lookahead()

	switch {
	case la.punct("&"):
		amp := c.next()
		return parseRefTail(c, amp.Span, ModifierRef, ModifierRefMut, "")
	case la.punct(">"):
		t := c.next()
		return Modifier{Kind: ModifierInto, Span: t.Span}, nil
	case la.punct("+"):
		plus := c.next()
		if into, ok := c.eatPunct(">"); ok {
			return Modifier{Kind: ModifierCloneInto, Span: plus.Span.Join(into.Span)}, nil
		}

		if err := expectIdentNext(c); err != nil {
			return Modifier{}, err
		}

		return Modifier{Kind: ModifierClone, Span: plus.Span}, nil
	case la.punct("["):
		inner, span, err := c.group("[")
		if err != nil {
			return Modifier{}, err
		}

		if inner.EOF() {
			return Modifier{}, NewError(diagnostic.CodeSyntax, span, "expected a function path inside `[...]`")
		}

		path := inner.Rest()

		if amp, ok := c.eatPunct("&"); ok {
			return parseRefTail(c, span.Join(amp.Span), ModifierCustomRef, ModifierCustomRefMut, path)
		}

		return Modifier{Kind: ModifierCustom, Path: path, Span: span}, nil
	case la.ident():
		return Modifier{Kind: ModifierNone, Span: c.span()}, nil
	default:
		return Modifier{}, la.err()
	}
}

// parseRefTail finishes `&` or `&mut` once the `&` is consumed.
func parseRefTail(c *Cursor, span token.Span, ref, refMut ModifierKind, path string) (Modifier, error) {
	if mut, ok := c.eatKeyword("mut"); ok {
		return Modifier{Kind: refMut, Path: path, Span: span.Join(mut.Span)}, nil
	}

	if err := expectIdentNext(c); err != nil {
		return Modifier{}, err
	}

	return Modifier{Kind: ref, Path: path, Span: span}, nil
}

// expectIdentNext checks that a modifier is followed by a name.
func expectIdentNext(c *Cursor) error {
	t := c.peek()
	if t != nil && t.Kind == token.KindIdent {
		return nil
	}

	return c.unexpected("identifier")
}
