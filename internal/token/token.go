package token

import "fmt"

// Pos is a position inside a source file. Line and Column start at 1,
// Offset is a byte offset starting at 0.
type Pos struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// String returns "file:line:col", omitting the file when unknown.
func (p Pos) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}

	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Span is the half-open source range [Start, End).
type Span struct {
	Start Pos
	End   Pos
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	out := s
	if other.Start.Offset < out.Start.Offset {
		out.Start = other.Start
	}

	if other.End.Offset > out.End.Offset {
		out.End = other.End
	}

	return out
}

// String returns the start position of the span.
func (s Span) String() string {
	return s.Start.String()
}

// Token is a single lexical token.
type Token struct {
	Kind Kind
	Text string
	Span Span
	// Match is the index of the matching delimiter for ( ) [ ] { } and -1 otherwise.
	Match int
}

// IsPunct reports whether t is the punctuation p.
func (t Token) IsPunct(p string) bool {
	return t.Kind == KindPunct && t.Text == p
}

// IsIdent reports whether t is the identifier (or keyword) name.
func (t Token) IsIdent(name string) bool {
	return t.Kind == KindIdent && t.Text == name
}

// IsOpen reports whether t opens a delimited group.
func (t Token) IsOpen() bool {
	return t.Kind == KindPunct && (t.Text == "(" || t.Text == "[" || t.Text == "{")
}

// IsClose reports whether t closes a delimited group.
func (t Token) IsClose() bool {
	return t.Kind == KindPunct && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

// Describe renders the token for use in an error message.
func (t Token) Describe() string {
	switch t.Kind {
	case KindIdent:
		if IsKeyword(t.Text) {
			return "keyword `" + t.Text + "`"
		}

		return "identifier `" + t.Text + "`"
	case KindLiteral:
		return "literal " + t.Text
	case KindLifetime:
		return "lifetime `" + t.Text + "`"
	case KindDocComment:
		return "doc comment"
	default:
		return "`" + t.Text + "`"
	}
}

// Error is a lexical error, such as an unbalanced delimiter.
type Error struct {
	Span Span
	Msg  string
}

func (e *Error) Error() string {
	return e.Span.Start.String() + ": " + e.Msg
}

// DiagnosticMessage returns the message without the position prefix.
func (e *Error) DiagnosticMessage() string { return e.Msg }

// DiagnosticCode implements the diagnostic error contract. The value must
// stay equal to diagnostic.CodeUnbalanced.
func (e *Error) DiagnosticCode() string { return "unbalanced" }

// DiagnosticSpan implements the diagnostic error contract.
func (e *Error) DiagnosticSpan() Span { return e.Span }

// DiagnosticHelp implements the diagnostic error contract.
func (e *Error) DiagnosticHelp() []string { return nil }

// keywords lists Rust strict and reserved keywords that cannot name a field.
var keywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "crate": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "abstract": true, "become": true,
	"box": true, "do": true, "final": true, "macro": true, "override": true,
	"priv": true, "typeof": true, "unsized": true, "virtual": true, "yield": true,
	"try": true,
}

// IsKeyword reports whether name is a reserved Rust keyword.
func IsKeyword(name string) bool {
	return keywords[name]
}
