package syntax

import (
	"fmt"

	"spreadgen/internal/token"
)

// Error is a grammar, semantic or generation error tied to a source span.
type Error struct {
	Code string
	Span token.Span
	Msg  string
	Help []string
}

// NewError returns an *Error with a formatted message.
func NewError(code string, span token.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: span, Msg: fmt.Sprintf(format, args...)}
}

// WithHelp appends help lines and returns e.
func (e *Error) WithHelp(help ...string) *Error {
	e.Help = append(e.Help, help...)
	return e
}

func (e *Error) Error() string {
	return e.Span.Start.String() + ": " + e.Msg
}

// DiagnosticMessage returns the message without the position prefix.
func (e *Error) DiagnosticMessage() string { return e.Msg }

// DiagnosticCode implements diagnostic.Coded.
func (e *Error) DiagnosticCode() string { return e.Code }

// DiagnosticSpan implements diagnostic.Coded.
func (e *Error) DiagnosticSpan() token.Span { return e.Span }

// DiagnosticHelp implements diagnostic.Coded.
func (e *Error) DiagnosticHelp() []string { return e.Help }
