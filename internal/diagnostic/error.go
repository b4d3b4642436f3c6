package diagnostic

import (
	"errors"

	"spreadgen/internal/token"
)

// Coded is implemented by errors that know their code and source span.
type Coded interface {
	error
	DiagnosticCode() string
	DiagnosticSpan() token.Span
	DiagnosticHelp() []string
}

// FromError converts err into an error diagnostic. Errors that do not
// implement Coded anywhere in their chain get CodeInternal and no span.
func FromError(err error) Diagnostic {
	var coded Coded
	if errors.As(err, &coded) {
		return Diagnostic{
			Severity:    DiagnosticError,
			Code:        coded.DiagnosticCode(),
			Message:     message(coded),
			Span:        coded.DiagnosticSpan(),
			Suggestions: coded.DiagnosticHelp(),
		}
	}

	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeInternal,
		Message:  err.Error(),
	}
}

// message strips the position prefix coded errors put in Error().
func message(c Coded) string {
	if m, ok := c.(interface{ DiagnosticMessage() string }); ok {
		return m.DiagnosticMessage()
	}

	return c.Error()
}
