package diagnostic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"spreadgen/internal/common"
	"spreadgen/internal/token"
)

// Diagnostics holds all diagnostic information for one source file.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Span locates the diagnostic in the source. Zero when not tied to source.
	Span token.Span
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add files d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, span token.Span, suggestions ...string) {
	d.Add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Span: span, Suggestions: suggestions})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, span token.Span, suggestions ...string) {
	d.Add(Diagnostic{Severity: DiagnosticWarning, Code: code, Message: message, Span: span, Suggestions: suggestions})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, span token.Span, suggestions ...string) {
	d.Add(Diagnostic{Severity: DiagnosticInfo, Code: code, Message: message, Span: span, Suggestions: suggestions})
}

// AddErr converts err with FromError and adds it.
func (d *Diagnostics) AddErr(err error) {
	if err == nil {
		return
	}

	d.Add(FromError(err))
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Len returns the number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every diagnostic ordered by source position, errors first on ties.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].Span.Start, all[j].Span.Start
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}

		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}

		return all[i].Severity > all[j].Severity
	})

	return all
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns "file:line:col: severity[code]: message".
func (d Diagnostic) String() string {
	head := d.Severity.String()
	if d.Code != "" {
		head = fmt.Sprintf("%s[%s]", head, d.Code)
	}

	msg := head + ": " + d.Message
	if d.Span.Start.Line > 0 {
		msg = d.Span.Start.String() + ": " + msg
	}

	return msg
}
