package diagnostic

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer prints diagnostics with a source excerpt:
//
//	error[final-spread]: `..remaining` must be the last item
//	 --> src/lib.rs.in:3:9
//	  |
//	3 |     ..rest,
//	  |     ^^^^^^
//	  = help: remove the trailing comma
type Renderer struct {
	// Styled enables terminal colors.
	Styled bool
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD93D")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCBFF")).Bold(true)
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func (r Renderer) style(s lipgloss.Style, text string) string {
	if !r.Styled {
		return text
	}

	return s.Render(text)
}

func (r Renderer) severity(d Diagnostic) string {
	head := d.Severity.String()
	if d.Code != "" {
		head += "[" + d.Code + "]"
	}

	switch d.Severity {
	case DiagnosticError:
		return r.style(errorStyle, head)
	case DiagnosticWarning:
		return r.style(warningStyle, head)
	default:
		return r.style(infoStyle, head)
	}
}

// Render writes d to w. src is the text the span points into; when it is
// empty or the span is unset only the header line is printed.
func (r Renderer) Render(w io.Writer, d Diagnostic, src string) error {
	var b strings.Builder

	b.WriteString(r.severity(d))
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteByte('\n')

	start := d.Span.Start
	if start.Line > 0 {
		line, lineStart := sourceLine(src, start.Offset)
		num := strconv.Itoa(start.Line)
		pad := strings.Repeat(" ", len(num))
		bar := r.style(gutterStyle, "|")

		fmt.Fprintf(&b, "%s%s %s\n", pad, r.style(gutterStyle, "-->"), start)

		if line != "" || src != "" {
			fmt.Fprintf(&b, "%s %s\n", pad, bar)
			fmt.Fprintf(&b, "%s %s %s\n", r.style(gutterStyle, num), bar, line)
			fmt.Fprintf(&b, "%s %s %s%s\n", pad, bar,
				caretIndent(line, start.Offset-lineStart),
				r.severityCarets(d, caretWidth(d, line, start.Offset-lineStart)))
		}

		for _, s := range d.Suggestions {
			fmt.Fprintf(&b, "%s %s help: %s\n", pad, r.style(gutterStyle, "="), s)
		}
	} else {
		for _, s := range d.Suggestions {
			fmt.Fprintf(&b, "  = help: %s\n", s)
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// RenderAll writes every diagnostic in ds, ordered by position.
func (r Renderer) RenderAll(w io.Writer, ds Diagnostics, src string) error {
	for _, d := range ds.All() {
		if err := r.Render(w, d, src); err != nil {
			return err
		}
	}

	return nil
}

// RenderSources is RenderAll for diagnostics spread over several texts;
// each one is drawn against sources[filename]. A diagnostic whose file is
// missing from sources is printed without an excerpt.
func (r Renderer) RenderSources(w io.Writer, ds Diagnostics, sources map[string]string) error {
	for _, d := range ds.All() {
		if err := r.Render(w, d, sources[d.Span.Start.Filename]); err != nil {
			return err
		}
	}

	return nil
}

func (r Renderer) severityCarets(d Diagnostic, width int) string {
	carets := strings.Repeat("^", width)

	switch d.Severity {
	case DiagnosticError:
		return r.style(errorStyle, carets)
	case DiagnosticWarning:
		return r.style(warningStyle, carets)
	default:
		return r.style(infoStyle, carets)
	}
}

// sourceLine returns the line of src containing offset, without its
// newline, and the offset at which that line starts.
func sourceLine(src string, offset int) (string, int) {
	if offset > len(src) {
		offset = len(src)
	}

	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1

	lineEnd := strings.IndexByte(src[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(src)
	} else {
		lineEnd += offset
	}

	return strings.TrimRight(src[lineStart:lineEnd], "\r"), lineStart
}

// caretIndent reproduces the leading text before col, keeping tabs so the
// caret lines up in the terminal.
func caretIndent(line string, col int) string {
	if col > len(line) {
		col = len(line)
	}

	var b strings.Builder

	for _, r := range line[:col] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}

	return b.String()
}

func caretWidth(d Diagnostic, line string, col int) int {
	width := d.Span.End.Offset - d.Span.Start.Offset
	if d.Span.End.Line != d.Span.Start.Line {
		width = len(line) - col
	}

	return max(width, 1)
}
