package diagnostic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spreadgen/internal/token"
)

func render(t *testing.T, d Diagnostic, src string) string {
	t.Helper()

	var b strings.Builder
	require.NoError(t, Renderer{}.Render(&b, d, src))

	return b.String()
}

func TestRenderer_Render(t *testing.T) {
	src := "fn f() {\n    spread!(Foo { a, ..rest, })\n}\n"

	d := Diagnostic{
		Severity:    DiagnosticError,
		Code:        CodeFinalSpread,
		Message:     "`..remaining` must be the last item and cannot be followed by a comma",
		Span:        span("lib.rs.in", 36, 2, 28, 1),
		Suggestions: []string{"remove the trailing comma"},
	}

	want := strings.Join([]string{
		"error[final-spread]: `..remaining` must be the last item and cannot be followed by a comma",
		" --> lib.rs.in:2:28",
		"  |",
		"2 |     spread!(Foo { a, ..rest, })",
		"  |                            ^",
		"  = help: remove the trailing comma",
		"",
	}, "\n")

	assert.Equal(t, want, render(t, d, src))
}

func TestRenderer_Tabs(t *testing.T) {
	src := "\tslet!(x y)"

	d := Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeSyntax,
		Message:  "expected `,`, found identifier `y`",
		Span:     span("t.rs", 8, 1, 9, 1),
	}

	out := render(t, d, src)
	assert.Contains(t, out, "1 | \tslet!(x y)\n")
	assert.Contains(t, out, "  | \t       ^\n")
}

func TestRenderer_MultiLineSpan(t *testing.T) {
	src := "clone!(\n  a,\n)"

	d := Diagnostic{
		Severity: DiagnosticWarning,
		Code:     CodeRustfmt,
		Message:  "unformatted",
		Span: token.Span{
			Start: token.Pos{Filename: "m.rs", Offset: 0, Line: 1, Column: 1},
			End:   token.Pos{Filename: "m.rs", Offset: 13, Line: 3, Column: 2},
		},
	}

	assert.Contains(t, render(t, d, src), "  | ^^^^^^^\n")
}

func TestRenderer_NoSpan(t *testing.T) {
	d := Diagnostic{
		Severity:    DiagnosticError,
		Code:        CodeConfig,
		Message:     `unknown rust edition "2022"`,
		Suggestions: []string{"2021"},
	}

	assert.Equal(t, "error[config]: unknown rust edition \"2022\"\n  = help: 2021\n", render(t, d, ""))
}

func TestRenderer_RenderAll(t *testing.T) {
	var ds Diagnostics
	ds.AddInfo(CodeUnknownMacro, "second", span("a.rs", 5, 1, 6, 1))
	ds.AddError(CodeSyntax, "first", span("a.rs", 0, 1, 1, 1))

	var b strings.Builder
	require.NoError(t, Renderer{}.RenderAll(&b, ds, "abcdefg"))

	out := b.String()
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))

	styled := Renderer{Styled: true}
	assert.Contains(t, styled.severity(Diagnostic{Severity: DiagnosticError, Code: CodeSyntax}), "error[syntax]")
}

func TestRenderer_RenderSources(t *testing.T) {
	var ds Diagnostics
	ds.AddError(CodeSyntax, "in body", span("<eval>", 4, 1, 5, 1))
	ds.AddError(CodeDuplicateField, "in expansion", span("expansion of <eval>", 5, 2, 1, 1))
	ds.AddError(CodeInternal, "elsewhere", span("other.rs", 0, 1, 1, 1))

	var b strings.Builder
	require.NoError(t, Renderer{}.RenderSources(&b, ds, map[string]string{
		"<eval>":              "abc xyz",
		"expansion of <eval>": "line\nsecond",
	}))

	out := b.String()
	assert.Contains(t, out, "1 | abc xyz\n  |     ^\n")
	assert.Contains(t, out, "2 | second\n  | ^\n")
	assert.Contains(t, out, "error[internal]: elsewhere\n --> other.rs:1:1\n")
	assert.NotContains(t, out, "other.rs:1:1\n  |")
}
