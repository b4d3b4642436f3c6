package expand

import (
	"fmt"
	"strings"

	"spreadgen/internal/diagnostic"
	"spreadgen/internal/gen"
	"spreadgen/internal/syntax"
	"spreadgen/internal/token"
)

// Expander rewrites the invocations of one source text.
type Expander struct {
	gen       *gen.Generator
	names     map[string]gen.Macro
	maxRounds int
}

// NewExpander returns an Expander recognising names, which map invocation
// names to the forms they expand.
func NewExpander(g *gen.Generator, names map[string]gen.Macro, maxRounds int) *Expander {
	return &Expander{gen: g, names: names, maxRounds: maxRounds}
}

// Expand returns src with every invocation replaced by its expansion. When
// the diagnostics hold an error the returned text is src unchanged.
func (x *Expander) Expand(filename, src string) (string, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	toks, err := token.Lex(filename, src)
	if err != nil {
		diags.AddErr(err)
		return src, diags
	}

	suggestMacros(toks, x.names, diags)

	// every invocation is checked against the text as written
	first := make(map[int]string)

	for _, inv := range scan(toks, x.names, true) {
		out, err := x.expandOne(src, toks, inv)
		if err != nil {
			diags.AddErr(err)
			continue
		}

		first[inv.Start] = out
	}

	if diags.HasErrors() {
		return src, diags
	}

	out := src

	for round := 0; ; round++ {
		invs := scan(toks, x.names, false)
		if len(invs) == 0 {
			return out, diags
		}

		if round == x.maxRounds {
			diags.AddError(diagnostic.CodeExpansionDepth,
				fmt.Sprintf("`%s!` is still present after %d rounds of expansion", invs[0].Name, x.maxRounds),
				invs[0].Span, "raise max_rounds or reduce the nesting of invocations")

			return src, diags
		}

		texts := make([]string, len(invs))

		for i, inv := range invs {
			if text, ok := first[inv.Start]; ok && round == 0 {
				texts[i] = text
				continue
			}

			if texts[i], err = x.expandOne(out, toks, inv); err != nil {
				diags.AddErr(err)
				return src, diags
			}
		}

		out = splice(out, invs, texts)

		if toks, err = token.Lex(filename, out); err != nil {
			diags.AddErr(err)
			return src, diags
		}
	}
}

// Evaluation is the outcome of expanding one invocation body.
type Evaluation struct {
	Output      string
	Diagnostics *diagnostic.Diagnostics
	// Sources maps every filename a diagnostic can point into to its text:
	// the body, and the first expansion for nested invocations.
	Sources map[string]string
}

// ExpandInvocation expands a single invocation body, as `eval` does.
// Invocations left in the expansion are expanded too; their diagnostics
// point into the expansion, filed under "expansion of <filename>".
func (x *Expander) ExpandInvocation(m gen.Macro, filename, body string) *Evaluation {
	ev := &Evaluation{
		Diagnostics: &diagnostic.Diagnostics{},
		Sources:     map[string]string{filename: body},
	}

	out, err := x.gen.ExpandString(m, filename, body)
	if err != nil {
		ev.Diagnostics.AddErr(err)
		return ev
	}

	expanded := "expansion of " + filename
	ev.Sources[expanded] = out

	out, nested := x.Expand(expanded, out)
	ev.Diagnostics.Merge(*nested)
	ev.Output = out

	return ev
}

// Generator returns the generator invocations are rendered with.
func (x *Expander) Generator() *gen.Generator {
	return x.gen
}

// Names returns the recognised invocation names.
func (x *Expander) Names() map[string]gen.Macro {
	return x.names
}

func (x *Expander) expandOne(src string, toks []token.Token, inv Invocation) (string, error) {
	closing := inv.Close(toks)
	c := syntax.NewCursor(src, toks, inv.Open+1, closing, toks[closing].Span)

	out, err := x.gen.Expand(inv.Macro, c)
	if err != nil {
		return "", err
	}

	// blocks parse anywhere, a bare struct literal needs parentheses
	if inv.Condition && !strings.HasPrefix(out, "{") {
		out = "(" + out + ")"
	}

	return out, nil
}
