package expand

import (
	"fmt"
	"maps"
	"slices"

	"spreadgen/internal/diagnostic"
	"spreadgen/internal/gen"
	"spreadgen/internal/match"
	"spreadgen/internal/token"
)

// minSuggestLen keeps short names such as `vec!` from matching `slet!`.
const minSuggestLen = 4

// Invocation is one macro call found in a token stream.
type Invocation struct {
	Macro gen.Macro
	// Name is the macro name as written, which may be an alias.
	Name string
	// Open indexes the opening delimiter of the body.
	Open int
	// Start and End are the byte offsets of the replaced text. It includes a
	// path qualifier and, for statement forms, a trailing `;`.
	Start, End int
	Span       token.Span
	// Condition is set when the invocation is part of an `if` or `while`
	// condition, a `match` scrutinee or a `for` iterable, where a bare
	// struct literal does not parse.
	Condition bool
}

// Close returns the index of the closing delimiter of the body.
func (inv Invocation) Close(toks []token.Token) int {
	return toks[inv.Open].Match
}

// scan returns the invocations in toks in source order. Without nested,
// the bodies of found invocations are not searched.
func scan(toks []token.Token, names map[string]gen.Macro, nested bool) []Invocation {
	var out []Invocation

	for i := 0; i < len(toks); i++ {
		inv, last, ok := invocationAt(toks, i, names)
		if !ok {
			continue
		}

		out = append(out, inv)

		if !nested {
			i = last
		}
	}

	return out
}

// invocationAt reports whether `name ! (...)` starts at i and returns the
// invocation with the index of its last token.
func invocationAt(toks []token.Token, i int, names map[string]gen.Macro) (Invocation, int, bool) {
	name, ok := macroCall(toks, i)
	if !ok {
		return Invocation{}, 0, false
	}

	m, ok := names[name]
	if !ok {
		return Invocation{}, 0, false
	}

	start := i
	for start >= 2 && toks[start-1].IsPunct("::") && toks[start-2].Kind == token.KindIdent {
		start -= 2
	}

	switch {
	case start >= 1 && toks[start-1].IsPunct("::"):
		start--
	case start >= 1 && toks[start-1].IsPunct("$") && toks[start].IsIdent("crate"):
		start--
	}

	last := toks[i+2].Match
	if m.Statement() && last+1 < len(toks) && toks[last+1].IsPunct(";") {
		last++
	}

	return Invocation{
		Macro: m,
		Name:  name,
		Open:  i + 2,
		Start: toks[start].Span.Start.Offset,
		End:   toks[last].Span.End.Offset,
		Span:  toks[start].Span.Join(toks[last].Span),

		Condition: inCondition(toks, start),
	}, last, true
}

// inCondition walks back from toks[i] to the start of its expression and
// reports whether a keyword introducing a condition was passed.
func inCondition(toks []token.Token, i int) bool {
	iterable := false

	for k := i - 1; k >= 0; k-- {
		t := &toks[k]

		switch {
		case t.IsPunct("}"), t.IsOpen(), t.IsPunct(";"), t.IsPunct(","), t.IsPunct("=>"):
			return false
		case t.IsClose():
			k = t.Match
		case t.IsIdent("if"), t.IsIdent("while"), t.IsIdent("match"):
			return true
		case t.IsIdent("in"):
			iterable = true
		case t.IsIdent("for"):
			return iterable
		}
	}

	return false
}

// macroCall returns the name when toks[i:] is `ident ! <open delimiter>`.
func macroCall(toks []token.Token, i int) (string, bool) {
	if i+2 >= len(toks) || toks[i].Kind != token.KindIdent {
		return "", false
	}

	if !toks[i+1].IsPunct("!") || !toks[i+2].IsOpen() {
		return "", false
	}

	return toks[i].Text, true
}

// suggestMacros reports calls to unknown macros whose name is one edit away
// from a known one.
func suggestMacros(toks []token.Token, names map[string]gen.Macro, diags *diagnostic.Diagnostics) {
	known := slices.Sorted(maps.Keys(names))

	for i := range toks {
		name, ok := macroCall(toks, i)
		if !ok || len(name) < minSuggestLen {
			continue
		}

		if _, ok := names[name]; ok {
			continue
		}

		candidates := match.Suggest(name, known, 1)
		if len(candidates) == 0 {
			continue
		}

		diags.AddInfo(diagnostic.CodeUnknownMacro,
			fmt.Sprintf("`%s!` is not expanded", name), toks[i].Span,
			fmt.Sprintf("did you mean `%s!`?", candidates[0]))
	}
}
