package gen

import (
	"strings"

	"spreadgen/internal/syntax"
)

const (
	assertLeft  = "__left"
	assertRight = "__right"
)

// AssertFieldsEq renders a block comparing only the named fields of two
// values. Both sides are borrowed into a wrapper struct so the assertion
// message shows nothing but the compared fields.
func (g *Generator) AssertFieldsEq(a *syntax.AssertFieldsEq) string {
	e := newEmitter(g.config.Indent)
	names := a.FieldNames()
	ref := syntax.Modifier{Kind: syntax.ModifierRef}

	e.emitLine("{")
	e.incIndent()

	e.emitLine("#[allow(non_camel_case_types)]")
	e.emitLine("#[derive(Debug, PartialEq, Eq)]")
	e.emitLinef("struct Fields<'a, %s> {", strings.Join(names, ", "))
	e.incIndent()

	for _, n := range names {
		e.emitLinef("%s: &'a %s,", n, n)
	}

	e.decIndent()
	e.emitLine("}")
	e.emitLine("")

	e.emitLinef("let %s = %s;", assertLeft, ref.Apply(a.Left))

	if a.Anon != nil {
		anon := strings.SplitN(g.Anon(a.Anon), "\n", 2)
		e.emitLinef("let %s = &%s", assertRight, anon[0])
		e.emitText(strings.TrimSuffix(anon[1], "\n}"))
		e.emitLine("};")
	} else {
		e.emitLinef("let %s = %s;", assertRight, ref.Apply(*a.Right))
	}

	e.emitLine("")
	g.emitFieldsLiteral(e, assertLeft, names)
	g.emitFieldsLiteral(e, assertRight, names)

	args := assertLeft + "_fields, " + assertRight + "_fields"
	if a.Extra != "" {
		args += ", " + a.Extra
	}

	e.emitLinef("%s!(%s);", g.config.AssertMacro, args)

	e.decIndent()
	e.emitLine("}")

	return e.String()
}

func (g *Generator) emitFieldsLiteral(e *emitter, side string, names []string) {
	e.emitLinef("let %s_fields = Fields {", side)
	e.incIndent()

	for _, n := range names {
		e.emitLinef("%s: &%s.%s,", n, side, n)
	}

	e.decIndent()
	e.emitLine("};")
}
