package gen

import (
	"fmt"
	"strings"

	"spreadgen/internal/syntax"
)

// Generator renders macro invocations. It holds no per-invocation state and
// is safe for concurrent use.
type Generator struct {
	config Config
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	return &Generator{config: config}
}

// Config returns the generator configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Parse parses an invocation body into the tree the form's generator
// consumes.
func (g *Generator) Parse(m Macro, c *syntax.Cursor) (any, error) {
	switch m {
	case MacroSpread:
		return syntax.ParseSpread(c)
	case MacroAnon:
		return syntax.ParseAnon(c)
	case MacroSlet:
		return syntax.ParseSlet(c)
	case MacroClone:
		return syntax.ParseClone(c)
	case MacroFnStruct:
		return syntax.ParseFnStructs(c)
	case MacroAssertFieldsEq:
		return syntax.ParseAssertFieldsEq(c)
	default:
		return nil, fmt.Errorf("unknown macro %q", m)
	}
}

// Expand parses the body under c and renders it. The result has relative
// indentation and no trailing newline.
func (g *Generator) Expand(m Macro, c *syntax.Cursor) (string, error) {
	tree, err := g.Parse(m, c)
	if err != nil {
		return "", err
	}

	switch t := tree.(type) {
	case *syntax.StructLit:
		return g.Spread(t), nil
	case *syntax.ItemList:
		if m == MacroSlet {
			return g.Slet(t), nil
		}

		return g.Anon(t), nil
	case []*syntax.Field:
		return g.Clone(t), nil
	case []syntax.FnStructDecl:
		return g.FnStructs(t)
	case *syntax.AssertFieldsEq:
		return g.AssertFieldsEq(t), nil
	default:
		return "", fmt.Errorf("no generator for %T", tree)
	}
}

// ExpandString lexes body and expands it as an invocation of m.
func (g *Generator) ExpandString(m Macro, filename, body string) (string, error) {
	c, err := syntax.NewStringCursor(filename, body)
	if err != nil {
		return "", err
	}

	return g.Expand(m, c)
}

// Spread renders a struct literal. Spread-list sources are bound in a
// block first so each is evaluated once.
func (g *Generator) Spread(lit *syntax.StructLit) string {
	e := newEmitter(g.config.Indent)
	lists := lit.Items.Lists()

	if len(lists) > 0 {
		e.emitLine("{")
		e.incIndent()
		g.emitBindings(e, lists)
	}

	g.emitLiteral(e, lit.Path.Text, lit.Items)

	if len(lists) > 0 {
		e.decIndent()
		e.emitLine("}")
	}

	return e.String()
}

// Anon renders a block declaring a struct generic over every field and
// building a value of it.
func (g *Generator) Anon(list *syntax.ItemList) string {
	e := newEmitter(g.config.Indent)
	names := list.FieldNames()
	name := g.config.AnonTypeName

	e.emitLine("{")
	e.incIndent()

	e.emitLine("#[allow(non_camel_case_types)]")

	if len(g.config.AnonDerives) > 0 {
		e.emitLinef("#[derive(%s)]", strings.Join(g.config.AnonDerives, ", "))
	}

	if g.config.AnonSerde {
		e.emitLine("#[derive(::serde::Serialize)]")
	}

	if len(names) == 0 {
		e.emitLinef("struct %s {}", name)
	} else {
		e.emitLinef("struct %s<%s> {", name, strings.Join(names, ", "))
		e.incIndent()

		for _, n := range names {
			e.emitLinef("%s: %s,", n, n)
		}

		e.decIndent()
		e.emitLine("}")
	}

	e.emitLine("")

	lists := list.Lists()
	g.emitBindings(e, lists)
	g.emitLiteral(e, name, list)

	e.decIndent()
	e.emitLine("}")

	return e.String()
}

// Slet renders one `let` per field. A spread list becomes one tuple
// destructuring so its source is evaluated once.
func (g *Generator) Slet(list *syntax.ItemList) string {
	e := newEmitter(g.config.Indent)

	for _, item := range list.Items {
		switch it := item.(type) {
		case *syntax.Field:
			e.emitLinef("let %s%s = %s;", mutPrefix(it), it.Name.Name, it.Render())
		case *syntax.SpreadList:
			var pattern, values strings.Builder

			for _, f := range it.Fields {
				pattern.WriteString(mutPrefix(f) + f.Name.Name + ", ")
				values.WriteString(f.Modifier.Apply(it.Member(f)) + ", ")
			}

			e.emitLinef("let (%s) = {", strings.TrimSuffix(pattern.String(), " "))
			e.incIndent()
			e.emitLinef("let %s = %s;", it.Binding, it.Source.Text)
			e.emitLinef("(%s)", strings.TrimSuffix(values.String(), " "))
			e.decIndent()
			e.emitLine("};")
		}
	}

	return e.String()
}

// Clone renders `let [mut] name = name.clone();` per name.
func (g *Generator) Clone(fields []*syntax.Field) string {
	e := newEmitter(g.config.Indent)

	for _, f := range fields {
		e.emitLinef("let %s%s = %s;", mutPrefix(f), f.Name.Name, f.Render())
	}

	return e.String()
}

func (g *Generator) emitBindings(e *emitter, lists []*syntax.SpreadList) {
	for _, l := range lists {
		e.emitLinef("let %s = %s;", l.Binding, l.Source.Text)
	}
}

// emitLiteral emits `path { field: value, ..., ..rest }`.
func (g *Generator) emitLiteral(e *emitter, path string, list *syntax.ItemList) {
	if len(list.Items) == 0 {
		e.emitLinef("%s {}", path)
		return
	}

	e.emitLinef("%s {", path)
	e.incIndent()

	for _, item := range list.Items {
		switch it := item.(type) {
		case *syntax.Field:
			e.emitLinef("%s: %s,", it.Name.Name, it.Render())
		case *syntax.SpreadList:
			for _, f := range it.Fields {
				e.emitLinef("%s: %s,", f.Name.Name, f.Modifier.Apply(it.Member(f)))
			}
		case *syntax.FinalSpread:
			e.emitLinef("..%s", it.Source.Text)
		}
	}

	e.decIndent()
	e.emitLine("}")
}

func mutPrefix(f *syntax.Field) string {
	if f.Mut {
		return "mut "
	}

	return ""
}
