package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"spreadgen/internal/diagnostic"
	"spreadgen/internal/syntax"
)

// fnStructData holds all data needed for the fn_struct template.
type fnStructData struct {
	Attrs      []string
	Vis        string
	Name       string
	Decl       string
	Impl       string
	Args       string
	Where      string
	CallImpl   string
	CallWhere  string
	SelfArg    string
	Receiver   string
	Return     string
	Path       string
	CallArgs   []string
	Fields     []fnStructField
	HasDefault bool
}

type fnStructField struct {
	Name    string
	Type    string
	Default string
}

// closureStructData holds all data needed for the closure struct template.
type closureStructData struct {
	Attrs []string
	Vis   string
	Name  string
	Args  []string
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"vis": func(v string) string {
		if v == "" {
			return ""
		}

		return v + " "
	},
	"sp": func(s string) string {
		if s == "" {
			return ""
		}

		return " " + s
	},
}

var fnStructTemplate = template.Must(template.New("fn_struct").Funcs(templateFuncs).Parse(
	`{{range .Attrs}}{{.}}
{{end}}{{vis .Vis}}struct {{.Name}}{{.Decl}}{{sp .Where}} {
{{- range .Fields}}
	{{vis $.Vis}}{{.Name}}: {{.Type}},
{{- end}}
}
{{if .HasDefault}}
impl{{.Impl}} ::core::default::Default for {{.Name}}{{.Args}}{{sp .Where}} {
	fn default() -> Self {
		Self {
{{- range .Fields}}
			{{.Name}}: {{.Default}},
{{- end}}
		}
	}
}
{{end}}
impl{{.Impl}} {{.Name}}{{.Args}}{{sp .Where}} {
	pub fn call{{.CallImpl}}({{.SelfArg}}{{.Receiver}}) -> {{.Return}}{{sp .CallWhere}} {
		{{.Path}}({{join .CallArgs ", "}})
	}
}`))

var closureStructTemplate = template.Must(template.New("closure_struct").Funcs(templateFuncs).Parse(
	`{{range .Attrs}}{{.}}
{{end}}#[allow(non_camel_case_types)]
#[derive(Copy, Clone, Debug, PartialEq, Eq)]
{{vis .Vis}}struct {{.Name}}<{{join .Args ", "}}> {
{{- range .Args}}
	{{.}}: {{.}},
{{- end}}
}

#[allow(non_camel_case_types)]
impl<{{join .Args ", "}}> {{.Name}}<{{join .Args ", "}}> {
	#[allow(dead_code)]
	pub fn call<F, R>(self, f: F) -> R
	where
		F: FnOnce({{join .Args ", "}}) -> R,
	{
		let Self { {{join .Args ", "}} } = self;
		f({{join .Args ", "}})
	}
}`))

// FnStructs renders every declaration of one fn_struct! invocation,
// separated by a blank line.
func (g *Generator) FnStructs(decls []syntax.FnStructDecl) (string, error) {
	parts := make([]string, 0, len(decls))

	for _, d := range decls {
		var (
			out string
			err error
		)

		switch d := d.(type) {
		case *syntax.FnStruct:
			out, err = g.FnStruct(d)
		case *syntax.ClosureStruct:
			out, err = g.ClosureStruct(d)
		default:
			err = fmt.Errorf("unexpected declaration %T", d)
		}

		if err != nil {
			return "", err
		}

		parts = append(parts, out)
	}

	return strings.Join(parts, "\n\n"), nil
}

// FnStruct renders the argument struct, its optional Default impl and the
// forwarding `call` method.
func (g *Generator) FnStruct(fs *syntax.FnStruct) (string, error) {
	data := fnStructData{
		Attrs:      fs.Attrs,
		Vis:        fs.Vis,
		Name:       fs.Name.Name,
		Decl:       fs.StructGenerics.Decl(),
		Impl:       fs.StructGenerics.Impl(),
		Args:       fs.StructGenerics.Args(),
		Where:      fs.StructGenerics.WhereClause(),
		CallImpl:   fs.CallGenerics.Impl(),
		CallWhere:  fs.CallGenerics.WhereClause(),
		SelfArg:    "self",
		Return:     "()",
		Path:       fs.Path.Text,
		HasDefault: fs.ImplDefault,
	}

	if fs.ByRef {
		data.SelfArg = "&self"
	}

	// `-> ()` when no return type is given, so a mismatch is reported
	// against an explicit type
	if fs.Return != nil {
		data.Return = fs.Return.Text
	}

	if fs.Receiver != nil {
		ty, ok := fs.Path.ReceiverType()
		if !ok {
			return "", syntax.NewError(diagnostic.CodeReceiverType, fs.Path.Span,
				"cannot use `self` with a function that is not a method").
				WithHelp("use a path such as `Type::method` or `<Type as Trait>::method`")
		}

		data.Receiver = fmt.Sprintf(", __self: %s%s", fs.Receiver.Modifier.Prefix(), ty)
		data.CallArgs = append(data.CallArgs, "__self")
	}

	for _, f := range fs.Fields {
		field := fnStructField{Name: f.Name.Name, Type: f.Type.Text}
		if f.Default != nil {
			field.Default = f.Default.Text
		}

		data.Fields = append(data.Fields, field)
		data.CallArgs = append(data.CallArgs,
			f.Modifier.Apply(syntax.Var("self."+f.Name.Name, f.Name.Span)))
	}

	return g.render(fnStructTemplate, data)
}

// ClosureStruct renders the positional form: a struct generic over every
// argument whose `call` forwards them to any FnOnce. Its fields stay private
// whatever the struct's visibility.
func (g *Generator) ClosureStruct(cs *syntax.ClosureStruct) (string, error) {
	data := closureStructData{
		Attrs: cs.Attrs,
		Vis:   cs.Vis,
		Name:  cs.Name.Name,
	}

	for _, a := range cs.Args {
		data.Args = append(data.Args, a.Name)
	}

	return g.render(closureStructTemplate, data)
}

// render executes t and converts its tab indentation to the configured unit.
func (g *Generator) render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer

	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", t.Name(), err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, "\t")
		lines[i] = strings.Repeat(g.config.Indent, len(line)-len(trimmed)) + trimmed
	}

	return strings.Join(lines, "\n"), nil
}
