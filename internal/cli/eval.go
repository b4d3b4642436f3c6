package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"spreadgen/internal/diagnostic"
	"spreadgen/internal/expand"
	"spreadgen/internal/gen"
	"spreadgen/internal/match"
	"spreadgen/internal/syntax"
)

const evalFilename = "<eval>"

var treeDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newEvalCommand(a *app) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "eval <macro> <body|->",
		Short: "Expand one invocation body given on the command line",
		Example: `  spreadgen eval spread 'Foo { a, { b } in other }'
  echo 'left, right, [id]' | spreadgen eval assert_fields_eq - --tree`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			names := cfg.MacroNames()

			m, ok := names[args[0]]
			if !ok {
				return unknownMacro(args[0], slices.Sorted(maps.Keys(names)))
			}

			body := args[1]
			if body == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading body from stdin: %w", err)
				}

				body = string(data)
			}

			x := expand.NewRunner(cfg).Expander()

			if tree {
				return a.dumpTree(x, m, body)
			}

			ev := x.ExpandInvocation(m, evalFilename, body)
			a.reportSources(ev.Diagnostics, ev.Sources)

			if ev.Diagnostics.HasErrors() {
				return ErrFailed
			}

			_, err = fmt.Fprintln(a.stdout, ev.Output)

			return err
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "print the parse tree instead of the expansion")

	return cmd
}

// maxEvalSuggestions caps the names offered for a mistyped macro.
const maxEvalSuggestions = 3

func unknownMacro(name string, known []string) error {
	err := fmt.Errorf("unknown macro %q", name)

	var near []string

	for _, c := range match.Rank(name, known).Top(maxEvalSuggestions) {
		if c.Distance <= 2 {
			near = append(near, strconv.Quote(c.Name))
		}
	}

	if len(near) > 0 {
		err = fmt.Errorf("%w, did you mean %s?", err, strings.Join(near, " or "))
	}

	return err
}

func (a *app) dumpTree(x *expand.Expander, m gen.Macro, body string) error {
	c, err := syntax.NewStringCursor(evalFilename, body)
	if err == nil {
		var tree any

		if tree, err = x.Generator().Parse(m, c); err == nil {
			treeDumper.Fdump(a.stdout, tree)
			return nil
		}
	}

	diags := &diagnostic.Diagnostics{}
	diags.AddErr(err)
	a.report(diags, body)

	return ErrFailed
}
