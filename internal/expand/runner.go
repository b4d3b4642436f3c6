package expand

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"spreadgen/internal/config"
	"spreadgen/internal/diagnostic"
	"spreadgen/internal/gen"
	"spreadgen/internal/logger"
	"spreadgen/internal/token"
)

// Result is the outcome of expanding one input file.
type Result struct {
	// Input is the path relative to the config directory.
	Input  string
	Output string
	Source string
	// Content is the text to write. Empty when Diagnostics has errors.
	Content string
	// Unformatted is set when the formatter rejected Content.
	Unformatted string
	Diagnostics *diagnostic.Diagnostics
}

// File returns the result as a file to write.
func (r *Result) File() GeneratedFile {
	f := GeneratedFile{Path: r.Output, Content: []byte(r.Content)}
	if r.Unformatted != "" {
		f.Unformatted = []byte(r.Unformatted)
	}

	return f
}

// Runner expands the inputs of one configuration.
type Runner struct {
	cfg       *config.Config
	expander  *Expander
	formatter *Formatter
}

// NewRunner builds a Runner, with a rustfmt pass when the config enables it.
func NewRunner(cfg *config.Config) *Runner {
	g := gen.NewGenerator(cfg.GeneratorConfig())

	r := &Runner{
		cfg:      cfg,
		expander: NewExpander(g, cfg.MacroNames(), cfg.MaxRounds),
	}

	if cfg.Format.Rustfmt {
		r.formatter = &Formatter{Command: cfg.Format.Command, Edition: cfg.Format.Edition}
	}

	return r
}

// Expander returns the expander the runner uses.
func (r *Runner) Expander() *Expander {
	return r.expander
}

// Formatter returns the formatter, or nil when formatting is disabled.
func (r *Runner) Formatter() *Formatter {
	return r.formatter
}

// Run expands every input concurrently. Results are in input order. An
// I/O error stops the run; expansion errors are reported per result.
func (r *Runner) Run(ctx context.Context, inputs []string) ([]*Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("Expanding inputs", "count", len(inputs), "workers", r.cfg.WorkerCount())

	results := make([]*Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.WorkerCount())

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := r.File(ctx, input)
			if err != nil {
				return err
			}

			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// File expands a single input, given relative to the config directory.
func (r *Runner) File(ctx context.Context, input string) (*Result, error) {
	log := logger.FromContext(ctx).With("file", input)

	output, err := r.cfg.OutputPath(input)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(r.cfg.InputPath(input))
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", input, err)
	}

	res := &Result{Input: input, Output: output, Source: string(src)}

	content, diags := r.expander.Expand(input, res.Source)
	res.Diagnostics = diags

	if diags.HasErrors() {
		log.Debug("Expansion failed", "errors", len(diags.Errors))
		return res, nil
	}

	content = header(input) + content

	if r.formatter != nil {
		formatted, err := r.formatter.Format(ctx, content)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			log.Warn("Formatting failed, keeping unformatted output", "error", err)
			diags.AddWarning(diagnostic.CodeRustfmt, err.Error(),
				token.Span{Start: token.Pos{Filename: input, Line: 1, Column: 1}})
			res.Unformatted = content
		default:
			content = formatted
		}
	}

	res.Content = content
	log.Debug("Expanded", "output", output)

	return res, nil
}

// Write writes every result free of errors.
func (r *Runner) Write(results []*Result) error {
	files := make([]GeneratedFile, 0, len(results))

	for _, res := range results {
		if res.Diagnostics.HasErrors() {
			continue
		}

		files = append(files, res.File())
	}

	return WriteFiles(files, r.cfg.SidecarEnabled())
}

func header(input string) string {
	return fmt.Sprintf("// Code generated by spreadgen from %s. DO NOT EDIT.\n\n", input)
}
