package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"spreadgen/internal/config"
	"spreadgen/internal/expand"
	"spreadgen/internal/logger"
)

// runFlags override config values for expand, check and watch.
type runFlags struct {
	outDir  string
	rustfmt bool
	workers int
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.outDir, "out-dir", "", "write outputs under this directory instead of next to the inputs")
	fs.BoolVar(&f.rustfmt, "rustfmt", false, "format outputs with rustfmt")
	fs.IntVar(&f.workers, "workers", 0, "number of files expanded in parallel (0 = one per CPU)")
}

// apply copies the flags that were set onto cfg.
func (f *runFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("out-dir") {
		cfg.Output.Dir = f.outDir
	}

	if fs.Changed("rustfmt") {
		cfg.Format.Rustfmt = f.rustfmt
	}

	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
}

func newExpandCommand(a *app) *cobra.Command {
	var (
		flags  runFlags
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "expand [files...]",
		Short: "Expand inputs and write the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			flags.apply(cmd.Flags(), cfg)

			return a.expand(cmd.Context(), cfg, args, stdout)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print outputs instead of writing them")

	return cmd
}

// expand runs every input and writes, or prints, the error-free results.
func (a *app) expand(ctx context.Context, cfg *config.Config, args []string, toStdout bool) error {
	log := logger.FromContext(ctx)

	inputs, err := resolveInputs(cfg, args)
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		log.Warn("No inputs matched", "patterns", cfg.Inputs)
		return nil
	}

	runner := expand.NewRunner(cfg)

	results, err := runner.Run(ctx, inputs)
	if err != nil {
		return err
	}

	failed := 0

	for _, res := range results {
		a.report(res.Diagnostics, res.Source)

		if res.Diagnostics.HasErrors() {
			failed++
		}
	}

	if toStdout {
		if err := printResults(a.stdout, results); err != nil {
			return err
		}
	} else if err := runner.Write(results); err != nil {
		return err
	}

	log.Info("Expanded inputs", "files", len(results)-failed, "failed", failed)

	if failed > 0 {
		return ErrFailed
	}

	return nil
}

func printResults(w io.Writer, results []*expand.Result) error {
	for _, res := range results {
		if res.Diagnostics.HasErrors() {
			continue
		}

		if len(results) > 1 {
			if _, err := fmt.Fprintf(w, "// ==> %s\n", res.Output); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, res.Content); err != nil {
			return err
		}
	}

	return nil
}
