// Package cli implements the spreadgen command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"spreadgen/internal/config"
	"spreadgen/internal/diagnostic"
	"spreadgen/internal/logger"
)

// ErrFailed is returned after diagnostics explaining the failure have been
// printed.
var ErrFailed = errors.New("spreadgen reported errors")

type options struct {
	configPath string
	logLevel   string
	logJSON    bool
	logSource  bool
}

// app is the state shared by the subcommands of one root command.
type app struct {
	opts     options
	stdout   io.Writer
	stderr   io.Writer
	renderer diagnostic.Renderer
}

// NewRootCommand builds the spreadgen command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "spreadgen",
		Short: "Expand spread-syntax Rust macros into plain Rust",
		Long: `spreadgen rewrites spread!, anon!, slet!, clone!, fn_struct! and
assert_fields_eq! invocations in Rust sources into the code they stand for.
Inputs (by default **/*.rs.in) are written next to themselves without the
.in suffix.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "path to the config file (default ./"+config.DefaultFilename+" when present)")
	flags.StringVar(&a.opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.BoolVar(&a.opts.logJSON, "log-json", false, "emit logs as JSON")
	flags.BoolVar(&a.opts.logSource, "log-source", false, "include the calling source location in logs")

	root.AddCommand(
		newExpandCommand(a),
		newCheckCommand(a),
		newEvalCommand(a),
		newWatchCommand(a),
		newInitCommand(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()
	a.renderer = diagnostic.Renderer{Styled: isTerminal(a.stderr)}

	l := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(a.opts.logLevel),
		Output:     a.stderr,
		JSON:       a.opts.logJSON,
		AddSource:  a.opts.logSource,
		TimeFormat: "15:04:05",
	})
	logger.SetDefault(l)
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), l))

	return nil
}

// loadConfig loads and validates the configuration.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return nil, err
	}

	diags := config.Validate(cfg)
	if !diags.IsValid() {
		if err := a.renderer.RenderAll(a.stderr, *diags, ""); err != nil {
			return nil, err
		}

		return nil, ErrFailed
	}

	return cfg, nil
}

// report prints the diagnostics of res.
func (a *app) report(diags *diagnostic.Diagnostics, src string) {
	if diags == nil || diags.Len() == 0 {
		return
	}

	if err := a.renderer.RenderAll(a.stderr, *diags, src); err != nil {
		fmt.Fprintln(a.stderr, err)
	}
}

// reportSources renders diagnostics pointing into more than one text.
func (a *app) reportSources(diags *diagnostic.Diagnostics, sources map[string]string) {
	if diags == nil || diags.Len() == 0 {
		return
	}

	if err := a.renderer.RenderSources(a.stderr, *diags, sources); err != nil {
		fmt.Fprintln(a.stderr, err)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
