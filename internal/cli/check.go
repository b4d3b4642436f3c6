package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"spreadgen/internal/expand"
	"spreadgen/internal/logger"
)

func newCheckCommand(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report outputs that are missing or out of date",
		Long: `check expands inputs in memory and prints a unified diff for every
output that does not match. It exits non-zero when an output is stale or an
input has errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			flags.apply(cmd.Flags(), cfg)

			inputs, err := resolveInputs(cfg, args)
			if err != nil {
				return err
			}

			results, err := expand.NewRunner(cfg).Run(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			failed := false

			for _, res := range results {
				a.report(res.Diagnostics, res.Source)
				failed = failed || res.Diagnostics.HasErrors()
			}

			stale, err := expand.Check(results)
			if err != nil {
				return err
			}

			for _, s := range stale {
				if _, err := io.WriteString(a.stdout, s.Diff); err != nil {
					return err
				}
			}

			logger.FromContext(cmd.Context()).Debug("Checked outputs", "files", len(results), "stale", len(stale))

			if len(stale) > 0 {
				return fmt.Errorf("%d of %d outputs are out of date; run `spreadgen expand`", len(stale), len(results))
			}

			if failed {
				return ErrFailed
			}

			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}
