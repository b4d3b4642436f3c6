package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"spreadgen/internal/expand"
	"spreadgen/internal/logger"
)

func newWatchCommand(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Expand all inputs, then re-expand each one when it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			flags.apply(cmd.Flags(), cfg)

			ctx := cmd.Context()
			log := logger.FromContext(ctx)

			// errors in the first pass are reported and then fixed while watching
			if err := a.expand(ctx, cfg, nil, false); err != nil && !errors.Is(err, ErrFailed) {
				return err
			}

			return expand.NewRunner(cfg).Watch(ctx, func(res *expand.Result) {
				a.report(res.Diagnostics, res.Source)

				if !res.Diagnostics.HasErrors() {
					log.Info("Re-expanded", "file", res.Input, "output", res.Output)
				}
			})
		},
	}

	flags.register(cmd.Flags())

	return cmd
}
