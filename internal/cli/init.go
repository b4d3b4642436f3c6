package cli

import (
	"github.com/spf13/cobra"

	"spreadgen/internal/config"
	"spreadgen/internal/logger"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.DefaultFilename,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.opts.configPath
			if path == "" {
				path = config.DefaultFilename
			}

			if err := config.WriteFile(config.Default(), path, force); err != nil {
				return err
			}

			logger.FromContext(cmd.Context()).Info("Wrote config", "path", path)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
