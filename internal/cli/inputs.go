package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"spreadgen/internal/config"
)

// resolveInputs returns the inputs named on the command line, relative to
// the config directory, or every configured input when args is empty.
func resolveInputs(cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		return cfg.ResolveInputs()
	}

	root, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}

	inputs := make([]string, 0, len(args))

	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}

		rel, err := filepath.Rel(root, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("%s is outside the config directory %s", arg, cfg.Dir)
		}

		inputs = append(inputs, filepath.ToSlash(rel))
	}

	return inputs, nil
}
