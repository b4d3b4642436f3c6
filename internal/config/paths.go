package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveInputs expands the input patterns against Dir. Results are
// slash-separated paths relative to Dir, sorted and free of duplicates.
func (c *Config) ResolveInputs() ([]string, error) {
	fsys := os.DirFS(c.Dir)

	var files []string

	for _, pattern := range c.Inputs {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to match input pattern %q: %w", pattern, err)
		}

		files = append(files, matches...)
	}

	files = slices.DeleteFunc(files, c.Excluded)
	slices.Sort(files)

	return slices.Compact(files), nil
}

// Excluded reports whether a Dir-relative path matches an exclude pattern.
func (c *Config) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)

	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

// Matches reports whether a Dir-relative path is an input.
func (c *Config) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)

	for _, pattern := range c.Inputs {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return !c.Excluded(rel)
		}
	}

	return false
}

// OutputPath maps an input path, relative to Dir, to the file its expansion
// is written to.
func (c *Config) OutputPath(input string) (string, error) {
	if !strings.HasSuffix(input, c.Output.TrimSuffix) {
		return "", fmt.Errorf("input %s does not end with %q", input, c.Output.TrimSuffix)
	}

	rel := strings.TrimSuffix(input, c.Output.TrimSuffix)
	if c.Output.Dir != "" {
		return filepath.Join(c.Dir, c.Output.Dir, filepath.FromSlash(rel)), nil
	}

	return filepath.Join(c.Dir, filepath.FromSlash(rel)), nil
}

// InputPath joins a Dir-relative input with Dir.
func (c *Config) InputPath(input string) string {
	return filepath.Join(c.Dir, filepath.FromSlash(input))
}
