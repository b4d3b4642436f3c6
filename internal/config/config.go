package config

import (
	"runtime"

	"spreadgen/internal/gen"
)

// DefaultFilename is looked up in the working directory when no --config
// flag is given.
const DefaultFilename = "spreadgen.yaml"

// Config is the root of spreadgen.yaml.
type Config struct {
	Version string `yaml:"version"`
	// Inputs are doublestar patterns relative to the config directory.
	Inputs []string `yaml:"inputs"`
	// Exclude removes matches of these patterns from Inputs.
	Exclude []string `yaml:"exclude,omitempty"`
	Output  Output   `yaml:"output"`
	// Macros maps an invocation name to the form it expands. The canonical
	// names are always present unless mapped to "".
	Macros  map[string]string `yaml:"macros,omitempty"`
	Anon    Anon              `yaml:"anon"`
	Assert  Assert            `yaml:"assert"`
	Format  Format            `yaml:"format"`
	Workers int               `yaml:"workers"`
	// MaxRounds bounds how many times nested invocations are re-expanded.
	MaxRounds int `yaml:"max_rounds"`

	// Dir is the directory the config was loaded from. Relative paths
	// resolve against it.
	Dir string `yaml:"-"`
}

// Output controls where expanded files go.
type Output struct {
	// Dir re-roots outputs under this directory when set.
	Dir string `yaml:"dir,omitempty"`
	// TrimSuffix is removed from an input path to get its output path.
	TrimSuffix string `yaml:"trim_suffix"`
	// Sidecar keeps a `.unformatted.rs` copy when formatting fails.
	Sidecar *bool `yaml:"sidecar,omitempty"`
}

// Anon configures the struct synthesised by anon!.
type Anon struct {
	TypeName string   `yaml:"type_name"`
	Derives  []string `yaml:"derives"`
	Serde    bool     `yaml:"serde"`
}

// Assert configures assert_fields_eq!.
type Assert struct {
	Macro string `yaml:"macro"`
}

// Format configures the optional rustfmt pass.
type Format struct {
	Rustfmt bool   `yaml:"rustfmt"`
	Command string `yaml:"command"`
	Edition string `yaml:"edition"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if len(cfg.Inputs) == 0 {
		cfg.Inputs = []string{"**/*.rs.in"}
	}

	if cfg.Output.TrimSuffix == "" {
		cfg.Output.TrimSuffix = ".in"
	}

	if cfg.Output.Sidecar == nil {
		sidecar := true
		cfg.Output.Sidecar = &sidecar
	}

	defaults := gen.DefaultConfig()

	if cfg.Anon.TypeName == "" {
		cfg.Anon.TypeName = defaults.AnonTypeName
	}

	// an explicit empty list keeps the struct underived
	if cfg.Anon.Derives == nil {
		cfg.Anon.Derives = defaults.AnonDerives
	}

	if cfg.Assert.Macro == "" {
		cfg.Assert.Macro = defaults.AssertMacro
	}

	if cfg.Format.Command == "" {
		cfg.Format.Command = "rustfmt"
	}

	if cfg.Format.Edition == "" {
		cfg.Format.Edition = "2021"
	}

	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = 16
	}

	if cfg.Dir == "" {
		cfg.Dir = "."
	}
}

// WorkerCount resolves Workers, where 0 means one per CPU.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// SidecarEnabled reports whether unformatted sidecars are written.
func (c *Config) SidecarEnabled() bool {
	return c.Output.Sidecar == nil || *c.Output.Sidecar
}

// GeneratorConfig returns the generator settings of c.
func (c *Config) GeneratorConfig() gen.Config {
	cfg := gen.DefaultConfig()
	cfg.AnonTypeName = c.Anon.TypeName
	cfg.AnonDerives = c.Anon.Derives
	cfg.AnonSerde = c.Anon.Serde
	cfg.AssertMacro = c.Assert.Macro

	return cfg
}

// MacroNames returns every invocation name recognised, canonical names
// first overridden by the Macros aliases. Entries naming an unknown form
// are skipped; Validate reports them.
func (c *Config) MacroNames() map[string]gen.Macro {
	names := make(map[string]gen.Macro, len(gen.Macros)+len(c.Macros))
	for _, m := range gen.Macros {
		names[m.String()] = m
	}

	for name, form := range c.Macros {
		if form == "" {
			delete(names, name)
			continue
		}

		if m, ok := gen.ParseMacro(form); ok {
			names[name] = m
		}
	}

	return names
}
