package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"spreadgen/internal/common"
	"spreadgen/internal/diagnostic"
	"spreadgen/internal/gen"
	"spreadgen/internal/match"
	"spreadgen/internal/token"
)

var (
	identRe  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	editions = []string{"2015", "2018", "2021", "2024"}
)

// Validate checks the values Parse cannot reject on its own.
func Validate(cfg *Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if cfg == nil {
		res.AddError(diagnostic.CodeConfig, "config is nil", token.Span{})
		return res
	}

	if cfg.Version != "1" {
		res.AddError(diagnostic.CodeConfig, fmt.Sprintf("unsupported config version %q", cfg.Version), token.Span{})
	}

	for _, p := range append(slices.Clone(cfg.Inputs), cfg.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			res.AddError(diagnostic.CodeConfig, fmt.Sprintf("invalid input pattern %q", p), token.Span{})
		}
	}

	if cfg.Workers < 0 {
		res.AddError(diagnostic.CodeConfig, "workers must not be negative", token.Span{})
	}

	if cfg.MaxRounds < 1 {
		res.AddError(diagnostic.CodeConfig, "max_rounds must be at least 1", token.Span{})
	}

	validateMacros(res, cfg.Macros)

	if !identRe.MatchString(cfg.Anon.TypeName) {
		res.AddError(diagnostic.CodeConfig,
			fmt.Sprintf("anon.type_name %q is not an identifier", cfg.Anon.TypeName), token.Span{})
	}

	if strings.HasSuffix(cfg.Assert.Macro, "!") {
		res.AddError(diagnostic.CodeConfig,
			fmt.Sprintf("assert.macro %q must not end with `!`", cfg.Assert.Macro), token.Span{},
			strings.TrimSuffix(cfg.Assert.Macro, "!"))
	}

	if !slices.Contains(editions, cfg.Format.Edition) {
		res.AddError(diagnostic.CodeConfig,
			fmt.Sprintf("unknown rust edition %q", cfg.Format.Edition), token.Span{},
			match.Suggest(cfg.Format.Edition, editions, 1)...)
	}

	return res
}

func validateMacros(res *diagnostic.Diagnostics, macros map[string]string) {
	forms := common.Map(gen.Macros, gen.Macro.String)

	names := make([]string, 0, len(macros))
	for name := range macros {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		form := macros[name]

		if !identRe.MatchString(name) {
			res.AddError(diagnostic.CodeConfig, fmt.Sprintf("macro name %q is not an identifier", name), token.Span{})
			continue
		}

		if form == "" {
			continue
		}

		if _, ok := gen.ParseMacro(form); !ok {
			res.AddError(diagnostic.CodeConfig,
				fmt.Sprintf("macro %q maps to unknown form %q", name, form), token.Span{},
				match.Suggest(form, forms, 2)...)
		}
	}
}
