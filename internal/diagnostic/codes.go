package diagnostic

// Diagnostic codes. They are stable and printed as `error[code]`.
const (
	CodeSyntax           = "syntax"
	CodeEmptyList        = "empty-list"
	CodeFinalSpread      = "final-spread"
	CodeMutNotAllowed    = "mut-not-allowed"
	CodeReceiverModifier = "receiver-modifier"
	CodeReceiverPosition = "receiver-position"
	CodeMixedDefaults    = "mixed-defaults"
	CodeReceiverType     = "receiver-type"
	CodeDuplicateField   = "duplicate-field"
	CodeUnbalanced       = "unbalanced"
	CodeUnknownMacro     = "unknown-macro"

	// CodeExpansionDepth is reported when nested expansions do not settle.
	CodeExpansionDepth = "expansion-depth"
	// CodeRustfmt is a warning left when the formatter rejects the output.
	CodeRustfmt = "rustfmt"
	// CodeConfig reports an invalid spreadgen.yaml entry.
	CodeConfig = "config"
	// CodeInternal wraps an error that carries no code of its own.
	CodeInternal = "internal"
)
