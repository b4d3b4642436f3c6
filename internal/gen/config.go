package gen

// Config holds configuration for code generation.
type Config struct {
	// AnonTypeName names the struct synthesised by anon!.
	AnonTypeName string
	// AnonDerives are derived on the anon! struct.
	AnonDerives []string
	// AnonSerde adds a `::serde::Serialize` derive to the anon! struct.
	AnonSerde bool
	// AssertMacro is the path of the equality assertion, without `!`.
	AssertMacro string
	// Indent is one indentation level of the emitted code.
	Indent string
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		AnonTypeName: "Anon",
		AnonDerives:  []string{"Copy", "Clone", "Debug", "PartialEq", "Eq", "PartialOrd", "Ord", "Hash"},
		AssertMacro:  "::core::assert_eq",
		Indent:       "    ",
	}
}
