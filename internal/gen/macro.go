package gen

//go:generate go tool stringer -type=Macro -linecomment -output=macro_string.go

// Macro identifies one of the expandable forms.
type Macro int

const (
	MacroUnknown        Macro = iota // unknown
	MacroSpread                      // spread
	MacroAnon                        // anon
	MacroSlet                        // slet
	MacroClone                       // clone
	MacroFnStruct                    // fn_struct
	MacroAssertFieldsEq              // assert_fields_eq
)

// Macros lists every known form.
var Macros = []Macro{MacroSpread, MacroAnon, MacroSlet, MacroClone, MacroFnStruct, MacroAssertFieldsEq}

// ParseMacro returns the form whose canonical name is name.
func ParseMacro(name string) (Macro, bool) {
	for _, m := range Macros {
		if m.String() == name {
			return m, true
		}
	}

	return MacroUnknown, false
}

// Statement reports whether the form expands to statements or items, in
// which case a `;` following the invocation belongs to it.
func (m Macro) Statement() bool {
	switch m {
	case MacroSlet, MacroClone, MacroFnStruct:
		return true
	default:
		return false
	}
}
