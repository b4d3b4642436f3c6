// Package gen renders parsed spread-macro invocations as Rust source.
//
// Generation approach uses a line emitter for the expression forms and
// text/template for the item forms of fn_struct!, both producing text with
// relative indentation that the caller re-indents at the splice point.
//
// Codegen patterns:
//   - Struct literal with optional `..rest` trailer (spread!)
//   - Synthesised generic struct plus value (anon!)
//   - One `let` per field, tuple destructuring for spread lists (slet!, clone!)
//   - Argument struct with optional Default impl and a forwarding `call` (fn_struct!)
//   - Field-subset wrapper compared with a configurable assert macro (assert_fields_eq!)
package gen
