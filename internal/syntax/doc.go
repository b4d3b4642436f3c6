// Package syntax is the recursive-descent grammar of the spread macros.
//
// A Cursor walks a window of the token stream produced by package token.
// Parsers build the invocation trees consumed by package gen:
//   - Field, SpreadList, FinalSpread and ItemList for spread!, anon!, slet! and clone!
//   - TypedField, Generics, FnPath and FnStruct for fn_struct!
//   - AssertFieldsEq for assert_fields_eq!
//
// Every error is a *Error carrying a diagnostic code and the smallest
// offending span. Parsing stops at the first error.
package syntax
