// Package diagnostic collects errors, warnings and infos produced while
// expanding a source file and renders them the way rustc does, with the
// offending source line and a caret under the span.
//
// Key capabilities:
//   - Stable diagnostic codes shared by the parser and the expander
//   - Conversion of coded errors (parser, lexer) into diagnostics
//   - Per-file collection so one bad invocation does not hide the others
package diagnostic
