// Package token turns Rust source text into a flat token stream suitable for
// the spread-syntax grammar.
//
// Key properties:
//   - Every token carries a file-relative Span used for diagnostics
//   - Comments and whitespace are dropped, doc comments are kept (they are attributes)
//   - Delimiters ( ) [ ] { } are matched up front so groups can be skipped in O(1)
package token
