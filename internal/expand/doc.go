// Package expand finds macro invocations in Rust source, replaces each with
// its generated code and drives that over a set of files: in parallel, with
// an optional rustfmt pass, writing or diffing the results.
//
// Invocations are expanded outermost first. When an expansion contains
// further invocations the file is lexed again and the next round expands
// those, up to a configured number of rounds. Every invocation, nested or
// not, is checked against the original text first so that errors point at
// the file as written.
package expand
