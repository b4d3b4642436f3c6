// Package match provides identifier normalization, Levenshtein distance and
// "did you mean" ranking for misspelt macro names and keywords.
//
// Key functions:
//   - NormalizeIdent: folds case and separators so `assertFieldsEq` meets `assert_fields_eq`
//   - Levenshtein: computes edit distance between strings
//   - Rank / Suggest: orders candidate names by closeness to a word
package match
