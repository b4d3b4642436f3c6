package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"spread", "spread", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"in", "inn", 1},
		{"kitten", "sitting", 3},
		{"sprad", "spread", 1},
		{"anno", "anon", 2},
		{"slet", "clone", 4},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	assert.InDelta(t, 1.0, LevenshteinNormalized("", ""), 0.001)
	assert.InDelta(t, 1.0, LevenshteinNormalized("anon", "anon"), 0.001)
	assert.InDelta(t, 0.0, LevenshteinNormalized("abc", "xyz"), 0.001)
	assert.InDelta(t, 1.0-3.0/7.0, LevenshteinNormalized("kitten", "sitting"), 0.001)
}

func TestNormalizeIdent(t *testing.T) {
	assert.Equal(t, "assertfieldseq", NormalizeIdent("assert_fields_eq"))
	assert.Equal(t, "assertfieldseq", NormalizeIdent("assertFieldsEq"))
	assert.Equal(t, "type", NormalizeIdent("r#type"))
}

func TestSuggest(t *testing.T) {
	macros := []string{"spread", "anon", "slet", "clone", "fn_struct", "assert_fields_eq"}

	tests := []struct {
		word string
		want []string
	}{
		{"sprad", []string{"spread"}},
		{"assertFieldsEq", []string{"assert_fields_eq"}},
		{"fnstruct", []string{"fn_struct"}},
		{"spread", nil},
		{"println", nil},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.word, macros, 1))
		})
	}
}

func TestRankOrdersClosestFirst(t *testing.T) {
	ranked := Rank("im", []string{"in", "if", "mut"})

	assert.Equal(t, "if", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Distance)
	assert.Equal(t, "in", ranked[1].Name)
	assert.Len(t, ranked.Top(1), 1)
	assert.Len(t, ranked.Top(5), 3)
}

func BenchmarkLevenshtein(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Levenshtein("assert_fields_eq", "asert_field_eq")
	}
}
