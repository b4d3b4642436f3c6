package token

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}

	return out
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		texts []string
		kinds []Kind
	}{
		{
			name:  "field list",
			src:   "a, b: 5,",
			texts: []string{"a", ",", "b", ":", "5", ","},
			kinds: []Kind{KindIdent, KindPunct, KindIdent, KindPunct, KindLiteral, KindPunct},
		},
		{
			name:  "modifiers",
			src:   "&mut x, +>y, [f]&z",
			texts: []string{"&", "mut", "x", ",", "+", ">", "y", ",", "[", "f", "]", "&", "z"},
		},
		{
			name:  "multi char punct",
			src:   "..rest ::a -> b => c ..= d",
			texts: []string{"..", "rest", "::", "a", "->", "b", "=>", "c", "..=", "d"},
		},
		{
			name:  "comments dropped",
			src:   "a // line\n/* block */ b",
			texts: []string{"a", "b"},
		},
		{
			name:  "doc comments kept",
			src:   "/// doc\nstruct",
			texts: []string{"/// doc", "struct"},
			kinds: []Kind{KindDocComment, KindIdent},
		},
		{
			name:  "lifetime and char",
			src:   "'a 'b' '\\n' 'static",
			texts: []string{"'a", "'b'", "'\\n'", "'static"},
			kinds: []Kind{KindLifetime, KindLiteral, KindLiteral, KindLifetime},
		},
		{
			name:  "strings",
			src:   `"a \" b" r#"raw "x""# b"bytes"`,
			texts: []string{`"a \" b"`, `r#"raw "x""#`, `b"bytes"`},
			kinds: []Kind{KindLiteral, KindLiteral, KindLiteral},
		},
		{
			name:  "numbers",
			src:   "1_000u32 2.5f64 0x1F 1e10",
			texts: []string{"1_000u32", "2.5f64", "0x1F", "1e10"},
			kinds: []Kind{KindLiteral, KindLiteral, KindLiteral, KindLiteral},
		},
		{
			name:  "raw identifier",
			src:   "r#type",
			texts: []string{"r#type"},
			kinds: []Kind{KindIdent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex("test.rs", tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.texts, texts(toks))

			if tt.kinds != nil {
				kinds := make([]Kind, len(toks))
				for i, tok := range toks {
					kinds[i] = tok.Kind
				}

				assert.Equal(t, tt.kinds, kinds)
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	toks, err := Lex("f.rs", "a\n  bb")
	require.NoError(t, err)
	require.Len(t, toks, 2)

	assert.Equal(t, Pos{Filename: "f.rs", Offset: 0, Line: 1, Column: 1}, toks[0].Span.Start)
	assert.Equal(t, Pos{Filename: "f.rs", Offset: 4, Line: 2, Column: 3}, toks[1].Span.Start)
	assert.Equal(t, Pos{Filename: "f.rs", Offset: 6, Line: 2, Column: 5}, toks[1].Span.End)
	assert.Equal(t, "f.rs:2:3", toks[1].Span.String())
}

func TestLexMatchesDelimiters(t *testing.T) {
	toks, err := Lex("", "f(a, [b], {c})")
	require.NoError(t, err)

	assert.Equal(t, 11, toks[1].Match)
	assert.Equal(t, 1, toks[11].Match)
	assert.Equal(t, 6, toks[4].Match)
	assert.Equal(t, -1, toks[0].Match)
	assert.Equal(t, 12, Next(toks, 1))
	assert.Equal(t, 1, Next(toks, 0))
}

func TestLexUnbalanced(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unclosed", "f(a", "unclosed delimiter `(`"},
		{"stray close", "a)", "unexpected closing delimiter `)`"},
		{"mismatch", "(a]", "mismatched closing delimiter `]`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex("", tt.src)
			require.Error(t, err)

			var lexErr *Error
			require.True(t, errors.As(err, &lexErr))
			assert.Contains(t, lexErr.Msg, tt.msg)
			assert.Equal(t, "unbalanced", lexErr.DiagnosticCode())
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "identifier `foo`", Token{Kind: KindIdent, Text: "foo"}.Describe())
	assert.Equal(t, "keyword `in`", Token{Kind: KindIdent, Text: "in"}.Describe())
	assert.Equal(t, "`,`", Token{Kind: KindPunct, Text: ","}.Describe())
	assert.Equal(t, "literal 5", Token{Kind: KindLiteral, Text: "5"}.Describe())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Ident", KindIdent.String())
	assert.Equal(t, "DocComment", KindDocComment.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
