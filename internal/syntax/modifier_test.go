package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spreadgen/internal/token"
)

func newCursor(t *testing.T, src string) *Cursor {
	t.Helper()

	c, err := NewStringCursor("test.rs", src)
	require.NoError(t, err)

	return c
}

func requireCode(t *testing.T, err error, code string) *Error {
	t.Helper()
	require.Error(t, err)

	var synErr *Error
	require.True(t, errors.As(err, &synErr), "want *syntax.Error, got %T: %v", err, err)
	assert.Equal(t, code, synErr.Code, synErr.Msg)

	return synErr
}

func TestParseModifier(t *testing.T) {
	tests := []struct {
		src  string
		kind ModifierKind
		path string
	}{
		{"a", ModifierNone, ""},
		{"&a", ModifierRef, ""},
		{"&mut a", ModifierRefMut, ""},
		{">a", ModifierInto, ""},
		{"+a", ModifierClone, ""},
		{"+>a", ModifierCloneInto, ""},
		{"[f]a", ModifierCustom, "f"},
		{"[Vec::from]&a", ModifierCustomRef, "Vec::from"},
		{"[std::mem::take]&mut a", ModifierCustomRefMut, "std::mem::take"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c := newCursor(t, tt.src)

			m, err := parseModifier(c)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, m.Kind)
			assert.Equal(t, tt.path, m.Path)

			// exactly the modifier tokens are consumed
			name, err := c.parseIdent(false)
			require.NoError(t, err)
			assert.Equal(t, "a", name.Name)
			assert.True(t, c.EOF())
		})
	}
}

func TestParseModifierErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"-a", "expected one of: `&`, `>`, `+`, `[`, identifier, found `-`"},
		{"& 5", "expected identifier, found literal 5"},
		{"+ ,", "expected identifier, found `,`"},
		{"[]a", "expected a function path inside `[...]`"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := parseModifier(newCursor(t, tt.src))
			synErr := requireCode(t, err, "syntax")
			assert.Equal(t, tt.msg, synErr.Msg)
		})
	}
}

func TestModifierApply(t *testing.T) {
	atomic := Expr{Text: "src.x", Atomic: true}
	compound := Expr{Text: "a + 1", Atomic: false}

	tests := []struct {
		kind     ModifierKind
		atomic   string
		compound string
	}{
		{ModifierNone, "src.x", "a + 1"},
		{ModifierRef, "&src.x", "&(a + 1)"},
		{ModifierRefMut, "&mut src.x", "&mut (a + 1)"},
		{ModifierInto, "src.x.into()", "(a + 1).into()"},
		{ModifierClone, "src.x.clone()", "(a + 1).clone()"},
		{ModifierCloneInto, "src.x.clone().into()", "(a + 1).clone().into()"},
		{ModifierCustom, "conv(src.x)", "conv(a + 1)"},
		{ModifierCustomRef, "conv(&src.x)", "conv(&(a + 1))"},
		{ModifierCustomRefMut, "conv(&mut src.x)", "conv(&mut (a + 1))"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m := Modifier{Kind: tt.kind, Path: "conv"}
			assert.Equal(t, tt.atomic, m.Apply(atomic))
			assert.Equal(t, tt.compound, m.Apply(compound))
		})
	}
}

func TestCloneIntoClonesFirst(t *testing.T) {
	out := Modifier{Kind: ModifierCloneInto}.Apply(Var("v", token.Span{}))

	assert.Equal(t, "v.clone().into()", out)
	assert.NotContains(t, out, ".into().clone()")
}

func TestAllowedOnReceiver(t *testing.T) {
	allowed := map[ModifierKind]bool{ModifierNone: true, ModifierRef: true, ModifierRefMut: true}

	for k := ModifierNone; k <= ModifierCustomRefMut; k++ {
		assert.Equal(t, allowed[k], Modifier{Kind: k}.AllowedOnReceiver(), k.String())
	}
}

func TestExprAtomicity(t *testing.T) {
	tests := []struct {
		src    string
		atomic bool
	}{
		{"a", true},
		{"a.b.c", true},
		{"f(x, y)", true},
		{"a.0", true},
		{"Vec::<u8>::new()", true},
		{"v[0].get()?", true},
		{"vec![1, 2]", true},
		{"Foo { a: 1 }", true},
		{"self.inner", true},
		{"<HashMap<K, V> as Default>::default()", true},
		{"a + 1", false},
		{"-1", false},
		{"*r", false},
		{"&x", false},
		{"x as u64", false},
		{"x as Pair<A, B>", false},
		{"a < b", false},
		{"f(a) < g(b)", false},
		{"a..b", false},
		{"if c { 1 } else { 2 }", false},
		{"|a, b| a + b", false},
		{"move || x", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c := newCursor(t, tt.src)

			e, err := c.parseExpr("expression", ",")
			require.NoError(t, err)
			assert.Equal(t, tt.src, e.Text)
			assert.Equal(t, tt.atomic, e.Atomic)
			assert.True(t, c.EOF())
		})
	}
}

func TestParseExprStopsAtTopLevelComma(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"f(a, b), rest", "f(a, b)"},
		{"HashMap::<K, V>::new(), rest", "HashMap::<K, V>::new()"},
		{"|a, b| a + b, rest", "|a, b| a + b"},
		{"[1, 2], rest", "[1, 2]"},
		{"<HashMap<K, V> as Default>::default(), rest", "<HashMap<K, V> as Default>::default()"},
		{"x as Pair<A, B>, rest", "x as Pair<A, B>"},
		{"a + <T as Into<U>>::into(b), rest", "a + <T as Into<U>>::into(b)"},
		{"&x as &Pair<A, B>, rest", "&x as &Pair<A, B>"},
		{"a < b, c > d", "a < b"},
		{"x as u8 < y, rest", "x as u8 < y"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c := newCursor(t, tt.src)

			e, err := c.parseExpr("expression", ",")
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Text)
			assert.True(t, c.peekPunct(","))
		})
	}
}
