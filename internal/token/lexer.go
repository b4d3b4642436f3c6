package token

import (
	"fmt"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Rule names of the lexer definition. Rules are tried in order, the first
// match wins, so longer punctuation must precede its prefixes.
const (
	ruleDocComment = "DocComment"
	ruleComment    = "Comment"
	ruleWhitespace = "Whitespace"
	ruleRawString  = "RawString"
	ruleString     = "String"
	ruleChar       = "Char"
	ruleLifetime   = "Lifetime"
	ruleNumber     = "Number"
	ruleIdent      = "Ident"
	rulePunct      = "Punct"
	ruleOther      = "Other"
)

var definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: ruleDocComment, Pattern: `///[^\n]*|//![^\n]*|/\*\*(?s:.*?)\*/`},
	{Name: ruleComment, Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: ruleWhitespace, Pattern: `\s+`},
	{Name: ruleRawString, Pattern: `b?r#"(?s:.*?)"#|b?r"[^"]*"`},
	{Name: ruleString, Pattern: `b?"(?:\\.|[^\\"])*"`},
	{Name: ruleChar, Pattern: `b?'(?:\\u\{[0-9a-fA-F]+\}|\\x[0-9a-fA-F]{2}|\\.|[^\\'\n])'`},
	{Name: ruleLifetime, Pattern: `'[\p{L}_][\p{L}\p{N}_]*`},
	{Name: ruleNumber, Pattern: `[0-9][0-9_]*(?:\.[0-9][0-9_]*)?(?:[eE][+-]?[0-9_]+)?[\p{L}\p{N}_]*`},
	{Name: ruleIdent, Pattern: `r#[\p{L}_][\p{L}\p{N}_]*|[\p{L}_][\p{L}\p{N}_]*`},
	{Name: rulePunct, Pattern: `\.\.=|\.\.\.|\.\.|::|->|=>|==|!=|<=|>=|&&|\|\||[-+*/%^!&|=<>@.,;:#$?~()\[\]{}]`},
	{Name: ruleOther, Pattern: `[\s\S]`},
})

// kinds maps participle token types to token kinds. Types missing from the
// map (whitespace, comments) are dropped.
var kinds = func() map[lexer.TokenType]Kind {
	symbols := definition.Symbols()
	byRule := map[string]Kind{
		ruleDocComment: KindDocComment,
		ruleRawString:  KindLiteral,
		ruleString:     KindLiteral,
		ruleChar:       KindLiteral,
		ruleLifetime:   KindLifetime,
		ruleNumber:     KindLiteral,
		ruleIdent:      KindIdent,
		rulePunct:      KindPunct,
		ruleOther:      KindPunct,
	}

	out := make(map[lexer.TokenType]Kind, len(byRule))
	for name, kind := range byRule {
		out[symbols[name]] = kind
	}

	return out
}()

// Lex tokenizes src. Delimiters are matched; an unbalanced delimiter is
// reported as *Error.
func Lex(filename, src string) ([]Token, error) {
	lex, err := definition.LexString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("lexing %s: %w", filename, err)
	}

	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("lexing %s: %w", filename, err)
	}

	toks := make([]Token, 0, len(raw))

	for _, t := range raw {
		if t.EOF() {
			break
		}

		kind, ok := kinds[t.Type]
		if !ok {
			continue
		}

		start := Pos{
			Filename: filename,
			Offset:   t.Pos.Offset,
			Line:     t.Pos.Line,
			Column:   t.Pos.Column,
		}

		toks = append(toks, Token{
			Kind:  kind,
			Text:  t.Value,
			Span:  Span{Start: start, End: advance(start, t.Value)},
			Match: -1,
		})
	}

	if err := matchDelimiters(toks); err != nil {
		return nil, err
	}

	return toks, nil
}

// advance returns the position right after text when text starts at p.
func advance(p Pos, text string) Pos {
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		p.Offset += size

		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}

	return p
}

var closing = map[string]string{"(": ")", "[": "]", "{": "}"}

func matchDelimiters(toks []Token) error {
	var stack []int

	for i := range toks {
		switch {
		case toks[i].IsOpen():
			stack = append(stack, i)
		case toks[i].IsClose():
			if len(stack) == 0 {
				return &Error{Span: toks[i].Span, Msg: fmt.Sprintf("unexpected closing delimiter `%s`", toks[i].Text)}
			}

			open := stack[len(stack)-1]
			if closing[toks[open].Text] != toks[i].Text {
				return &Error{
					Span: toks[i].Span,
					Msg: fmt.Sprintf("mismatched closing delimiter `%s`, expected `%s` to close `%s` at %s",
						toks[i].Text, closing[toks[open].Text], toks[open].Text, toks[open].Span.Start),
				}
			}

			stack = stack[:len(stack)-1]
			toks[open].Match = i
			toks[i].Match = open
		}
	}

	if len(stack) > 0 {
		open := toks[stack[len(stack)-1]]
		return &Error{Span: open.Span, Msg: fmt.Sprintf("unclosed delimiter `%s`", open.Text)}
	}

	return nil
}

// Next returns the index of the token following the one at i, skipping a
// whole group when toks[i] opens one.
func Next(toks []Token, i int) int {
	if toks[i].IsOpen() {
		return toks[i].Match + 1
	}

	return i + 1
}
