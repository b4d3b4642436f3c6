package token

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a token.
type Kind int

const (
	_ Kind = iota // skip zero value so an unset Kind is detectable

	KindIdent
	KindLifetime
	KindLiteral
	KindPunct
	KindDocComment
)
