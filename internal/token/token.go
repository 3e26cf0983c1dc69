package token

import (
	"uwscript/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token starts a literal expression.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, RawStringLit, UObjectLit,
		HexLit, KwTrue, KwFalse, KwNull, KwEmpty, KwNothing, KwNaN:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind.IsKeyword()
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// SpaceBefore reports whether whitespace or a line continuation precedes the token.
func (t Token) SpaceBefore() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaSpace || tr.Kind == TriviaContinuation {
			return true
		}
	}
	return false
}

// EndsStatement reports whether the token terminates a statement.
func (t Token) EndsStatement() bool {
	return t.Kind == EOL || t.Kind == EOF
}
