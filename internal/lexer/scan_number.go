package lexer

import (
	"uwscript/internal/diag"
	"uwscript/internal/token"
)

// Числа: 123, 1.5, "1." допустимо (одна точка), экспоненты нет.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanHex: $FF, $1234AB. Text включает '$'.
func (lx *Lexer) scanHex() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	for isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if sp.Len() == 1 {
		lx.errLex(diag.LexBadNumber, sp, "expected hex digits after '$'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.HexLit, Span: sp, Text: text}
}
