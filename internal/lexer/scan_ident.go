package lexer

import (
	"uwscript/internal/diag"
	"uwscript/internal/token"
)

// scanIdentOrKeyword сканирует имя и проверяет через LookupKeyword.
// Ключевые слова регистронезависимые. Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	for {
		r, sz := lx.cursor.PeekRune()
		if sz == 0 || !isIdentRune(r) {
			break
		}
		lx.cursor.BumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		// невалидный UTF-8 байт
		lx.cursor.Bump()
		sp = lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexIllegalChar, sp, "invalid UTF-8 sequence")
		return token.Token{Kind: token.Illegal, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
