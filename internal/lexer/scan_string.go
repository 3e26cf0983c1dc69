package lexer

import (
	"strings"

	"uwscript/internal/diag"
	"uwscript/internal/token"
)

// scanString: "..." (раскрываемая) и '...' (простая) строки. Escape-последовательностей
// нет, строка может занимать несколько строк. '_' в конце строки склеивает её со
// следующей: сам '_', хвост строки и перевод строки выбрасываются.
// Token.Text: значение без кавычек.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	kind := token.StringLit
	if quote == '\'' {
		kind = token.RawStringLit
	}
	lx.cursor.Bump() // открывающая кавычка

	var sb strings.Builder
	join := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: sb.String()}
		case b == '\n':
			lx.cursor.Bump()
			if join {
				join = false
				continue
			}
			sb.WriteByte(b)
		case b == '_' && lx.willEndLine():
			join = true
			lx.cursor.Bump()
		case join:
			lx.cursor.Bump()
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: kind, Span: sp, Text: sb.String()}
}

// willEndLine: после текущего '_' до конца строки только пробелы или комментарий.
func (lx *Lexer) willEndLine() bool {
	content := lx.cursor.Content()
	for i := int(lx.cursor.Off) + 1; i < len(content); i++ {
		switch content[i] {
		case ' ', '\t':
		case '\n':
			return true
		case '/':
			return i+1 < len(content) && content[i+1] == '/'
		case 0xE3: // U+3000 = E3 80 80
			if i+2 >= len(content) || content[i+1] != 0x80 || content[i+2] != 0x80 {
				return false
			}
			i += 2
		default:
			return false
		}
	}
	return true
}

// scanUObject: @{ ... }@ или @[ ... ]@. Text: JSON без '@', комментарии // вырезаны.
func (lx *Lexer) scanUObject() token.Token {
	start := lx.cursor.Mark()
	if next := lx.cursor.PeekAt(1); next != '{' && next != '[' {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexIllegalChar, sp, "'@' must start a UObject literal")
		return token.Token{Kind: token.Illegal, Span: sp, Text: "@"}
	}
	lx.cursor.Bump() // '@'

	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			sb.WriteByte(lx.cursor.Bump())
			for !lx.cursor.EOF() && lx.cursor.Peek() != '"' {
				sb.WriteByte(lx.cursor.Bump())
			}
			if !lx.cursor.EOF() {
				sb.WriteByte(lx.cursor.Bump())
			}
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case (b == '}' || b == ']') && lx.cursor.PeekAt(1) == '@':
			sb.WriteByte(lx.cursor.Bump())
			lx.cursor.Bump() // '@'
			return token.Token{Kind: token.UObjectLit, Span: lx.cursor.SpanFrom(start), Text: sb.String()}
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedUObject, sp, "UObject literal is not closed with '@'")
	return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
}
