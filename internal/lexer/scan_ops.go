package lexer

import (
	"fmt"

	"uwscript/internal/diag"
	"uwscript/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	switch {
	case lx.cursor.EatPair('=', '='):
		return emit(token.EqEq)
	case lx.cursor.EatPair('=', '>'):
		return emit(token.FatArrow)
	case lx.cursor.EatPair('<', '>'), lx.cursor.EatPair('!', '='):
		return emit(token.NotEq)
	case lx.cursor.EatPair('<', '='):
		return emit(token.LtEq)
	case lx.cursor.EatPair('>', '='):
		return emit(token.GtEq)
	case lx.cursor.EatPair(':', '='):
		return emit(token.Assign)
	case lx.cursor.EatPair('+', '='):
		return emit(token.PlusAssign)
	case lx.cursor.EatPair('-', '='):
		return emit(token.MinusAssign)
	case lx.cursor.EatPair('*', '='):
		return emit(token.StarAssign)
	case lx.cursor.EatPair('/', '='):
		return emit(token.SlashAssign)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '=':
		return emit(token.Eq)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '?':
		return emit(token.Question)
	case ':':
		return emit(token.Colon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '|':
		return emit(token.Pipe)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexIllegalChar, sp, fmt.Sprintf("illegal character %q", ch))
		return token.Token{Kind: token.Illegal, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}
