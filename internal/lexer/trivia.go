package lexer

import (
	"uwscript/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t' и U+3000 коалесцируются в один TriviaSpace
// - //... до \n -> TriviaLineComment (сам \n остаётся и станет EOL)
// - //- пропускается, остаток строки лексится как код
// - '_' перед концом строки (или перед не-именем) -> TriviaContinuation, \n съедается
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()

		switch {
		case lx.cursor.SkipBlanks():
			lx.pushTrivia(token.TriviaSpace, start)
		case lx.cursor.HasPrefix("//-"):
			lx.cursor.Off += 3
			lx.pushTrivia(token.TriviaMarker, start)
		case lx.cursor.HasPrefix("//"):
			lx.cursor.SkipLine()
			lx.pushTrivia(token.TriviaLineComment, start)
		case lx.cursor.Peek() == '_' && lx.isContinuation():
			lx.cursor.Bump()
			lx.skipToLineEnd()
			lx.cursor.Eat('\n')
			lx.pushTrivia(token.TriviaContinuation, start)
		default:
			return
		}
	}
}

// isContinuation: '_' за которым нет символа имени.
func (lx *Lexer) isContinuation() bool {
	next := lx.cursor.PeekAt(1)
	if next == 0 {
		return true
	}
	if next >= utf8RuneSelf {
		return false
	}
	return !isIdentContinueByte(next)
}

// skipToLineEnd пропускает пробелы и комментарий после '_' продолжения строки.
// Если после '_' стоит код, курсор остаётся перед ним.
func (lx *Lexer) skipToLineEnd() {
	mark := lx.cursor.Mark()
	lx.cursor.SkipBlanks()
	switch {
	case lx.cursor.EOF(), lx.cursor.Peek() == '\n':
	case lx.cursor.HasPrefix("//"):
		lx.cursor.SkipLine()
	default:
		lx.cursor.Reset(mark)
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
