package lexer

import (
	"uwscript/internal/diag"
	"uwscript/internal/source"
	"uwscript/internal/token"
)

// maxTokenLength ограничивает длину одного токена (строки и textblock тоже).
const maxTokenLength = 1 << 20

// dllState отслеживает строку def_dll: глубину скобок и начало пути к библиотеке.
type dllState struct {
	depth       int
	pathPending bool
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia

	callPending  bool      // следующий значимый токен: цель call
	dll          *dllState // не nil внутри строки def_dll
	textArmed    bool      // был textblock, ждём конца строки
	textBodyNext bool      // следующий токен: тело textblock
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File { return lx.file }

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.textBodyNext {
		lx.textBodyNext = false
		return lx.scanTextBlockBody()
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Leading: lx.takeHold(),
		}
	}

	var tok token.Token
	switch {
	case lx.dll != nil && lx.dll.pathPending:
		tok = lx.scanDllPath()
	case lx.callPending:
		lx.callPending = false
		tok = lx.scanCallTarget()
	default:
		tok = lx.scanToken()
	}

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token is too long")
		lx.cursor.Finish()
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}

	lx.afterToken(tok)
	tok.Leading = lx.takeHold()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == '\n' || ch == ';':
		return lx.scanEOL()
	case ch == '_' || isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '$':
		return lx.scanHex()
	case ch == '"' || ch == '\'':
		return lx.scanString(ch)
	case ch == '@':
		return lx.scanUObject()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// afterToken переключает режимы лексера по только что выданному токену.
func (lx *Lexer) afterToken(tok token.Token) {
	switch tok.Kind {
	case token.KwCall:
		lx.callPending = true
	case token.KwDefDll:
		lx.dll = &dllState{}
	case token.KwTextBlock, token.KwTextBlockEx:
		lx.textArmed = true
	case token.DllPath:
		lx.dll = nil
	case token.EOL, token.EOF:
		lx.dll = nil
		lx.callPending = false
		if lx.textArmed && tok.Kind == token.EOL {
			lx.textBodyNext = true
		}
		lx.textArmed = false
	case token.LParen:
		if lx.dll != nil {
			lx.dll.depth++
		}
	case token.RParen:
		if lx.dll != nil && lx.dll.depth > 0 {
			lx.dll.depth--
		}
	case token.Colon:
		if lx.dll != nil && lx.dll.depth == 0 && lx.colonStartsDllPath() {
			lx.dll.pathPending = true
		}
	}
}

func (lx *Lexer) scanEOL() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.EOL, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := lx.hold
	lx.hold = nil
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Tokenize returns every token of file up to and including EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
