package parser

import (
	"strconv"

	"fortio.org/safecast"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/source"
	"uwscript/internal/token"
)

// advance продвигает парсер на один токен
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	k := p.lx.Peek().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// atLineEnd: конец оператора (EOL или EOF).
func (p *Parser) atLineEnd() bool {
	return p.lx.Peek().EndsStatement()
}

func (p *Parser) skipEOLs() {
	for p.at(token.EOL) {
		p.advance()
	}
}

// skipLine пропускает токены до конца строки включительно; используется для восстановления.
func (p *Parser) skipLine() {
	for !p.atLineEnd() {
		p.advance()
	}
	if p.at(token.EOL) {
		p.advance()
	}
}

// expect: если текущий токен имеет ожидаемый тип, съедает его и возвращает true.
// Иначе репортит ошибку и возвращает false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == k {
		return p.advance(), true
	}
	p.failAt(tok, code, msg)
	return tok, false
}

// expectLineEnd: после оператора допустим только конец строки.
func (p *Parser) expectLineEnd() bool {
	if p.atLineEnd() {
		return true
	}
	tok := p.peek()
	p.failAt(tok, diag.SynUnexpectedToken, "unexpected "+quote(tok)+", expected end of line")
	return false
}

// failAt репортит ошибку на tok, кроме токенов, о которых уже сообщил лексер.
func (p *Parser) failAt(tok token.Token, code diag.Code, msg string) {
	if tok.Kind == token.Invalid || tok.Kind == token.Illegal {
		return
	}
	sp := tok.Span
	if tok.Kind == token.EOL || tok.Kind == token.EOF {
		sp = p.lastSpan.ZeroideToEnd()
	}
	p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	full := p.opts.Enough()
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.reporter != nil && !full {
		p.reporter.Report(code, sev, sp, msg, nil, nil)
		return true
	}
	return false
}

// getDiagnosticSpan: span текущего токена, либо позиция после последнего
// съеденного, если впереди конец строки.
func (p *Parser) getDiagnosticSpan() source.Span {
	tok := p.peek()
	if tok.EndsStatement() {
		return p.lastSpan.ZeroideToEnd()
	}
	return tok.Span
}

// spanToLineEnd: от start до последнего токена строки. Токены съедаются.
func (p *Parser) spanToLineEnd(start source.Span) source.Span {
	sp := start
	for !p.atLineEnd() {
		sp = sp.Cover(p.advance().Span)
	}
	return sp
}

// rowOf: номер строки (с 1) начала span.
func (p *Parser) rowOf(sp source.Span) int {
	return int(p.fs.Position(sp.File, sp.Start).Line)
}

func (p *Parser) lineText(row int) string {
	n, err := safecast.Conv[uint32](row)
	if err != nil {
		return ""
	}
	return p.file.GetLine(n)
}

// lineSpan: span всей строки row без перевода строки.
func (p *Parser) lineSpan(row int) source.Span {
	sp := source.Span{File: p.file.ID}
	n, err := safecast.Conv[uint32](row)
	if err != nil || n == 0 {
		return sp
	}
	idx := p.file.LineIdx
	end, err := safecast.Conv[uint32](len(p.file.Content))
	if err != nil {
		return sp
	}
	if n >= 2 && int(n-2) < len(idx) {
		sp.Start = idx[n-2] + 1
	}
	if int(n-1) < len(idx) {
		end = idx[n-1]
	}
	if end < sp.Start {
		end = sp.Start
	}
	sp.End = end
	return sp
}

// newStmt привязывает оператор к строке, на которой он начался.
func (p *Parser) newStmt(s *ast.Stmt, start source.Span) ast.StatementWithRow {
	row := p.rowOf(start)
	return ast.NewStmt(s, row, p.lineText(row), p.name)
}

func isBlockEnd(k token.Kind) bool {
	switch k {
	case token.KwElse, token.KwElseIf, token.KwEndIf,
		token.KwCase, token.KwDefault, token.KwSelend,
		token.KwNext, token.KwEndFor, token.KwWend, token.KwUntil,
		token.KwEndWith, token.KwExcept, token.KwFinally, token.KwEndTry,
		token.KwFend, token.KwEndModule, token.KwEndClass,
		token.KwEndStruct, token.KwEndEnum, token.KwEndHash, token.KwEndTextBlock:
		return true
	}
	return false
}

// expectCloser съедает один из закрывающих ключевых слов блока.
func (p *Parser) expectCloser(kinds ...token.Kind) bool {
	tok := p.peek()
	for _, k := range kinds {
		if tok.Kind == k {
			p.advance()
			return true
		}
	}
	want := kinds[0].String()
	for _, k := range kinds[1:] {
		want += " or " + k.String()
	}
	found := quote(tok)
	if tok.Kind == token.EOF {
		found = "end of file"
	}
	p.failAt(tok, diag.SynBlockEndMismatch, "expected "+want+", found "+found)
	return false
}

func quote(tok token.Token) string {
	switch tok.Kind {
	case token.EOL:
		return "end of line"
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "'" + tok.Text + "'"
	case token.StringLit, token.RawStringLit:
		return "string literal"
	}
	if tok.Kind.IsKeyword() {
		return "'" + tok.Kind.String() + "'"
	}
	if tok.Text != "" {
		return "'" + tok.Text + "'"
	}
	return "'" + tok.Kind.String() + "'"
}

func itoa(n int) string { return strconv.Itoa(n) }
