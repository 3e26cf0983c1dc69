package parser

import (
	"strconv"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/token"
)

// parseOption: option name [= value[, value]].
// Булевы опции без значения включаются; explicit и optpublic сразу
// переключают проверки имён.
func (p *Parser) parseOption() (*ast.Stmt, bool) {
	p.advance()
	nameTok := p.peek()
	if nameTok.Kind != token.Ident && !nameTok.Kind.IsKeyword() {
		p.failAt(nameTok, diag.SynExpectIdentifier, "expected option name, found "+quote(nameTok))
		return nil, false
	}
	p.advance()
	name, ok := ast.LookupOption(nameTok.Text)
	if !ok {
		p.errAt(diag.SynUnexpectedOption, nameTok.Span, "unknown option '"+nameTok.Text+"'")
		return nil, false
	}
	opt := &ast.OptionSetting{Name: name}

	if name.ValueKind() == ast.OptValueBool && p.atLineEnd() {
		opt.Bool = true
		p.applyOption(opt)
		return &ast.Stmt{Kind: ast.StmtOption, Option: opt}, true
	}
	if _, ok := p.expect(token.Eq, diag.SynInvalidOptionValue, "option '"+name.String()+"' requires a value"); !ok {
		return nil, false
	}

	bad := func(tok token.Token, want string) (*ast.Stmt, bool) {
		p.failAt(tok, diag.SynInvalidOptionValue, "option '"+name.String()+"' expects "+want+", found "+quote(tok))
		return nil, false
	}
	tok := p.peek()
	switch name.ValueKind() {
	case ast.OptValueBool:
		switch tok.Kind {
		case token.KwTrue, token.KwFalse:
			p.advance()
			opt.Bool = tok.Kind == token.KwTrue
		default:
			return bad(tok, "true or false")
		}
	case ast.OptValueString:
		if tok.Kind != token.StringLit && tok.Kind != token.RawStringLit {
			return bad(tok, "a string")
		}
		p.advance()
		opt.Str = tok.Text
	case ast.OptValueNumber:
		n, ok := p.optionNumber()
		if !ok {
			return bad(tok, "a number")
		}
		opt.Num = n
	case ast.OptValuePosition:
		x, ok := p.optionNumber()
		if !ok {
			return bad(tok, "x, y")
		}
		if _, ok := p.expect(token.Comma, diag.SynInvalidOptionValue, "option 'position' expects x, y"); !ok {
			return nil, false
		}
		yTok := p.peek()
		y, ok := p.optionNumber()
		if !ok {
			return bad(yTok, "x, y")
		}
		opt.X, opt.Y = x, y
	}
	p.applyOption(opt)
	return &ast.Stmt{Kind: ast.StmtOption, Option: opt}, true
}

// optionNumber съедает число со знаком.
func (p *Parser) optionNumber() (float64, bool) {
	neg := false
	if p.at(token.Minus) {
		p.advance()
		neg = true
	}
	tok := p.peek()
	if tok.Kind != token.IntLit && tok.Kind != token.FloatLit {
		return 0, false
	}
	p.advance()
	n, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// applyOption включает проверки по OPTION. OPTION вызванного скрипта
// ни на что не влияет: все скрипты проверяются по флагам основного.
func (p *Parser) applyOption(opt *ast.OptionSetting) {
	if p.tracker.Depth() > 0 {
		return
	}
	switch opt.Name {
	case ast.OptExplicit:
		p.tracker.SetExplicit(opt.Bool || p.opts.Explicit)
	case ast.OptOptPublic:
		p.tracker.SetOptPublic(opt.Bool || p.opts.OptPublic)
	}
}
