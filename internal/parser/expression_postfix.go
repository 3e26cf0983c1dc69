package parser

import (
	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/token"
)

// parseIndex: x[i] или x[i, hashEnum]. Текущий токен: '['.
func (p *Parser) parseIndex(left *ast.Expr) (*ast.Expr, bool) {
	lb := p.advance()
	if p.at(token.RBracket) {
		rb := p.advance()
		p.errAt(diag.SynMissingIndex, lb.Span.Cover(rb.Span), "index is required")
		return nil, false
	}
	idx, ok := p.parseExpr(precLowest, ctxDefault)
	if !ok {
		return nil, false
	}
	var hash *ast.Expr
	if p.at(token.Comma) {
		p.advance()
		hash, ok = p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']'"); !ok {
		return nil, false
	}
	return ast.Index(left, idx, hash), true
}

// parseCallArgs разбирает аргументы после '('. Пропущенный аргумент
// становится EmptyArg: f(, , 4) → [E, E, 4], f(1, ) → [1, E].
func (p *Parser) parseCallArgs() ([]*ast.Expr, bool) {
	p.skipEOLs()
	if p.at(token.RParen) {
		p.advance()
		return nil, true
	}
	var args []*ast.Expr
	for {
		p.skipEOLs()
		switch p.peek().Kind {
		case token.Comma:
			p.advance()
			args = append(args, ast.EmptyArg())
			continue
		case token.RParen:
			p.advance()
			args = append(args, ast.EmptyArg())
			return args, true
		}
		arg, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		p.skipEOLs()
		if p.at(token.Comma) {
			p.advance()
			if p.skipEOLs(); p.at(token.RParen) {
				p.advance()
				return append(args, ast.EmptyArg()), true
			}
			continue
		}
		if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ',' or ')' in argument list"); !ok {
			return nil, false
		}
		return args, true
	}
}

// parseExprList: список через запятую до end. С end == EOL список
// заканчивается концом строки, сам EOL не съедается.
func (p *Parser) parseExprList(end token.Kind) ([]*ast.Expr, bool) {
	toEOL := end == token.EOL
	if toEOL {
		if p.atLineEnd() {
			return nil, true
		}
	} else {
		p.skipEOLs()
		if p.at(end) {
			p.advance()
			return nil, true
		}
	}
	var items []*ast.Expr
	for {
		item, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false
		}
		items = append(items, item)
		if !toEOL {
			p.skipEOLs()
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if !toEOL {
			p.skipEOLs()
		}
	}
	if toEOL {
		if !p.atLineEnd() {
			tok := p.peek()
			p.failAt(tok, diag.SynUnexpectedToken, "unexpected "+quote(tok)+", expected ',' or end of line")
			return nil, false
		}
		return items, true
	}
	if _, ok := p.expect(end, diag.SynUnexpectedToken, "expected ',' or '"+end.String()+"'"); !ok {
		return nil, false
	}
	return items, true
}
