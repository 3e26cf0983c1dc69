package parser

import (
	"strconv"
	"strings"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/symbols"
	"uwscript/internal/token"
)

// parsePrefix разбирает первичное выражение. done == true означает, что
// выражение уже полное (присваивание в начале оператора).
func (p *Parser) parsePrefix(ctx exprCtx, pend *pendingIdent) (e *ast.Expr, done, ok bool) {
	tok := p.peek()
	sol := ctx.has(ctxStartOfLine) && p.strict()

	// оператор не может быть просто литералом
	if sol {
		switch {
		case tok.IsLiteral(), tok.Kind == token.LBracket, tok.Kind == token.KwComErrFlg:
			p.advance()
			p.errAt(diag.SynUnexpectedToken, tok.Span, "statement cannot start with "+quote(tok))
			return nil, false, false
		}
		if _, isPrefix := prefixOp(tok.Kind); isPrefix {
			p.advance()
			p.errAt(diag.SynUnexpectedToken, tok.Span, "statement cannot start with "+quote(tok))
			return nil, false, false
		}
	}

	switch tok.Kind {
	case token.Ident:
		return p.parseIdentExpr(ctx, pend)

	case token.IntLit, token.FloatLit:
		p.advance()
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.errAt(diag.LexBadNumber, tok.Span, "invalid number literal "+quote(tok))
			return nil, false, false
		}
		return ast.Num(n), false, true

	case token.HexLit:
		p.advance()
		return p.parseHex(tok)

	case token.StringLit:
		p.advance()
		return ast.ExpandStr(tok.Text), false, true
	case token.RawStringLit:
		p.advance()
		return ast.Str(tok.Text), false, true
	case token.UObjectLit:
		p.advance()
		return &ast.Expr{Kind: ast.ExprUObject, Raw: tok.Text}, false, true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return ast.Bool(tok.Kind == token.KwTrue), false, true
	case token.KwNull:
		p.advance()
		return ast.Lit(ast.LitNull), false, true
	case token.KwEmpty:
		p.advance()
		return ast.Empty(), false, true
	case token.KwNothing:
		p.advance()
		return ast.Lit(ast.LitNothing), false, true
	case token.KwNaN:
		p.advance()
		return ast.Lit(ast.LitNaN), false, true
	case token.KwComErrFlg:
		p.advance()
		return &ast.Expr{Kind: ast.ExprComErrFlg}, false, true

	case token.LBracket:
		p.advance()
		items, ok := p.parseExprList(token.RBracket)
		if !ok {
			return nil, false, false
		}
		return ast.Array(items, nil), false, true

	case token.LParen:
		p.advance()
		p.skipEOLs()
		inner, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false, false
		}
		p.skipEOLs()
		if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')'"); !ok {
			return nil, false, false
		}
		return inner, false, true

	case token.Bang, token.Minus, token.Plus:
		p.advance()
		op, _ := prefixOp(tok.Kind)
		x, ok := p.parseExpr(precPrefix, ctxDefault)
		if !ok {
			return nil, false, false
		}
		return ast.Prefix(op, x), false, true

	case token.KwVar, token.KwRef:
		p.advance()
		if ctx.has(ctxStartOfLine) {
			p.errAt(diag.SynInvalidRefArg, tok.Span, quote(tok)+" is only allowed in a call argument")
			return nil, false, false
		}
		x, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false, false
		}
		return &ast.Expr{Kind: ast.ExprRefArg, X: x}, false, true

	case token.KwFunction, token.KwProcedure:
		e, ok := p.parseAnonFunc()
		return e, false, ok

	case token.Pipe:
		e, ok := p.parseLambda()
		return e, false, ok

	case token.KwAwait:
		p.advance()
		x, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false, false
		}
		if !x.IsCall() {
			p.errAt(diag.SynInvalidAwait, tok.Span.Cover(p.lastSpan), "await requires a function call")
			return nil, false, false
		}
		return &ast.Expr{Kind: ast.ExprAwait, X: x}, false, true

	case token.Dot:
		return p.parseWithDot(ctx, pend)

	case token.EOL, token.EOF:
		p.failAt(tok, diag.SynExpectExpression, "expected expression")
		return nil, false, false
	}

	p.advance()
	if isReserved(tok.Kind) {
		p.failAt(tok, diag.SynReservedKeyword, quote(tok)+" is a reserved keyword")
	} else {
		p.failAt(tok, diag.SynExpectExpression, "expected expression, found "+quote(tok))
	}
	return nil, false, false
}

// parseHex: $FF → число; значения больше int64 переносятся в отрицательные, как в int64.
func (p *Parser) parseHex(tok token.Token) (*ast.Expr, bool, bool) {
	u, err := strconv.ParseUint(strings.TrimPrefix(tok.Text, "$"), 16, 64)
	if err != nil {
		p.errAt(diag.SynBadHexLiteral, tok.Span, "invalid hex literal "+quote(tok))
		return nil, false, false
	}
	return ast.Num(float64(int64(u))), false, true // #nosec G115 -- перенос задуман
}

// parseIdentExpr: имя в начале оператора сразу решает, присваивание это или нет.
func (p *Parser) parseIdentExpr(ctx exprCtx, pend *pendingIdent) (*ast.Expr, bool, bool) {
	tok := p.advance()
	ident := ast.Ident(tok.Text)
	if !ctx.has(ctxStartOfLine) && !ctx.has(ctxLambda) {
		if !ctx.has(ctxNotAccess) {
			*pend = pendingIdent{name: tok.Text, sp: tok.Span, set: true}
		}
		return ident, false, true
	}

	next := p.peek()
	switch next.Kind {
	case token.Assign, token.Dot, token.LParen, token.LBracket:
		*pend = pendingIdent{name: tok.Text, sp: tok.Span, set: true}
		return ident, false, true
	case token.Eq, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign:
		*pend = pendingIdent{name: tok.Text, sp: tok.Span, set: true}
		e, _, ok := p.tryAssignment(ident, tok.Span, pend)
		return e, true, ok
	}
	if !p.strict() || ctx.has(ctxLambda) || next.EndsStatement() {
		*pend = pendingIdent{name: tok.Text, sp: tok.Span, set: true}
		return ident, false, true
	}
	p.advance()
	p.failAt(next, diag.SynUnexpectedToken, "unexpected "+quote(next)+" after "+quote(tok))
	return nil, false, false
}

// parseWithDot: .member внутри with раскрывается в выражение with.
func (p *Parser) parseWithDot(ctx exprCtx, pend *pendingIdent) (*ast.Expr, bool, bool) {
	dot := p.advance()
	if len(p.with) == 0 {
		p.errAt(diag.SynOutOfWith, dot.Span, "'.' member access outside of with")
		return nil, false, false
	}
	name, ok := p.parseMemberName()
	if !ok {
		return nil, false, false
	}
	e := ast.DotCall(p.with[len(p.with)-1], name)
	if ctx.has(ctxStartOfLine) || ctx.has(ctxLambda) {
		if a, matched, ok := p.tryAssignment(e, dot.Span, pend); matched || !ok {
			return a, true, ok
		}
	}
	return e, false, true
}

// parseMemberName: имя после '.'; ключевые слова тоже допустимы (obj.Select).
func (p *Parser) parseMemberName() (string, bool) {
	tok := p.peek()
	if tok.Kind == token.Ident || tok.Kind.IsKeyword() {
		p.advance()
		return tok.Text, true
	}
	p.failAt(tok, diag.SynExpectIdentifier, "expected member name after '.'")
	return "", false
}

// isReserved: слова, которые нельзя использовать как имена.
func isReserved(k token.Kind) bool {
	switch k {
	case token.KwCall, token.KwMod,
		token.KwAnd, token.KwOr, token.KwXor,
		token.KwAndL, token.KwOrL, token.KwXorL,
		token.KwAndB, token.KwOrB, token.KwXorB,
		token.KwTrue, token.KwFalse, token.KwNull, token.KwEmpty, token.KwNothing,
		token.KwAsync, token.KwAwait, token.KwComErrFlg, token.KwNaN:
		return true
	}
	return false
}

// parseName съедает имя объявления и записывает его в трекер с ролью u.
func (p *Parser) parseName(u symbols.Usage, what string) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == token.Ident {
		p.advance()
		p.tracker.Record(u, tok.Text, tok.Span)
		return tok, true
	}
	if isReserved(tok.Kind) {
		p.advance()
		p.failAt(tok, diag.SynReservedKeyword, quote(tok)+" is a reserved keyword and cannot be used as "+what)
		return tok, false
	}
	p.failAt(tok, diag.SynExpectIdentifier, "expected "+what+", found "+quote(tok))
	return tok, false
}
