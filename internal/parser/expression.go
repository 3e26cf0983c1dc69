package parser

import (
	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/source"
	"uwscript/internal/symbols"
	"uwscript/internal/token"
)

// exprCtx: флаги контекста разбора выражения.
type exprCtx uint8

const (
	ctxDefault exprCtx = 0
	// ctxStartOfLine: выражение открывает оператор.
	ctxStartOfLine exprCtx = 1 << iota
	// ctxLambda: тело лямбды |a => ...|.
	ctxLambda
	// ctxNotAccess: идентификатор не записывается как обращение (ключи hash).
	ctxNotAccess
)

func (c exprCtx) has(f exprCtx) bool { return c&f != 0 }

// pendingIdent: идентификатор, роль которого (чтение или запись) станет
// известна только после инфиксного цикла.
type pendingIdent struct {
	name string
	sp   source.Span
	set  bool
}

func (pi *pendingIdent) resolve(p *Parser, u symbols.Usage) {
	if pi == nil || !pi.set {
		return
	}
	pi.set = false
	p.tracker.Record(u, pi.name, pi.sp)
}

// parseExpr: Pratt: префикс, затем инфиксный цикл, пока приоритет
// следующего оператора выше minPrec.
func (p *Parser) parseExpr(minPrec int, ctx exprCtx) (*ast.Expr, bool) {
	startTok := p.peek()
	pend := &pendingIdent{}
	left, done, ok := p.parsePrefix(ctx, pend)
	if !ok {
		return nil, false
	}
	if done {
		return left, true
	}
	sol := ctx.has(ctxStartOfLine) && p.strict()
	canAssign := ctx.has(ctxStartOfLine) || ctx.has(ctxLambda)

	for {
		tok := p.peek()
		prec := infixPrec(tok.Kind)
		if prec <= minPrec {
			break
		}
		switch tok.Kind {
		case token.Assign:
			p.advance()
			if !left.IsAssignable() {
				p.errAt(diag.SynNotAssignable, startTok.Span.Cover(tok.Span), "left side of ':=' is not assignable")
				return nil, false
			}
			right, ok := p.parseExpr(precLowest, ctxDefault)
			if !ok {
				return nil, false
			}
			if left.Kind == ast.ExprIdent {
				pend.resolve(p, symbols.Assignment)
			}
			left = ast.Assign(left, right)

		case token.Question:
			p.advance()
			then, ok := p.parseExpr(precLowest, ctxDefault)
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in ternary expression"); !ok {
				return nil, false
			}
			els, ok := p.parseExpr(precLowest, ctxDefault)
			if !ok {
				return nil, false
			}
			left = ast.Ternary(left, then, els)

		case token.LBracket:
			idx, ok := p.parseIndex(left)
			if !ok {
				return nil, false
			}
			left = idx
			if canAssign {
				if e, matched, ok := p.tryAssignment(left, startTok.Span, pend); matched || !ok {
					pend.resolve(p, symbols.Access)
					return e, ok
				}
			}

		case token.LParen:
			p.advance()
			args, ok := p.parseCallArgs()
			if !ok {
				return nil, false
			}
			left = ast.Call(left, args...)

		case token.Dot:
			p.advance()
			name, ok := p.parseMemberName()
			if !ok {
				return nil, false
			}
			left = ast.DotCall(left, name)
			if canAssign {
				if e, matched, ok := p.tryAssignment(left, startTok.Span, pend); matched || !ok {
					pend.resolve(p, symbols.Access)
					return e, ok
				}
			}

		case token.Eq:
			if sol {
				// obj.prop(i) = v
				if left.Kind == ast.ExprCall && left.X != nil && left.X.Kind == ast.ExprDotCall {
					e, _, ok := p.tryAssignment(left, startTok.Span, pend)
					pend.resolve(p, symbols.Access)
					return e, ok
				}
				p.advance()
				p.errAt(diag.SynUnexpectedToken, tok.Span, "unexpected '=' in statement")
				return nil, false
			}
			p.advance()
			right, ok := p.parseExpr(prec, ctxDefault)
			if !ok {
				return nil, false
			}
			left = ast.Infix(ast.OpEq, left, right)

		default:
			op, _ := infixOp(tok.Kind)
			if sol {
				p.advance()
				p.errAt(diag.SynUnexpectedToken, tok.Span, "unexpected "+quote(tok)+" in statement")
				return nil, false
			}
			p.advance()
			right, ok := p.parseExpr(prec, ctxDefault)
			if !ok {
				return nil, false
			}
			left = ast.Infix(op, left, right)
		}
	}

	pend.resolve(p, symbols.Access)
	return left, true
}

// tryAssignment: если дальше '=' или составное присваивание, разбирает
// присваивание в left. matched == false: оператора присваивания нет.
func (p *Parser) tryAssignment(left *ast.Expr, start source.Span, pend *pendingIdent) (e *ast.Expr, matched, ok bool) {
	tok := p.peek()
	cop, isCompound := compoundOp(tok.Kind)
	if tok.Kind != token.Eq && !isCompound {
		return left, false, true
	}
	p.advance()
	if !left.IsAssignable() {
		p.errAt(diag.SynNotAssignable, start.Cover(tok.Span), "left side of "+quote(tok)+" is not assignable")
		return nil, true, false
	}
	right, ok := p.parseExpr(precLowest, ctxDefault)
	if !ok {
		return nil, true, false
	}
	if left.Kind == ast.ExprIdent {
		pend.resolve(p, symbols.Assignment)
	}
	if isCompound {
		return ast.CompoundAssign(cop, left, right), true, true
	}
	return ast.Assign(left, right), true, true
}
