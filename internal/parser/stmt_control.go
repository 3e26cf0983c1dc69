package parser

import (
	"strconv"

	"fortio.org/safecast"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/symbols"
	"uwscript/internal/token"
)

// parseIf: однострочный `if c then s [else s]` или блочный if/ifb ... endif.
func (p *Parser) parseIf(isBlock bool) (*ast.Stmt, bool) {
	p.advance()
	cond, ok := p.parseExpr(precLowest, ctxDefault)
	if !ok {
		return nil, false
	}
	if p.at(token.KwThen) {
		p.advance()
	}

	if !p.atLineEnd() {
		if isBlock {
			tok := p.peek()
			p.failAt(tok, diag.SynUnexpectedToken, "ifb requires a block, found "+quote(tok))
			return nil, false
		}
		_, then, ok := p.parseStatement(true)
		if !ok {
			return nil, false
		}
		line := &ast.IfLineStmt{Cond: cond, Then: &then}
		if p.at(token.KwElse) {
			p.advance()
			_, els, ok := p.parseStatement(false)
			if !ok {
				return nil, false
			}
			line.Else = &els
		}
		return &ast.Stmt{Kind: ast.StmtIfSingle, IfLine: line}, true
	}

	st := &ast.IfStmt{Cond: cond}
	st.Then = p.parseBlock()
	for p.at(token.KwElseIf) {
		ei := p.advance()
		c, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false
		}
		if p.at(token.KwThen) {
			p.advance()
		}
		if !p.expectLineEnd() {
			return nil, false
		}
		condStmt := p.newStmt(&ast.Stmt{Kind: ast.StmtExpr, Expr: c}, ei.Span)
		st.ElseIfs = append(st.ElseIfs, ast.ElseIf{Cond: condStmt, Body: p.parseBlock()})
	}
	if p.at(token.KwElse) {
		p.advance()
		if !p.expectLineEnd() {
			return nil, false
		}
		st.Else = p.parseBlock()
	}
	if !p.expectCloser(token.KwEndIf) {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtIf, If: st}, true
}

// parseSelect: select expr / case v1, v2 / default / selend.
func (p *Parser) parseSelect() (*ast.Stmt, bool) {
	p.advance()
	e, ok := p.parseExpr(precLowest, ctxDefault)
	if !ok {
		return nil, false
	}
	if !p.expectLineEnd() {
		return nil, false
	}
	st := &ast.SelectStmt{Expr: e}
	for {
		p.skipEOLs()
		switch p.peek().Kind {
		case token.KwCase:
			p.advance()
			if p.atLineEnd() {
				p.err(diag.SynExpectExpression, "case requires at least one value")
				return nil, false
			}
			values, ok := p.parseExprList(token.EOL)
			if !ok {
				return nil, false
			}
			st.Cases = append(st.Cases, ast.CaseClause{Values: values, Body: p.parseBlock()})
			continue
		case token.KwDefault:
			p.advance()
			if !p.expectLineEnd() {
				return nil, false
			}
			st.Default = p.parseBlock()
			continue
		}
		break
	}
	if !p.expectCloser(token.KwSelend) {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtSelect, Select: st}, true
}

// parseFor: for v = a to b [step c] или for v[, i][, last] in coll.
// Закрывается next или endfor; необязательный else хранится отдельным блоком.
func (p *Parser) parseFor() (*ast.Stmt, bool) {
	p.advance()
	v, ok := p.parseName(symbols.Assignment, "loop variable")
	if !ok {
		return nil, false
	}
	var index, last string
	extra := p.peek()
	hasExtra := false
	if p.at(token.Comma) {
		p.advance()
		hasExtra = true
		if !p.at(token.Comma) {
			t, ok := p.parseName(symbols.Assignment, "index variable")
			if !ok {
				return nil, false
			}
			index = t.Text
		}
		if p.at(token.Comma) {
			p.advance()
			t, ok := p.parseName(symbols.Assignment, "variable")
			if !ok {
				return nil, false
			}
			last = t.Text
		}
	}

	var stmt *ast.Stmt
	switch tok := p.peek(); tok.Kind {
	case token.Eq:
		if hasExtra {
			p.errAt(diag.SynUnexpectedToken, extra.Span.Cover(p.lastSpan), "index variables are only allowed in for-in")
			return nil, false
		}
		p.advance()
		from, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.KwTo, diag.SynUnexpectedToken, "expected 'to' in for statement"); !ok {
			return nil, false
		}
		to, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false
		}
		fs := &ast.ForStmt{Var: v.Text, From: from, To: to}
		if p.at(token.KwStep) {
			p.advance()
			step, ok := p.parseExpr(precLowest, ctxDefault)
			if !ok {
				return nil, false
			}
			fs.Step = step
		}
		stmt = &ast.Stmt{Kind: ast.StmtFor, For: fs}
	case token.KwIn:
		p.advance()
		coll, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return nil, false
		}
		stmt = &ast.Stmt{Kind: ast.StmtForIn, ForIn: &ast.ForInStmt{Var: v.Text, Index: index, Last: last, Collection: coll}}
	default:
		p.failAt(tok, diag.SynUnexpectedToken, "expected '=' or 'in' in for statement, found "+quote(tok))
		return nil, false
	}
	if !p.expectLineEnd() {
		return nil, false
	}

	body := p.parseBlock()
	var els ast.Block
	if p.at(token.KwElse) {
		p.advance()
		if !p.expectLineEnd() {
			return nil, false
		}
		els = p.parseBlock()
	}
	if !p.expectCloser(token.KwNext, token.KwEndFor) {
		return nil, false
	}
	if stmt.Kind == ast.StmtFor {
		stmt.For.Body, stmt.For.Else = body, els
	} else {
		stmt.ForIn.Body, stmt.ForIn.Else = body, els
	}
	return stmt, true
}

func (p *Parser) parseWhile() (*ast.Stmt, bool) {
	p.advance()
	cond, ok := p.parseExpr(precLowest, ctxDefault)
	if !ok {
		return nil, false
	}
	if !p.expectLineEnd() {
		return nil, false
	}
	body := p.parseBlock()
	if !p.expectCloser(token.KwWend) {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtWhile, Loop: &ast.LoopStmt{Cond: cond, Body: body}}, true
}

// parseRepeat: repeat ... until cond. CondRow: строка until.
func (p *Parser) parseRepeat() (*ast.Stmt, bool) {
	p.advance()
	if !p.expectLineEnd() {
		return nil, false
	}
	body := p.parseBlock()
	until := p.peek()
	if !p.expectCloser(token.KwUntil) {
		return nil, false
	}
	cond, ok := p.parseExpr(precLowest, ctxDefault)
	if !ok {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtRepeat, Loop: &ast.LoopStmt{Cond: cond, CondRow: p.rowOf(until.Span), Body: body}}, true
}

// parseLoopJump: continue [n], break [n].
func (p *Parser) parseLoopJump() (*ast.Stmt, bool) {
	kw := p.advance()
	kind := ast.StmtContinue
	if kw.Kind == token.KwBreak {
		kind = ast.StmtBreak
	}
	if !p.tracker.InLoop() {
		p.errAt(diag.SynOutOfLoop, kw.Span, quote(kw)+" is only allowed inside a loop")
		return nil, false
	}
	st := &ast.Stmt{Kind: kind, Level: 1}
	switch tok := p.peek(); {
	case tok.Kind == token.IntLit || tok.Kind == token.FloatLit:
		p.advance()
		n, err := strconv.ParseFloat(tok.Text, 64)
		level, cerr := safecast.Conv[uint32](int64(n))
		if err != nil || cerr != nil || level == 0 {
			p.errAt(diag.SynUnexpectedToken, tok.Span, "loop count must be a positive integer")
			return nil, false
		}
		st.Level = level
	case tok.EndsStatement() || tok.Kind == token.KwElse:
	default:
		p.failAt(tok, diag.SynUnexpectedToken, "unexpected "+quote(tok)+" after "+quote(kw))
		return nil, false
	}
	return st, true
}

// parseTry: try / except / finally / endtry. Нужен хотя бы один из except и finally.
func (p *Parser) parseTry() (*ast.Stmt, bool) {
	kw := p.advance()
	if !p.atLineEnd() {
		tok := p.peek()
		sp := p.spanToLineEnd(tok.Span)
		p.errAt(diag.SynUnexpectedToken, sp, "unexpected "+quote(tok)+" after "+quote(kw))
		return nil, false
	}
	st := &ast.TryStmt{Body: p.parseBlock()}
	if p.at(token.KwExcept) {
		p.advance()
		st.HasExcept = true
		if !p.expectLineEnd() {
			return nil, false
		}
		st.Except = p.parseBlock()
	}
	if p.at(token.KwFinally) {
		p.advance()
		st.HasFinally = true
		if !p.expectLineEnd() {
			return nil, false
		}
		st.Finally = p.parseBlock()
		p.checkFinally(st.Finally)
	}
	if !st.HasExcept && !st.HasFinally {
		p.expectCloser(token.KwExcept, token.KwFinally)
		return nil, false
	}
	if !p.expectCloser(token.KwEndTry) {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtTry, Try: st}, true
}

// checkFinally: из finally нельзя выйти через exit, continue или break.
func (p *Parser) checkFinally(b ast.Block) {
	for _, s := range b {
		if s.Stmt == nil {
			continue
		}
		var what string
		switch s.Stmt.Kind {
		case ast.StmtExit:
			what = "exit"
		case ast.StmtContinue:
			what = "continue"
		case ast.StmtBreak:
			what = "break"
		default:
			continue
		}
		p.errAt(diag.SynNotAllowedInFinally, p.lineSpan(s.Row), what+" is not allowed in a finally block: finally must run to its end")
	}
}

// parseWith: with expr ... endwith. Если expr: вызов, он вычисляется один раз
// во временную переменную @with_tmp_N.
func (p *Parser) parseWith() (*ast.Stmt, bool) {
	p.advance()
	e, ok := p.parseExpr(precLowest, ctxDefault)
	if !ok {
		return nil, false
	}
	if !p.expectLineEnd() {
		return nil, false
	}
	var pre ast.Block
	if e.IsCall() {
		p.withCount++
		tmp := "@with_tmp_" + itoa(p.withCount)
		assign := &ast.Stmt{Kind: ast.StmtExpr, Expr: ast.Assign(ast.Ident(tmp), e)}
		pre = ast.Block{ast.NewStmt(assign, 0, "", p.name)}
		e = ast.Ident(tmp)
	}

	p.with = append(p.with, e)
	body := p.parseBlock()
	p.with = p.with[:len(p.with)-1]

	if !p.expectCloser(token.KwEndWith) {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtWith, With: &ast.WithStmt{Expr: e, Body: append(pre, body...)}}, true
}

// parseExitExit: exitexit [code].
func (p *Parser) parseExitExit() (*ast.Stmt, bool) {
	p.advance()
	st := &ast.Stmt{Kind: ast.StmtExitExit}
	if p.atLineEnd() {
		return st, true
	}
	start := p.peek()
	neg := false
	if start.Kind == token.Minus {
		p.advance()
		neg = true
	}
	tok := p.peek()
	if tok.Kind != token.IntLit {
		p.failAt(tok, diag.SynInvalidExitCode, "exit code must be an integer")
		return nil, false
	}
	p.advance()
	text := tok.Text
	if neg {
		text = "-" + text
	}
	code, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		p.errAt(diag.SynInvalidExitCode, start.Span.Cover(tok.Span), "exit code is out of range")
		return nil, false
	}
	st.Code = int32(code) // #nosec G115 -- ParseInt с bitSize 32
	return st, true
}

// parseThread: thread f(args). Запускается только вызов функции.
func (p *Parser) parseThread() (*ast.Stmt, bool) {
	kw := p.advance()
	e, ok := p.parseExpr(precLowest, ctxDefault)
	if !ok {
		return nil, false
	}
	if e.Kind != ast.ExprCall {
		p.errAt(diag.SynInvalidThreadCall, kw.Span.Cover(p.lastSpan), "thread requires a function call")
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtThread, Expr: e}, true
}
