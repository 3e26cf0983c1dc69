package parser

import (
	"strings"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/source"
	"uwscript/internal/symbols"
	"uwscript/internal/token"
)

// resultName: неявная переменная возвращаемого значения функции.
const resultName = "result"

// parseFunction: [async] function|procedure name[(params)] ... fend
func (p *Parser) parseFunction(isAsync bool) (*ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.parseName(symbols.Definition, "function name")
	if !ok {
		return nil, false
	}
	defer p.tracker.Enter(symbols.FrameFunction)()
	p.tracker.Record(symbols.Parameter, resultName, name.Span)

	fn := &ast.FuncDef{
		Name:    name.Text,
		IsProc:  kw.Kind == token.KwProcedure,
		IsAsync: isAsync,
	}
	if p.at(token.LParen) {
		p.advance()
		params, ok := p.parseParams(token.RParen)
		if !ok {
			p.skipFunctionBody()
			return nil, false
		}
		fn.Params = params
	}
	if !p.expectLineEnd() {
		p.skipFunctionBody()
		return nil, false
	}
	fn.Body = p.parseBlock()
	if !p.expectCloser(token.KwFend) {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtFunction, Func: fn}, true
}

// skipFunctionBody восстанавливается после ошибки в заголовке функции:
// пропускает тело вместе с его fend, чтобы fend не стал лишней ошибкой.
// Вложенные анонимные function(...) ... fend учитываются.
func (p *Parser) skipFunctionBody() {
	depth := 0
	for {
		switch p.peek().Kind {
		case token.EOF:
			return
		case token.KwFunction, token.KwProcedure:
			depth++
		case token.KwFend:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		}
		p.advance()
	}
}

// parseAnonFunc: function(params) ... fend внутри выражения.
func (p *Parser) parseAnonFunc() (*ast.Expr, bool) {
	kw := p.advance()
	defer p.tracker.Enter(symbols.FrameAnon)()
	p.tracker.Record(symbols.Parameter, resultName, kw.Span)

	fn := &ast.FuncDef{IsProc: kw.Kind == token.KwProcedure}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+quote(kw)); !ok {
		return nil, false
	}
	params, ok := p.parseParams(token.RParen)
	if !ok {
		return nil, false
	}
	fn.Params = params

	// тело анонимной функции сохраняет with-стек, но не члены модуля
	savedMembers := p.members
	p.members = nil
	fn.Body = p.parseBlock()
	p.members = savedMembers

	if !p.expectCloser(token.KwFend) {
		return nil, false
	}
	return &ast.Expr{Kind: ast.ExprAnonFunc, Func: fn}, true
}

// parseLambda: |a, b => a + b| или многострочное |a =>
//
//	x := a
//	x * 2
//
// |. Последнее выражение присваивается result.
func (p *Parser) parseLambda() (*ast.Expr, bool) {
	pipe := p.advance()
	defer p.tracker.Enter(symbols.FrameAnon)()
	p.tracker.Record(symbols.Parameter, resultName, pipe.Span)

	fn := &ast.FuncDef{}
	if p.at(token.FatArrow) {
		p.advance()
	} else {
		params, ok := p.parseParams(token.FatArrow)
		if !ok {
			return nil, false
		}
		fn.Params = params
	}

	for {
		p.skipEOLs()
		startTok := p.peek()
		e, ok := p.parseExpr(precLowest, ctxLambda)
		if !ok {
			return nil, false
		}
		if p.at(token.EOL) {
			p.skipEOLs()
			if !p.at(token.Pipe) {
				fn.Body = append(fn.Body, p.newStmt(&ast.Stmt{Kind: ast.StmtExpr, Expr: e}, startTok.Span))
				continue
			}
		}
		if tok := p.peek(); tok.Kind != token.Pipe {
			p.failAt(tok, diag.SynUnexpectedToken, "unexpected "+quote(tok)+" in lambda, expected '|' or end of line")
			return nil, false
		}
		p.advance()
		s := &ast.Stmt{Kind: ast.StmtExpr, Expr: ast.Assign(ast.Ident(resultName), e)}
		fn.Body = append(fn.Body, p.newStmt(s, startTok.Span))
		return &ast.Expr{Kind: ast.ExprAnonFunc, Func: fn}, true
	}
}

// parseModule: module Name ... endmodule, class Name ... endclass.
func (p *Parser) parseModule() (*ast.Stmt, bool) {
	kw := p.advance()
	isClass := kw.Kind == token.KwClass
	name, ok := p.parseName(symbols.Definition, "module name")
	if !ok {
		return nil, false
	}
	if !p.expectLineEnd() {
		return nil, false
	}

	frame, closer, kind := symbols.FrameModule, token.KwEndModule, ast.StmtModule
	if isClass {
		frame, closer, kind = symbols.FrameClass, token.KwEndClass, ast.StmtClass
	}
	leave := p.tracker.Enter(frame)
	savedMembers, savedWith := p.members, p.with
	members := ast.Block{}
	p.members = &members
	p.with = nil

	rest := p.parseBlock()

	p.members, p.with = savedMembers, savedWith
	leave()
	members = append(members, rest...)

	if !p.expectCloser(closer) {
		return nil, false
	}

	def := &ast.ModuleDef{Name: name.Text, Members: members}
	def.HasDestructor = hasProcedure(members, "_"+name.Text+"_")
	if isClass && !hasProcedure(members, name.Text) {
		p.errAt(diag.SynNoConstructor, kw.Span.Cover(name.Span), "class '"+name.Text+"' has no constructor procedure "+name.Text+"()")
	}
	return &ast.Stmt{Kind: kind, Module: def}, true
}

func hasProcedure(members ast.Block, name string) bool {
	for _, m := range members {
		if m.Stmt != nil && m.Stmt.Kind == ast.StmtFunction && m.Stmt.Func.IsProc && strings.EqualFold(m.Stmt.Func.Name, name) {
			return true
		}
	}
	return false
}

// parseAsync: async function|procedure.
func (p *Parser) parseAsync() (*ast.Stmt, bool) {
	async := p.advance()
	if !p.atOr(token.KwFunction, token.KwProcedure) {
		tok := p.peek()
		p.errAt(diag.SynInvalidAsync, async.Span.Cover(tokSpanOr(tok, async.Span)), "async must be followed by function or procedure")
		return nil, false
	}
	return p.parseFunction(true)
}

func tokSpanOr(tok token.Token, fallback source.Span) source.Span {
	if tok.EndsStatement() {
		return fallback
	}
	return tok.Span
}
