package parser

import (
	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/source"
	"uwscript/internal/symbols"
	"uwscript/internal/token"
)

// parseStatement разбирает один оператор и сообщает, куда его поместить.
// allowCont: после оператора может идти продолжение строки (then-ветка
// однострочного if перед else).
func (p *Parser) parseStatement(allowCont bool) (stmtClass, ast.StatementWithRow, bool) {
	startTok := p.peek()
	cls, stmt, ok := p.dispatch()
	if !ok {
		return classNone, ast.StatementWithRow{}, false
	}
	if !allowCont && !p.atLineEnd() {
		tok := p.peek()
		if tok.Kind != token.Invalid && tok.Kind != token.Illegal {
			sp := p.spanToLineEnd(tok.Span)
			p.errAt(diag.SynStatementContinuation, sp, "unexpected "+quote(tok)+" after the end of the statement")
		}
		return classNone, ast.StatementWithRow{}, false
	}
	if stmt == nil {
		return cls, ast.StatementWithRow{}, true
	}
	return cls, p.newStmt(stmt, startTok.Span), true
}

func (p *Parser) dispatch() (stmtClass, *ast.Stmt, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwDim:
		return p.wrap(classDim)(p.parseDim())
	case token.KwPublic:
		return p.parsePublicStmt()
	case token.KwConst:
		return p.wrap(classConst)(p.parseConst())
	case token.KwHashtbl:
		return p.wrap(classScript)(p.parseHashTbl(false))
	case token.KwHash:
		return p.parseHash()
	case token.KwPrint:
		return p.wrap(classScript)(p.parsePrint())

	case token.KwIf:
		return p.wrap(classScript)(p.parseIf(false))
	case token.KwIfb:
		return p.wrap(classBlock)(p.parseIf(true))
	case token.KwSelect:
		return p.wrap(classBlock)(p.parseSelect())
	case token.KwFor:
		defer p.tracker.Enter(symbols.FrameLoop)()
		return p.wrap(classBlock)(p.parseFor())
	case token.KwWhile:
		defer p.tracker.Enter(symbols.FrameLoop)()
		return p.wrap(classBlock)(p.parseWhile())
	case token.KwRepeat:
		defer p.tracker.Enter(symbols.FrameLoop)()
		return p.wrap(classBlock)(p.parseRepeat())
	case token.KwContinue, token.KwBreak:
		return p.wrap(classScript)(p.parseLoopJump())
	case token.KwTry:
		return p.wrap(classBlock)(p.parseTry())
	case token.KwWith:
		return p.wrap(classBlock)(p.parseWith())

	case token.KwFunction, token.KwProcedure:
		return p.wrap(classDefinition)(p.parseFunction(false))
	case token.KwAsync:
		return p.wrap(classDefinition)(p.parseAsync())
	case token.KwModule, token.KwClass:
		return p.wrap(classDefinition)(p.parseModule())
	case token.KwStruct:
		return p.wrap(classDefinition)(p.parseStruct())
	case token.KwEnum:
		return p.wrap(classConst)(p.parseEnum())
	case token.KwTextBlock, token.KwTextBlockEx:
		return p.parseTextBlock()
	case token.KwDefDll:
		return p.wrap(classDefDll)(p.parseDefDll())
	case token.KwOption:
		return p.wrap(classOption)(p.parseOption())
	case token.KwCall:
		return p.wrap(classCall)(p.parseCall())

	case token.KwExit:
		p.advance()
		return classScript, &ast.Stmt{Kind: ast.StmtExit}, true
	case token.KwExitExit:
		return p.wrap(classScript)(p.parseExitExit())
	case token.KwThread:
		return p.wrap(classScript)(p.parseThread())
	case token.KwComErrIgn:
		p.advance()
		return classScript, &ast.Stmt{Kind: ast.StmtComErrIgn}, true
	case token.KwComErrRet:
		p.advance()
		return classScript, &ast.Stmt{Kind: ast.StmtComErrRet}, true
	}
	return p.wrap(classExpression)(p.parseExprStmt())
}

// wrap прикрепляет класс размещения к результату под-парсера.
func (p *Parser) wrap(cls stmtClass) func(*ast.Stmt, bool) (stmtClass, *ast.Stmt, bool) {
	return func(s *ast.Stmt, ok bool) (stmtClass, *ast.Stmt, bool) {
		return cls, s, ok
	}
}

// parseExprStmt: в строгом режиме оператором может быть только вызов или присваивание.
func (p *Parser) parseExprStmt() (*ast.Stmt, bool) {
	start := p.peek()
	e, ok := p.parseExpr(precLowest, ctxStartOfLine)
	if !ok {
		return nil, false
	}
	if p.strict() {
		switch {
		case e.IsCall(), e.Kind == ast.ExprAssign, e.Kind == ast.ExprCompoundAssign:
		default:
			p.errAt(diag.SynInvalidExpression, start.Span.Cover(p.lastSpan), "expression is not a statement: only calls and assignments are allowed")
			return nil, false
		}
	}
	return &ast.Stmt{Kind: ast.StmtExpr, Expr: e}, true
}

// parseBlock разбирает операторы до закрывающего ключевого слова или EOF.
// Само закрывающее слово не съедается.
func (p *Parser) parseBlock() ast.Block {
	var block ast.Block
	for {
		p.skipEOLs()
		tok := p.peek()
		if tok.Kind == token.EOF || isBlockEnd(tok.Kind) {
			return block
		}
		if p.ctx != nil && p.ctx.Err() != nil {
			p.skipLine()
			continue
		}
		cls, s, ok := p.parseStatement(false)
		if !ok {
			p.skipLine()
			continue
		}
		p.placeBlock(&block, cls, s)
	}
}

// placeBlock раскладывает оператор внутри блока; в теле module/class
// допустимы только объявления и определения функций.
func (p *Parser) placeBlock(block *ast.Block, cls stmtClass, s ast.StatementWithRow) {
	member := p.tracker.InMemberContext()
	span := p.stmtSpan(s)
	switch cls {
	case classNone:
	case classPublic:
		p.pushPublic(s)
	case classConst:
		p.pushConst(s)
	case classDim:
		if member {
			p.pushMember(s)
			return
		}
		*block = append(*block, s)
	case classOption:
		p.errAt(diag.SynOptionNotAllowed, span, "option is only allowed at the top level of a script")
	case classDefinition:
		if !member {
			p.errAt(diag.SynDefinitionNotAllowed, span, s.Stmt.Kind.String()+" definition is not allowed here")
			return
		}
		if s.Stmt.Kind == ast.StmtFunction {
			p.pushDef(s)
			return
		}
		p.errAt(diag.SynNotAllowedInModule, span, s.Stmt.Kind.String()+" is not allowed in a module body")
	case classDefDll:
		p.pushDef(s)
		if !member {
			*block = append(*block, s)
		}
	case classScript:
		if member {
			if (s.Stmt.Kind == ast.StmtHashTbl && !s.Stmt.HashTbl.IsPublic) || s.Stmt.Kind == ast.StmtHash {
				p.pushMember(s)
				return
			}
			p.errAt(diag.SynNotAllowedInModule, span, s.Stmt.Kind.String()+" is not allowed in a module body")
			return
		}
		*block = append(*block, s)
	case classCall:
		*block = append(*block, s)
	default:
		if member {
			p.errAt(diag.SynNotAllowedInModule, span, s.Stmt.Kind.String()+" is not allowed in a module body")
			return
		}
		*block = append(*block, s)
	}
}

// stmtSpan: span строки оператора для диагностик размещения.
func (p *Parser) stmtSpan(s ast.StatementWithRow) source.Span {
	return p.lineSpan(s.Row)
}
