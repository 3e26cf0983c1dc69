package parser

import (
	"strings"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/symbols"
	"uwscript/internal/token"
)

func (p *Parser) parseDim() (*ast.Stmt, bool) {
	p.advance()
	defer p.tracker.Enter(symbols.FrameDim)()
	items, ok := p.parseDeclItems(false)
	if !ok {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtDim, Decl: &ast.DeclStmt{Items: items, InLoop: p.tracker.InLoop()}}, true
}

// parsePublicStmt: public a, b = 1 или public hashtbl h.
func (p *Parser) parsePublicStmt() (stmtClass, *ast.Stmt, bool) {
	p.advance()
	defer p.tracker.Enter(symbols.FramePublic)()
	if p.at(token.KwHashtbl) {
		s, ok := p.parseHashTbl(true)
		return classPublic, s, ok
	}
	items, ok := p.parseDeclItems(false)
	if !ok {
		return classPublic, nil, false
	}
	return classPublic, &ast.Stmt{Kind: ast.StmtPublic, Decl: &ast.DeclStmt{Items: items}}, true
}

func (p *Parser) parseConst() (*ast.Stmt, bool) {
	p.advance()
	defer p.tracker.Enter(symbols.FrameConst)()
	items, ok := p.parseDeclItems(true)
	if !ok {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtConst, Decl: &ast.DeclStmt{Items: items}}, true
}

// parseDeclItems: name [= expr], name[dims] [= v1, v2, ...]
// Массив с начальными значениями забирает остаток строки.
func (p *Parser) parseDeclItems(isConst bool) ([]ast.DeclItem, bool) {
	var items []ast.DeclItem
	for {
		name, ok := p.parseName(symbols.Declaration, "variable name")
		if !ok {
			return nil, false
		}
		item := ast.DeclItem{Name: name.Text}

		if p.at(token.LBracket) {
			dims, ok := p.parseDims()
			if !ok {
				return nil, false
			}
			if p.at(token.Eq) {
				p.advance()
				values, ok := p.parseExprList(token.EOL)
				if !ok {
					return nil, false
				}
				item.Value = ast.Array(values, dims)
				return append(items, item), true
			}
			if isConst {
				p.err(diag.SynValueRequired, "const '"+name.Text+"' requires a value")
				return nil, false
			}
			item.Value = ast.Array(nil, dims)
		} else {
			switch {
			case p.at(token.Eq):
				p.advance()
				v, ok := p.parseExpr(precLowest, ctxDefault)
				if !ok {
					return nil, false
				}
				item.Value = v
			case isConst:
				p.err(diag.SynValueRequired, "const '"+name.Text+"' requires a value")
				return nil, false
			default:
				item.Value = ast.Empty()
			}
		}

		items = append(items, item)
		if !p.at(token.Comma) {
			return items, true
		}
		p.advance()
	}
}

// parseDims: [1][2], [1, 2], [][][1], [,,1]. Пустой размер: EMPTY.
// Последний размер многомерного массива обязателен.
func (p *Parser) parseDims() ([]*ast.Expr, bool) {
	var dims []*ast.Expr
	first := p.peek()
	for p.at(token.LBracket) {
		p.advance()
		if p.at(token.RBracket) {
			p.advance()
			dims = append(dims, ast.Empty())
			continue
		}
		for {
			if p.at(token.Comma) {
				dims = append(dims, ast.Empty())
			} else {
				size, ok := p.parseExpr(precLowest, ctxDefault)
				if !ok {
					return nil, false
				}
				dims = append(dims, size)
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
			if p.at(token.RBracket) {
				p.err(diag.SynSizeRequired, "array size is required after ','")
				return nil, false
			}
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']'"); !ok {
			return nil, false
		}
	}
	if last := dims[len(dims)-1]; len(dims) > 1 && last.Kind == ast.ExprLit && last.Lit.Kind == ast.LitEmpty {
		p.errAt(diag.SynSizeRequired, first.Span.Cover(p.lastSpan), "the last dimension of a multi-dimensional array requires a size")
		return nil, false
	}
	return dims, true
}

// parseHashTbl: hashtbl a [= opt], b. Ключевое слово hashtbl: текущий токен.
func (p *Parser) parseHashTbl(isPublic bool) (*ast.Stmt, bool) {
	p.advance()
	if !isPublic {
		defer p.tracker.Enter(symbols.FrameDim)()
	}
	var items []ast.HashTblItem
	for {
		name, ok := p.parseName(symbols.Declaration, "hashtbl name")
		if !ok {
			return nil, false
		}
		item := ast.HashTblItem{Name: name.Text}
		if p.at(token.Eq) {
			p.advance()
			opt, ok := p.parseExpr(precLowest, ctxDefault)
			if !ok {
				return nil, false
			}
			item.Option = opt
		}
		items = append(items, item)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return &ast.Stmt{Kind: ast.StmtHashTbl, HashTbl: &ast.HashTblStmt{Items: items, IsPublic: isPublic}}, true
}

// parseHash:
//
//	hash [public] name [= opt]
//	    key = value
//	endhash
func (p *Parser) parseHash() (stmtClass, *ast.Stmt, bool) {
	p.advance()
	cls, frame := classScript, symbols.FrameDim
	isPublic := false
	if p.at(token.KwPublic) {
		p.advance()
		cls, frame, isPublic = classPublic, symbols.FramePublic, true
	}
	leave := p.tracker.Enter(frame)
	name, ok := p.parseName(symbols.Declaration, "hash name")
	leave()
	if !ok {
		return cls, nil, false
	}
	h := &ast.HashSugar{Name: name.Text, IsPublic: isPublic}
	if p.at(token.Eq) {
		p.advance()
		opt, ok := p.parseExpr(precLowest, ctxDefault)
		if !ok {
			return cls, nil, false
		}
		h.Option = opt
	}
	if !p.expectLineEnd() {
		return cls, nil, false
	}

	for {
		p.skipEOLs()
		if p.atOr(token.KwEndHash, token.EOF) || isBlockEnd(p.peek().Kind) {
			break
		}
		start := p.peek()
		e, ok := p.parseExpr(precLowest, ctxNotAccess)
		if !ok {
			p.skipLine()
			continue
		}
		if e.Kind != ast.ExprInfix || e.Op != ast.OpEq || !isHashKey(e.X) {
			p.errAt(diag.SynInvalidHashMember, start.Span.Cover(p.lastSpan), "hash member must be 'key = value' with a name or literal key")
			p.skipLine()
			continue
		}
		if !p.expectLineEnd() {
			p.skipLine()
			continue
		}
		h.Members = append(h.Members, ast.HashMember{Key: e.X, Value: e.Y})
	}
	if !p.expectCloser(token.KwEndHash) {
		return cls, nil, false
	}
	return cls, &ast.Stmt{Kind: ast.StmtHash, Hash: h}, true
}

func isHashKey(e *ast.Expr) bool {
	switch e.Kind {
	case ast.ExprIdent:
		return true
	case ast.ExprLit:
		switch e.Lit.Kind {
		case ast.LitNum, ast.LitString, ast.LitExpandable, ast.LitBool,
			ast.LitEmpty, ast.LitNull, ast.LitNothing:
			return true
		}
	}
	return false
}

// parsePrint: print без аргумента печатает пустую строку; выражение
// отделяется пробелом.
func (p *Parser) parsePrint() (*ast.Stmt, bool) {
	p.advance()
	if p.atLineEnd() || p.at(token.KwElse) {
		return &ast.Stmt{Kind: ast.StmtPrint, Expr: ast.Str("")}, true
	}
	if tok := p.peek(); !tok.SpaceBefore() {
		p.failAt(tok, diag.SynWhitespaceRequired, "whitespace is required after print")
		return nil, false
	}
	e, ok := p.parseExpr(precLowest, ctxDefault)
	if !ok {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtPrint, Expr: e}, true
}

// parseEnum:
//
//	enum Name
//	    A
//	    B = 10
//	endenum
func (p *Parser) parseEnum() (*ast.Stmt, bool) {
	p.advance()
	defer p.tracker.Enter(symbols.FrameConst)()
	name, ok := p.parseName(symbols.Declaration, "enum name")
	if !ok {
		return nil, false
	}
	if !p.expectLineEnd() {
		return nil, false
	}

	def := &ast.EnumDef{Name: name.Text}
	next := 0.0
	for {
		p.skipEOLs()
		if p.atOr(token.KwEndEnum, token.EOF) || isBlockEnd(p.peek().Kind) {
			break
		}
		member, ok := p.parseName(symbols.Other, "enum member")
		if !ok {
			p.skipLine()
			continue
		}
		if p.at(token.Eq) {
			p.advance()
			start := p.peek()
			v, ok := p.parseExpr(precLowest, ctxDefault)
			if !ok {
				p.skipLine()
				continue
			}
			if v.Kind != ast.ExprLit || v.Lit.Kind != ast.LitNum {
				p.errAt(diag.SynEnumValueNotNumber, start.Span.Cover(p.lastSpan), "enum value must be a number")
				p.skipLine()
				continue
			}
			if v.Lit.Num < next {
				p.errAt(diag.SynEnumValueTooSmall, start.Span.Cover(p.lastSpan), "enum value of '"+member.Text+"' must not be less than the previous value")
				p.skipLine()
				continue
			}
			next = v.Lit.Num
		}
		if _, dup := def.Lookup(member.Text); dup {
			p.errAt(diag.SynEnumMemberDuplicated, member.Span, "enum member '"+member.Text+"' is duplicated")
			p.skipLine()
			continue
		}
		if !p.expectLineEnd() {
			p.skipLine()
			continue
		}
		def.Members = append(def.Members, ast.EnumMember{Name: member.Text, Value: next})
		next++
	}
	if !p.expectCloser(token.KwEndEnum) {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtEnum, Enum: def}, true
}

// parseTextBlock: textblock [name] / тело / endtextblock. Без имени это
// многострочный комментарий и оператор не создаётся.
func (p *Parser) parseTextBlock() (stmtClass, *ast.Stmt, bool) {
	kw := p.advance()
	kind := ast.LitTextBlock
	if kw.Kind == token.KwTextBlockEx {
		kind = ast.LitTextBlockEx
	}
	var name token.Token
	named, bad := false, false
	if !p.atLineEnd() {
		if tok := p.peek(); tok.Kind != token.Ident {
			// тело всё равно съедаем, чтобы не разбирать его как код
			p.failAt(tok, diag.SynTextBlockName, "invalid textblock name "+quote(tok))
			p.spanToLineEnd(tok.Span)
			bad = true
		} else {
			leave := p.tracker.Enter(symbols.FrameConst)
			name, _ = p.parseName(symbols.Declaration, "textblock name")
			leave()
			named = true
			if !p.atLineEnd() {
				tok := p.peek()
				p.failAt(tok, diag.SynTextBlockName, "textblock name must be a single identifier")
				p.spanToLineEnd(tok.Span)
				bad = true
			}
		}
	}
	if _, ok := p.expect(token.EOL, diag.SynUnexpectedToken, "expected end of line after textblock"); !ok {
		return classNone, nil, false
	}
	body, ok := p.expect(token.TextBlockBody, diag.SynUnexpectedToken, "expected textblock body")
	if !ok {
		return classNone, nil, false
	}
	p.skipEOLs()
	if !p.expectCloser(token.KwEndTextBlock) || bad {
		return classNone, nil, false
	}
	if !named {
		return classNone, nil, true
	}
	value := &ast.Expr{Kind: ast.ExprLit, Lit: &ast.Literal{Kind: kind, Str: body.Text}}
	return classConst, &ast.Stmt{Kind: ast.StmtTextBlock, TextBlock: &ast.TextBlockDef{Name: name.Text, Value: value}}, true
}

// parseStruct:
//
//	struct Name
//	    member: type
//	    buf: var byte[BUFSIZE]
//	endstruct
func (p *Parser) parseStruct() (*ast.Stmt, bool) {
	p.advance()
	name, ok := p.parseName(symbols.Definition, "struct name")
	if !ok {
		return nil, false
	}
	if !p.expectLineEnd() {
		return nil, false
	}
	def := &ast.StructDef{Name: name.Text}
	for {
		p.skipEOLs()
		if p.atOr(token.KwEndStruct, token.EOF) || isBlockEnd(p.peek().Kind) {
			break
		}
		m, ok := p.parseStructMember()
		if !ok {
			p.skipLine()
			continue
		}
		if !p.expectLineEnd() {
			p.skipLine()
			continue
		}
		def.Members = append(def.Members, m)
	}
	if !p.expectCloser(token.KwEndStruct) {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtStruct, Struct: def}, true
}

func (p *Parser) parseStructMember() (ast.StructMember, bool) {
	var m ast.StructMember
	name, ok := p.parseName(symbols.Other, "struct member name")
	if !ok {
		return m, false
	}
	m.Name = name.Text
	if _, ok := p.expect(token.Colon, diag.SynBadStructMember, "expected ':' after struct member name"); !ok {
		return m, false
	}
	if p.atOr(token.KwVar, token.KwRef) {
		p.advance()
		m.IsRef = true
	}
	typ := p.peek()
	if typ.Kind != token.Ident && !typ.Kind.IsKeyword() {
		p.failAt(typ, diag.SynBadStructMember, "expected member type")
		return m, false
	}
	p.advance()
	m.Type = strings.ToLower(typ.Text)
	if p.at(token.LBracket) {
		size, ok := p.parseDllSize(diag.SynBadStructMember)
		if !ok {
			return m, false
		}
		m.Size = size
	}
	return m, true
}
