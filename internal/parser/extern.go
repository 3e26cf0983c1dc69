package parser

import (
	"strconv"

	"fortio.org/safecast"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/symbols"
	"uwscript/internal/token"
)

// parseDefDll: def_dll [alias:]name(params):type:path, )::path или ):path.
// Без типа возврата функция считается void.
func (p *Parser) parseDefDll() (*ast.Stmt, bool) {
	p.advance()
	first, ok := p.parseName(symbols.Definition, "function name")
	if !ok {
		return nil, false
	}
	def := &ast.DefDll{Name: first.Text}
	if p.at(token.Colon) {
		p.advance()
		name := p.peek()
		if name.Kind != token.Ident {
			p.failAt(name, diag.SynExpectIdentifier, "expected dll function name after alias, found "+quote(name))
			return nil, false
		}
		p.advance()
		def.Alias, def.Name = first.Text, name.Text
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after def_dll name"); !ok {
		return nil, false
	}
	params, ok := p.parseDllParams(token.RParen)
	if !ok {
		return nil, false
	}
	def.Params = params
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after def_dll parameters"); !ok {
		return nil, false
	}

	def.Ret = ast.DllVoid
	switch tok := p.peek(); tok.Kind {
	case token.Colon:
		p.advance()
	case token.Ident:
		p.advance()
		t, ok := ast.ParseDllType(tok.Text)
		if !ok {
			p.errAt(diag.SynBadDllType, tok.Span, "unknown dll type '"+tok.Text+"'")
			return nil, false
		}
		def.Ret = t
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' before dll path"); !ok {
			return nil, false
		}
	case token.DllPath:
	default:
		p.failAt(tok, diag.SynUnexpectedToken, "expected return type or dll path, found "+quote(tok))
		return nil, false
	}
	path, ok := p.expect(token.DllPath, diag.SynUnexpectedToken, "expected dll path")
	if !ok {
		return nil, false
	}
	def.Path = path.Text
	return &ast.Stmt{Kind: ast.StmtDefDll, DefDll: def}, true
}

// parseDllParams разбирает список через запятую до end и съедает end.
func (p *Parser) parseDllParams(end token.Kind) ([]ast.DllParam, bool) {
	var params []ast.DllParam
	for !p.at(end) {
		param, ok := p.parseDllParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.at(end) {
			tok := p.peek()
			p.failAt(tok, diag.SynBadDllParam, "expected ',' or "+quote(token.Token{Kind: end})+", found "+quote(tok))
			return nil, false
		}
	}
	p.advance()
	return params, true
}

func (p *Parser) parseDllParam() (ast.DllParam, bool) {
	var param ast.DllParam
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		p.advance()
		members, ok := p.parseDllParams(token.RBrace)
		if !ok {
			return param, false
		}
		param.Kind = ast.DllParamStruct
		param.Members = members
		return param, true
	case token.KwVar, token.KwRef:
		p.advance()
		param.IsRef = true
		tok = p.peek()
	}

	switch tok.Kind {
	case token.Ident:
		t, ok := ast.ParseDllType(tok.Text)
		if !ok {
			p.advance()
			p.errAt(diag.SynBadDllType, tok.Span, "unknown dll type '"+tok.Text+"'")
			return param, false
		}
		param.Type = t
	case token.KwStruct:
		param.Type = ast.DllStruct
	default:
		p.failAt(tok, diag.SynBadDllParam, "expected dll type, found "+quote(tok))
		return param, false
	}
	p.advance()

	if param.Type == ast.DllCallback {
		return p.parseDllCallback(param)
	}
	if p.at(token.LBracket) {
		size, ok := p.parseDllSize(diag.SynBadDllParam)
		if !ok {
			return param, false
		}
		param.Size = size
	}
	return param, true
}

// parseDllCallback: callback(types)[:type].
func (p *Parser) parseDllCallback(param ast.DllParam) (ast.DllParam, bool) {
	param.Kind = ast.DllParamCallback
	param.Ret = ast.DllVoid
	if _, ok := p.expect(token.LParen, diag.SynBadDllParam, "expected '(' after callback"); !ok {
		return param, false
	}
	for !p.at(token.RParen) {
		t, ok := p.dllTypeName()
		if !ok {
			return param, false
		}
		param.Args = append(param.Args, t)
		if p.at(token.Comma) {
			p.advance()
		} else if !p.at(token.RParen) {
			tok := p.peek()
			p.failAt(tok, diag.SynBadDllParam, "expected ',' or ')' in callback, found "+quote(tok))
			return param, false
		}
	}
	p.advance()
	if p.at(token.Colon) {
		p.advance()
		t, ok := p.dllTypeName()
		if !ok {
			return param, false
		}
		param.Ret = t
	}
	return param, true
}

func (p *Parser) dllTypeName() (ast.DllType, bool) {
	tok := p.peek()
	if tok.Kind != token.Ident {
		p.failAt(tok, diag.SynBadDllParam, "expected dll type, found "+quote(tok))
		return ast.DllInvalid, false
	}
	p.advance()
	t, ok := ast.ParseDllType(tok.Text)
	if !ok {
		p.errAt(diag.SynBadDllType, tok.Span, "unknown dll type '"+tok.Text+"'")
		return ast.DllInvalid, false
	}
	return t, true
}

// parseDllSize: [], [n] или [CONST]; имя константы: обращение в контексте const.
func (p *Parser) parseDllSize(code diag.Code) (ast.DllSize, bool) {
	p.advance()
	var size ast.DllSize
	tok := p.peek()
	switch tok.Kind {
	case token.RBracket:
		p.advance()
		return ast.DllSize{Kind: ast.SizeNum}, true
	case token.IntLit:
		p.advance()
		n, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			p.errAt(code, tok.Span, "invalid size "+quote(tok))
			return size, false
		}
		v, err := safecast.Conv[uint32](n)
		if err != nil {
			p.errAt(code, tok.Span, "size "+quote(tok)+" is too large")
			return size, false
		}
		size = ast.DllSize{Kind: ast.SizeNum, N: v}
	case token.Ident:
		p.advance()
		done := p.tracker.Enter(symbols.FrameConst)
		p.tracker.Record(symbols.Access, tok.Text, tok.Span)
		done()
		size = ast.DllSize{Kind: ast.SizeConst, Const: tok.Text}
	default:
		p.failAt(tok, code, "expected size, found "+quote(tok))
		return size, false
	}
	if _, ok := p.expect(token.RBracket, code, "expected ']'"); !ok {
		return size, false
	}
	return size, true
}
