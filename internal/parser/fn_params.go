package parser

import (
	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/symbols"
	"uwscript/internal/token"
)

// parseParams разбирает параметры до end (')' или '=>'), end съедается.
//
//	name, name[][], name: type, var name, ref name[], args name, name = expr, name =
func (p *Parser) parseParams(end token.Kind) ([]ast.Param, bool) {
	p.skipEOLs()
	if p.at(end) {
		p.advance()
		return nil, true
	}
	var params []ast.Param
	sawDefault, sawVariadic := false, false
	for {
		p.skipEOLs()
		startTok := p.peek()
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		switch {
		case sawVariadic:
			p.errAt(diag.SynParamAfterVariadic, startTok.Span.Cover(p.lastSpan), "no parameter may follow a variadic parameter")
			return nil, false
		case param.Kind == ast.ParamDefault:
			sawDefault = true
		case sawDefault:
			p.errAt(diag.SynParamNeedsDefault, startTok.Span.Cover(p.lastSpan), "parameter '"+param.Name+"' must have a default value")
			return nil, false
		}
		if param.Kind == ast.ParamVariadic {
			sawVariadic = true
		}
		params = append(params, param)

		p.skipEOLs()
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if _, ok := p.expect(end, diag.SynUnexpectedToken, "expected ',' or '"+end.String()+"' in parameter list"); !ok {
			return nil, false
		}
		return params, true
	}
}

func (p *Parser) parseParam() (ast.Param, bool) {
	var param ast.Param
	switch p.peek().Kind {
	case token.KwVar, token.KwRef:
		p.advance()
		param.Kind = ast.ParamRef
	case token.KwArgs:
		p.advance()
		param.Kind = ast.ParamVariadic
	}

	name, ok := p.parseName(symbols.Parameter, "parameter name")
	if !ok {
		return param, false
	}
	param.Name = name.Text

	if param.Kind != ast.ParamVariadic {
		for p.at(token.LBracket) {
			p.advance()
			if _, ok := p.expect(token.RBracket, diag.SynInvalidParam, "array parameter takes no size"); !ok {
				return param, false
			}
			param.Dims++
		}
	}

	if p.at(token.Colon) {
		p.advance()
		tok := p.peek()
		if tok.Kind != token.Ident && !tok.Kind.IsKeyword() {
			p.failAt(tok, diag.SynInvalidParam, "expected parameter type after ':'")
			return param, false
		}
		p.advance()
		param.Type = ast.ParseParamType(tok.Text)
	}

	if p.at(token.Eq) {
		eq := p.advance()
		if param.Kind != ast.ParamPlain || param.Dims > 0 {
			p.errAt(diag.SynInvalidParam, eq.Span, "only plain parameters can have a default value")
			return param, false
		}
		param.Kind = ast.ParamDefault
		if p.atOr(token.Comma, token.RParen, token.FatArrow) {
			param.Default = ast.Empty()
			return param, true
		}
		leave := p.tracker.Enter(symbols.FrameDefaultParam)
		def, ok := p.parseExpr(precLowest, ctxDefault)
		leave()
		if !ok {
			return param, false
		}
		param.Default = def
	}
	return param, true
}
