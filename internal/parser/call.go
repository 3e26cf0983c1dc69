package parser

import (
	"path/filepath"
	"slices"

	"uwscript/internal/ast"
	"uwscript/internal/binfmt"
	"uwscript/internal/diag"
	"uwscript/internal/include"
	"uwscript/internal/source"
	"uwscript/internal/token"
	"uwscript/internal/trace"
)

// parseCall: call path[(args)] или call url[...][(args)].
// Скрипт разбирается при каждом call, но его глобальные объявления, ошибки
// и записи имён попадают к вызывающему только при первом включении.
func (p *Parser) parseCall() (*ast.Stmt, bool) {
	kw := p.advance()
	tok := p.peek()
	var target include.Target
	switch tok.Kind {
	case token.PathLit:
		target = include.ResolvePath(tok.Text, p.dir, p.opts.DefaultExt)
	case token.URILit:
		target = include.ResolveURI(tok.Text)
	default:
		p.failAt(tok, diag.LexBadCallTarget, "expected script path after call, found "+quote(tok))
		return nil, false
	}
	p.advance()

	cs := &ast.CallStmt{Target: target.Location}
	if p.at(token.LParen) {
		p.advance()
		args, ok := p.parseCallArgs()
		if !ok {
			return nil, false
		}
		cs.Args = args
	}
	sp := kw.Span.Cover(p.lastSpan)

	// цикл call: a -> b -> a
	if p.onChain(target.Location) {
		cs.Program = &ast.Program{}
		return &ast.Stmt{Kind: ast.StmtCall, Call: cs}, true
	}

	prog, ok := p.include(target, sp)
	if !ok {
		return nil, false
	}
	cs.Program = prog
	return &ast.Stmt{Kind: ast.StmtCall, Call: cs}, true
}

func (p *Parser) include(target include.Target, sp source.Span) (*ast.Program, bool) {
	ctx, span := trace.Start(p.ctx, trace.ScopeCall, "call:"+target.Location)
	defer span.End("")

	script, err := p.fetcher.Fetch(ctx, target)
	if err != nil {
		code := diag.IOLoadFileError
		if target.Kind == include.KindURI {
			code = diag.IOFetchError
		}
		p.errAt(code, sp, "failed to load "+target.Location+": "+err.Error())
		return nil, false
	}

	if target.IsBinary() {
		prog, err := binfmt.Deserialize(script.Content)
		if err != nil {
			p.errAt(diag.IODecodeBinary, sp, "failed to decode "+target.Location+": "+err.Error())
			return nil, false
		}
		if p.registry.Claim(target.Location) {
			p.mergeGlobals(prog.Global)
		}
		span.Set("binary", "true")
		return prog, true
	}

	first := p.registry.Claim(target.Location)
	id := p.fs.Add(target.Location, script.Content, script.Flags)

	opts := p.opts
	opts.Dir = target.Dir()
	opts.Registry = p.registry
	opts.Fetcher = p.fetcher
	child := newParser(ctx, p.fs, p.fs.Get(id), opts)
	child.chain = append(slices.Clone(p.chain), filepath.ToSlash(target.Location))
	child.tracker = p.tracker.Child(target.Location)

	prog := child.parseProgram()
	span.Set("diagnostics", itoa(child.bag.Len()))
	if !first {
		return prog, true
	}

	if child.bag.HasErrors() {
		p.errAt(diag.IOCalledScriptErrs, sp, "called script "+target.Location+" has errors")
	}
	p.bag.Merge(child.bag)
	p.options = append(p.options, child.options...)
	p.consts = append(p.consts, child.consts...)
	p.publics = append(p.publics, child.publics...)
	p.defs = append(p.defs, child.defs...)
	p.tracker.AddCalls(child.tracker.Export()...)
	return prog, true
}

// mergeGlobals раскладывает глобальные объявления готовой программы по секциям.
func (p *Parser) mergeGlobals(global []ast.StatementWithRow) {
	for _, s := range global {
		if s.Stmt == nil {
			continue
		}
		switch s.Stmt.Kind {
		case ast.StmtOption:
			p.options = append(p.options, s)
		case ast.StmtConst, ast.StmtEnum, ast.StmtTextBlock:
			p.consts = append(p.consts, s)
		case ast.StmtPublic, ast.StmtHashTbl, ast.StmtHash:
			p.publics = append(p.publics, s)
		default:
			p.defs = append(p.defs, s)
		}
	}
}
